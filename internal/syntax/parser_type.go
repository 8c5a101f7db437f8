package syntax

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// constNodes are generic arguments that are expressions rather than types.
var constNodes = map[string]bool{
	"integer_literal":  true,
	"float_literal":    true,
	"string_literal":   true,
	"char_literal":     true,
	"boolean_literal":  true,
	"negative_literal": true,
	"block":            true,
}

func (s *source) typ(n *sitter.Node) (Type, error) {
	if n == nil {
		return nil, &ParseError{Message: "expected a type"}
	}
	span := s.span(n)

	switch n.Type() {
	case "type_identifier", "primitive_type", "identifier",
		"scoped_type_identifier", "scoped_identifier", "generic_type", "generic_type_with_turbofish":
		qself, path, err := s.path(n)
		if err != nil {
			return nil, err
		}
		return &PathType{QSelf: qself, Path: path, Range: span}, nil
	case "reference_type":
		ref := &RefType{Mutable: hasChild(n, "mutable_specifier"), Range: span}
		if lt := childOfType(n, "lifetime"); lt != nil {
			l := s.lifetime(lt)
			ref.Lifetime = &l
		}
		elem, err := s.typ(s.field(n, "type"))
		if err != nil {
			return nil, err
		}
		ref.Elem = elem
		return ref, nil
	case "pointer_type":
		elem, err := s.typ(s.field(n, "type"))
		if err != nil {
			return nil, err
		}
		return &PtrType{Mutable: hasChild(n, "mutable_specifier"), Elem: elem, Range: span}, nil
	case "array_type":
		elem, err := s.typ(s.field(n, "element"))
		if err != nil {
			return nil, err
		}
		if length := s.field(n, "length"); length != nil {
			return &ArrayType{Elem: elem, Len: s.expr(length), Range: span}, nil
		}
		return &SliceType{Elem: elem, Range: span}, nil
	case "tuple_type":
		var elems []Type
		for _, c := range namedChildren(n) {
			ty, err := s.typ(c)
			if err != nil {
				return nil, err
			}
			elems = append(elems, ty)
		}
		if len(elems) == 1 && !hasChild(n, ",") {
			return &ParenType{Elem: elems[0], Range: span}, nil
		}
		return &TupleType{Elems: elems, Range: span}, nil
	case "unit_type":
		return &TupleType{Range: span}, nil
	case "never_type", "!":
		return &NeverType{Range: span}, nil
	case "_":
		return &InferType{Range: span}, nil
	case "macro_invocation":
		mac, err := s.macro(n)
		if err != nil {
			return nil, err
		}
		return &MacroType{Mac: mac}, nil
	case "function_type":
		if s.field(n, "trait") != nil {
			qself, path, err := s.path(n)
			if err != nil {
				return nil, err
			}
			return &PathType{QSelf: qself, Path: path, Range: span}, nil
		}
		return s.bareFn(n)
	case "dynamic_type", "abstract_type":
		bounds, err := s.boundList(s.field(n, "trait"))
		if err != nil {
			return nil, err
		}
		if n.Type() == "abstract_type" {
			return &ImplTraitType{Bounds: bounds, Range: span}, nil
		}
		return &TraitObjectType{Dyn: true, Bounds: bounds, Range: span}, nil
	case "bounded_type":
		return s.boundedType(n)
	}

	return nil, s.errorAt(n, ErrUnsupported, "type", "`"+s.content(n)+"`")
}

// boundedType turns A + B into a trait object, keeping the dyn or impl
// keyword of its first part.
func (s *source) boundedType(n *sitter.Node) (Type, error) {
	parts := flattenBounded(n)
	span := s.span(n)

	var bounds []TypeParamBound
	head := parts[0]
	switch head.Type() {
	case "dynamic_type", "abstract_type":
		first, err := s.boundList(s.field(head, "trait"))
		if err != nil {
			return nil, err
		}
		bounds = first
		parts = parts[1:]
	}
	for _, p := range parts {
		b, err := s.bound(p)
		if err != nil {
			return nil, err
		}
		bounds = append(bounds, b)
	}

	if head.Type() == "abstract_type" {
		return &ImplTraitType{Bounds: bounds, Range: span}, nil
	}

	return &TraitObjectType{Dyn: head.Type() == "dynamic_type", Bounds: bounds, Range: span}, nil
}

// flattenBounded lists the operands of nested A + B + C nodes in order.
func flattenBounded(n *sitter.Node) []*sitter.Node {
	if n.Type() != "bounded_type" {
		return []*sitter.Node{n}
	}

	var out []*sitter.Node
	for _, c := range namedChildren(n) {
		out = append(out, flattenBounded(c)...)
	}

	return out
}

func (s *source) bareFn(n *sitter.Node) (Type, error) {
	fn := &BareFnType{Range: s.span(n)}
	if fl := childOfType(n, "for_lifetimes"); fl != nil {
		fn.Lifetimes = s.forLifetimes(fl)
	}
	if mods := childOfType(n, "function_modifiers"); mods != nil {
		fn.Unsafe = hasChild(mods, "unsafe")
		if ext := childOfType(mods, "extern_modifier"); ext != nil {
			fn.Abi = s.abi(ext)
		}
	}

	params := s.field(n, "parameters")
	for _, c := range namedChildren(params) {
		switch c.Type() {
		case "attribute_item":
			continue
		case "variadic_parameter":
			fn.Variadic = true
		case "parameter":
			ty, err := s.typ(s.field(c, "type"))
			if err != nil {
				return nil, err
			}
			arg := &BareFnArg{Type: ty}
			if pat := s.field(c, "pattern"); pat != nil && pat.Type() == "identifier" {
				name := s.ident(pat)
				arg.Name = &name
			}
			fn.Inputs = append(fn.Inputs, arg)
		default:
			ty, err := s.typ(c)
			if err != nil {
				return nil, err
			}
			fn.Inputs = append(fn.Inputs, &BareFnArg{Type: ty})
		}
	}

	if ret := s.field(n, "return_type"); ret != nil {
		out, err := s.typ(ret)
		if err != nil {
			return nil, err
		}
		fn.Output = out
	}

	return fn, nil
}

// path converts a path-like node. The qualified self of <T as Trait>::X is
// returned separately, and the path then holds only the segments after it.
func (s *source) path(n *sitter.Node) (*QSelf, *Path, error) {
	switch n.Type() {
	case "identifier", "type_identifier", "primitive_type", "self", "super", "crate", "metavariable":
		return nil, &Path{Segments: []*PathSegment{{Ident: s.ident(n)}}, Range: s.span(n)}, nil
	case "scoped_type_identifier", "scoped_identifier":
		var (
			qself *QSelf
			path  = &Path{}
			err   error
		)
		switch prefix := s.field(n, "path"); {
		case prefix == nil:
			path.LeadingColon = true
		case prefix.Type() == "bracketed_type":
			if qself, err = s.qself(prefix); err != nil {
				return nil, nil, err
			}
		default:
			if qself, path, err = s.path(prefix); err != nil {
				return nil, nil, err
			}
		}
		path.Segments = append(path.Segments, &PathSegment{Ident: s.ident(s.field(n, "name"))})
		path.Range = s.span(n)
		return qself, path, nil
	case "generic_type", "generic_type_with_turbofish":
		qself, path, err := s.path(s.field(n, "type"))
		if err != nil {
			return nil, nil, err
		}
		args, err := s.angleArgs(s.field(n, "type_arguments"))
		if err != nil {
			return nil, nil, err
		}
		args.Colon2 = hasChild(n, "::")
		path.Segments[len(path.Segments)-1].Arguments = args
		path.Range = s.span(n)
		return qself, path, nil
	case "function_type":
		qself, path, err := s.path(s.field(n, "trait"))
		if err != nil {
			return nil, nil, err
		}
		args, err := s.parenArgs(n)
		if err != nil {
			return nil, nil, err
		}
		path.Segments[len(path.Segments)-1].Arguments = args
		path.Range = s.span(n)
		return qself, path, nil
	}

	return nil, nil, s.errorAt(n, ErrExpected, "a path")
}

// modPath converts a path without a qualified self, as used by attributes,
// macros and visibilities.
func (s *source) modPath(n *sitter.Node) (*Path, error) {
	if n == nil {
		return nil, &ParseError{Message: "expected a path"}
	}
	qself, path, err := s.path(n)
	if err != nil {
		return nil, err
	}
	if qself != nil {
		return nil, s.errorAt(n, ErrUnexpected, "`<`")
	}

	return path, nil
}

func (s *source) qself(n *sitter.Node) (*QSelf, error) {
	children := namedChildren(n)
	if len(children) != 1 {
		return nil, s.errorAt(n, ErrExpected, "a type")
	}

	inner := children[0]
	if inner.Type() != "qualified_type" {
		ty, err := s.typ(inner)
		if err != nil {
			return nil, err
		}
		return &QSelf{Type: ty}, nil
	}

	ty, err := s.typ(s.field(inner, "type"))
	if err != nil {
		return nil, err
	}
	trait, err := s.modPath(s.field(inner, "alias"))
	if err != nil {
		return nil, err
	}

	return &QSelf{Type: ty, Trait: trait}, nil
}

func (s *source) angleArgs(n *sitter.Node) (*AngleBracketedArgs, error) {
	args := &AngleBracketedArgs{Range: s.span(n)}

	for _, c := range namedChildren(n) {
		switch {
		case c.Type() == "lifetime":
			args.Args = append(args.Args, &LifetimeArg{Lifetime: s.lifetime(c)})
		case c.Type() == "type_binding":
			ty, err := s.typ(s.field(c, "type"))
			if err != nil {
				return nil, err
			}
			args.Args = append(args.Args, &BindingArg{Ident: s.ident(s.field(c, "name")), Type: ty})
		case c.Type() == "trait_bounds":
			// Item: Bound follows the name it constrains
			ident, ok := constrainedIdent(args.Args)
			if !ok {
				return nil, s.errorAt(c, ErrUnexpected, "`:`")
			}
			last := len(args.Args) - 1
			bounds, err := s.bounds(c)
			if err != nil {
				return nil, err
			}
			args.Args[last] = &ConstraintArg{Ident: ident, Bounds: bounds, Range: ident.Range.Join(s.span(c))}
		case constNodes[c.Type()]:
			args.Args = append(args.Args, &ConstArg{Expr: s.expr(c)})
		default:
			ty, err := s.typ(c)
			if err != nil {
				return nil, err
			}
			args.Args = append(args.Args, &TypeArg{Type: ty})
		}
	}

	return args, nil
}

// constrainedIdent returns the name an Item: Bound argument constrains,
// which was read as the last type argument.
func constrainedIdent(args []GenericArgument) (Ident, bool) {
	if len(args) == 0 {
		return Ident{}, false
	}
	ta, ok := args[len(args)-1].(*TypeArg)
	if !ok {
		return Ident{}, false
	}
	pt, ok := ta.Type.(*PathType)
	if !ok || pt.QSelf != nil {
		return Ident{}, false
	}

	return pt.Path.GetIdent()
}

// parenArgs reads the (A, B) -> C part of a Fn-style function_type.
func (s *source) parenArgs(n *sitter.Node) (*ParenthesizedArgs, error) {
	params := s.field(n, "parameters")
	args := &ParenthesizedArgs{Range: s.spanBetween(params, n)}

	for _, c := range namedChildren(params) {
		tn := c
		if c.Type() == "parameter" {
			tn = s.field(c, "type")
		}
		ty, err := s.typ(tn)
		if err != nil {
			return nil, err
		}
		args.Inputs = append(args.Inputs, ty)
	}

	if ret := s.field(n, "return_type"); ret != nil {
		out, err := s.typ(ret)
		if err != nil {
			return nil, err
		}
		args.Output = out
	}

	return args, nil
}

// bounds converts a trait_bounds node.
func (s *source) bounds(n *sitter.Node) ([]TypeParamBound, error) {
	var out []TypeParamBound
	for _, c := range namedChildren(n) {
		bs, err := s.boundList(c)
		if err != nil {
			return nil, err
		}
		out = append(out, bs...)
	}

	return out, nil
}

// boundList converts one bound, or several joined by +.
func (s *source) boundList(n *sitter.Node) ([]TypeParamBound, error) {
	if n == nil {
		return nil, &ParseError{Message: "expected a bound"}
	}

	var out []TypeParamBound
	for _, p := range flattenBounded(n) {
		b, err := s.bound(p)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}

	return out, nil
}

func (s *source) bound(n *sitter.Node) (TypeParamBound, error) {
	span := s.span(n)

	switch n.Type() {
	case "lifetime":
		return &LifetimeBound{Lifetime: s.lifetime(n)}, nil
	case "removed_trait_bound":
		children := namedChildren(n)
		if len(children) != 1 {
			return nil, s.errorAt(n, ErrExpected, "a trait bound")
		}
		b, err := s.traitBound(children[0])
		if err != nil {
			return nil, err
		}
		b.Maybe = true
		b.Range = span
		return b, nil
	case "higher_ranked_trait_bound":
		b, err := s.traitBound(s.field(n, "type"))
		if err != nil {
			return nil, err
		}
		b.Lifetimes = s.boundLifetimes(s.field(n, "type_parameters"))
		b.Range = span
		return b, nil
	case "tuple_type":
		children := namedChildren(n)
		if len(children) != 1 || hasChild(n, ",") {
			return nil, s.errorAt(n, ErrExpected, "a trait bound")
		}
		b, err := s.traitBound(children[0])
		if err != nil {
			return nil, err
		}
		b.Paren = true
		b.Range = span
		return b, nil
	}

	return s.traitBound(n)
}

func (s *source) traitBound(n *sitter.Node) (*TraitBound, error) {
	if n == nil {
		return nil, &ParseError{Message: "expected a trait bound"}
	}

	b := &TraitBound{Range: s.span(n)}
	if n.Type() == "function_type" {
		if fl := childOfType(n, "for_lifetimes"); fl != nil {
			b.Lifetimes = s.forLifetimes(fl)
		}
	}

	qself, path, err := s.path(n)
	if err != nil {
		return nil, err
	}
	if qself != nil {
		return nil, s.errorAt(n, ErrExpected, "a trait bound")
	}
	b.Path = path

	return b, nil
}

// boundLifetimes converts the <'a, 'b> of a for<'a, 'b> binder.
func (s *source) boundLifetimes(n *sitter.Node) *BoundLifetimes {
	bl := &BoundLifetimes{Range: s.span(n)}
	if n.PrevSibling() != nil && n.PrevSibling().Type() == "for" {
		bl.Range = s.spanBetween(n.PrevSibling(), n)
	}
	for _, c := range namedChildren(n) {
		if lp := s.lifetimeParam(c, nil); lp != nil {
			bl.Lifetimes = append(bl.Lifetimes, lp)
		}
	}

	return bl
}

func (s *source) forLifetimes(n *sitter.Node) *BoundLifetimes {
	bl := &BoundLifetimes{Range: s.span(n)}
	for _, c := range namedChildren(n) {
		if c.Type() == "lifetime" {
			l := s.lifetime(c)
			bl.Lifetimes = append(bl.Lifetimes, &LifetimeParam{Lifetime: l, Range: l.Range})
		}
	}

	return bl
}

// lifetimeParam converts a lifetime parameter, or returns nil when n is a
// different kind of parameter.
func (s *source) lifetimeParam(n *sitter.Node, attrs []*Attribute) *LifetimeParam {
	span := s.span(n)

	switch n.Type() {
	case "lifetime":
		return &LifetimeParam{Attrs: attrs, Lifetime: s.lifetime(n), Range: span}
	case "lifetime_parameter":
		return &LifetimeParam{
			Attrs:    attrs,
			Lifetime: s.lifetime(s.field(n, "name")),
			Bounds:   s.lifetimeBounds(s.field(n, "bounds")),
			Range:    span,
		}
	case "constrained_type_parameter":
		left := s.field(n, "left")
		if left.Type() != "lifetime" {
			return nil
		}
		return &LifetimeParam{
			Attrs:    attrs,
			Lifetime: s.lifetime(left),
			Bounds:   s.lifetimeBounds(s.field(n, "bounds")),
			Range:    span,
		}
	}

	return nil
}

func (s *source) lifetimeBounds(n *sitter.Node) []Lifetime {
	if n == nil {
		return nil
	}

	var out []Lifetime
	for _, c := range namedChildren(n) {
		if c.Type() == "lifetime" {
			out = append(out, s.lifetime(c))
		}
	}

	return out
}

// genericsWithWhere reads the type_parameters and where_clause of n.
func (s *source) genericsWithWhere(n *sitter.Node) (Generics, error) {
	g, err := s.generics(s.field(n, "type_parameters"))
	if err != nil {
		return Generics{}, err
	}

	if wc := childOfType(n, "where_clause"); wc != nil {
		if g.Where, err = s.where(wc); err != nil {
			return Generics{}, err
		}
	}

	return g, nil
}

func (s *source) generics(n *sitter.Node) (Generics, error) {
	if n == nil {
		return Generics{}, nil
	}

	g := Generics{Angled: true, Range: s.span(n)}
	var attrs []*Attribute
	for _, c := range namedChildren(n) {
		if c.Type() == "attribute_item" {
			attr, err := s.attribute(c)
			if err != nil {
				return Generics{}, err
			}
			attrs = append(attrs, attr)
			continue
		}

		param, err := s.genericParam(c, attrs)
		if err != nil {
			return Generics{}, err
		}
		g.Params = append(g.Params, param)
		attrs = nil
	}

	return g, nil
}

func (s *source) genericParam(n *sitter.Node, attrs []*Attribute) (GenericParam, error) {
	if lp := s.lifetimeParam(n, attrs); lp != nil {
		return lp, nil
	}

	span := s.span(n)
	switch n.Type() {
	case "type_identifier":
		return &TypeParam{Attrs: attrs, Ident: s.ident(n), Range: span}, nil
	case "constrained_type_parameter":
		bounds, err := s.bounds(s.field(n, "bounds"))
		if err != nil {
			return nil, err
		}
		return &TypeParam{Attrs: attrs, Ident: s.ident(s.field(n, "left")), Bounds: bounds, Range: span}, nil
	case "optional_type_parameter", "type_parameter":
		tp := &TypeParam{Attrs: attrs, Range: span}
		name := s.field(n, "name")
		if name.Type() == "constrained_type_parameter" {
			inner, err := s.genericParam(name, nil)
			if err != nil {
				return nil, err
			}
			tp.Ident, tp.Bounds = inner.(*TypeParam).Ident, inner.(*TypeParam).Bounds
		} else {
			tp.Ident = s.ident(name)
		}
		if b := s.field(n, "bounds"); b != nil {
			bounds, err := s.bounds(b)
			if err != nil {
				return nil, err
			}
			tp.Bounds = append(tp.Bounds, bounds...)
		}
		if def := s.field(n, "default_type"); def != nil {
			ty, err := s.typ(def)
			if err != nil {
				return nil, err
			}
			tp.Default = ty
		}
		return tp, nil
	case "const_parameter":
		ty, err := s.typ(s.field(n, "type"))
		if err != nil {
			return nil, err
		}
		cp := &ConstParam{Attrs: attrs, Ident: s.ident(s.field(n, "name")), Type: ty, Range: span}
		if value := s.field(n, "value"); value != nil {
			cp.Default = s.expr(value)
		}
		return cp, nil
	}

	return nil, s.errorAt(n, ErrUnsupported, "generic parameter", "`"+s.content(n)+"`")
}

func (s *source) where(n *sitter.Node) (*WhereClause, error) {
	wc := &WhereClause{Range: s.span(n)}

	for _, c := range namedChildren(n) {
		if c.Type() != "where_predicate" {
			continue
		}
		span := s.span(c)
		left := s.field(c, "left")
		bounds := s.field(c, "bounds")

		if left.Type() == "lifetime" {
			wc.Predicates = append(wc.Predicates, &PredicateLifetime{
				Lifetime: s.lifetime(left),
				Bounds:   s.lifetimeBounds(bounds),
				Range:    span,
			})
			continue
		}

		pred := &PredicateType{Range: span}
		if left.Type() == "higher_ranked_trait_bound" {
			pred.Lifetimes = s.boundLifetimes(s.field(left, "type_parameters"))
			left = s.field(left, "type")
		}
		var err error
		if pred.Bounded, err = s.typ(left); err != nil {
			return nil, err
		}
		if bounds != nil {
			if pred.Bounds, err = s.bounds(bounds); err != nil {
				return nil, err
			}
		}
		wc.Predicates = append(wc.Predicates, pred)
	}

	return wc, nil
}
