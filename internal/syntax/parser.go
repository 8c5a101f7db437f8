package syntax

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
)

// ParseFile parses a whole source file.
func ParseFile(src string) (*File, error) {
	s, err := parseSource([]byte(src))
	if err != nil {
		return nil, err
	}
	defer s.close()

	if err := s.check(); err != nil {
		return nil, err
	}
	attrs, items, err := s.items(s.root())
	if err != nil {
		return nil, err
	}

	return &File{Attrs: attrs, Items: items}, nil
}

// ParseItems parses toks as a sequence of items. Spans refer to the
// positions the tokens were lexed at.
func ParseItems(toks []Token) ([]Item, error) {
	if err := checkDelimiters(toks); err != nil {
		return nil, err
	}
	s, err := parseSource(layout(toks))
	if err != nil {
		return nil, err
	}
	defer s.close()

	if err := s.check(); err != nil {
		return nil, err
	}
	_, items, err := s.items(s.root())

	return items, err
}

// ParseItem parses toks as exactly one item.
func ParseItem(toks []Token) (Item, error) {
	items, err := ParseItems(toks)
	if err != nil {
		return nil, err
	}

	switch len(items) {
	case 0:
		at := Token{Kind: EOF}
		if len(toks) > 0 {
			end := toks[len(toks)-1].Span.End
			at.Span = Span{Start: end, End: end}
		}
		return nil, &ParseError{Span: at.Span, Message: "expected an item"}
	case 1:
		return items[0], nil
	}

	end := items[0].Span().End.Offset
	for _, t := range toks {
		if t.Span.Start.Offset >= end {
			return nil, &ParseError{Span: t.Span, Message: fmt.Sprintf(ErrTrailingTokens, t)}
		}
	}
	return nil, &ParseError{Span: items[1].Span(), Message: fmt.Sprintf(ErrTrailingTokens, "item")}
}

// typePrefix turns a lone type into a type alias the grammar accepts.
const typePrefix = "type T =\n"

// ParseType parses src as exactly one type.
func ParseType(src string) (Type, error) {
	s, err := parseSourceWithPrefix([]byte(typePrefix+src+"\n;"), 1, len(typePrefix))
	if err != nil {
		return nil, err
	}
	defer s.close()

	if err := s.check(); err != nil {
		return nil, err
	}

	stmts := namedChildren(s.root())
	if len(stmts) != 1 || stmts[0].Type() != "type_item" {
		return nil, &ParseError{Message: "expected exactly one type"}
	}

	return s.typ(s.field(stmts[0], "type"))
}

// statement is a declaration with the outer attributes written before it.
type statement struct {
	node  *sitter.Node
	attrs []*Attribute
	semi  bool // a macro invocation followed by ;
}

// statements splits the body of a source file or declaration list into
// inner attributes and declarations.
func (s *source) statements(list *sitter.Node) ([]*Attribute, []statement, error) {
	var (
		inner   []*Attribute
		pending []*Attribute
		stmts   []statement
	)

	for _, n := range namedChildren(list) {
		switch n.Type() {
		case "attribute_item":
			attr, err := s.attribute(n)
			if err != nil {
				return nil, nil, err
			}
			pending = append(pending, attr)
		case "inner_attribute_item":
			attr, err := s.attribute(n)
			if err != nil {
				return nil, nil, err
			}
			inner = append(inner, attr)
		case "empty_statement":
			if last := len(stmts) - 1; last >= 0 && stmts[last].node.Type() == "macro_invocation" {
				stmts[last].semi = true
			}
		case "expression_statement":
			mac := childOfType(n, "macro_invocation")
			if mac == nil {
				return nil, nil, s.errorAt(n, ErrExpected, "a declaration")
			}
			stmts = append(stmts, statement{node: mac, attrs: pending, semi: hasChild(n, ";")})
			pending = nil
		default:
			stmts = append(stmts, statement{node: n, attrs: pending})
			pending = nil
		}
	}

	return inner, stmts, nil
}

func (s *source) items(list *sitter.Node) ([]*Attribute, []Item, error) {
	inner, stmts, err := s.statements(list)
	if err != nil {
		return nil, nil, err
	}

	items := make([]Item, 0, len(stmts))
	for _, st := range stmts {
		item, err := s.item(st)
		if err != nil {
			return nil, nil, err
		}
		items = append(items, item)
	}

	return inner, items, nil
}

func (s *source) item(st statement) (Item, error) {
	n, attrs := st.node, st.attrs
	vis := s.visibility(n)
	span := s.span(n)

	switch n.Type() {
	case "trait_item":
		return s.itemTrait(n, attrs, vis)
	case "impl_item":
		return s.itemImpl(n, attrs)
	case "foreign_mod_item":
		return s.itemForeignMod(n, attrs)
	case "mod_item":
		item := &ItemMod{Attrs: attrs, Vis: vis, Ident: s.ident(s.field(n, "name")), Range: span}
		body := s.field(n, "body")
		if body == nil {
			return item, nil
		}
		inner, content, err := s.items(body)
		if err != nil {
			return nil, err
		}
		item.Attrs = append(item.Attrs, inner...)
		item.Content = content
		item.Braced = true
		item.Brace = s.span(body)
		return item, nil
	case "function_item":
		sig, err := s.signature(n)
		if err != nil {
			return nil, err
		}
		return &ItemFn{Attrs: attrs, Vis: vis, Sig: sig, Block: s.block(s.field(n, "body")), Range: span}, nil
	case "const_item":
		ty, err := s.typ(s.field(n, "type"))
		if err != nil {
			return nil, err
		}
		expr, err := s.requiredExpr(n)
		if err != nil {
			return nil, err
		}
		return &ItemConst{Attrs: attrs, Vis: vis, Ident: s.ident(s.field(n, "name")), Type: ty, Expr: expr, Range: span}, nil
	case "static_item":
		ty, err := s.typ(s.field(n, "type"))
		if err != nil {
			return nil, err
		}
		expr, err := s.requiredExpr(n)
		if err != nil {
			return nil, err
		}
		return &ItemStatic{
			Attrs:   attrs,
			Vis:     vis,
			Mutable: hasChild(n, "mutable_specifier"),
			Ident:   s.ident(s.field(n, "name")),
			Type:    ty,
			Expr:    expr,
			Range:   span,
		}, nil
	case "type_item", "associated_type":
		item := &ItemType{Attrs: attrs, Vis: vis, Ident: s.ident(s.field(n, "name")), Range: span}
		var err error
		if item.Generics, err = s.genericsWithWhere(n); err != nil {
			return nil, err
		}
		if ty := s.field(n, "type"); ty != nil {
			if item.Type, err = s.typ(ty); err != nil {
				return nil, err
			}
		}
		return item, nil
	case "use_declaration":
		return &ItemUse{Attrs: attrs, Vis: vis, Tokens: s.leaves(s.field(n, "argument")), Range: span}, nil
	case "extern_crate_declaration":
		item := &ItemExternCrate{Attrs: attrs, Vis: vis, Ident: s.ident(s.field(n, "name")), Range: span}
		if alias := s.field(n, "alias"); alias != nil {
			rename := s.ident(alias)
			item.Rename = &rename
		}
		return item, nil
	case "struct_item", "enum_item", "union_item":
		return s.itemAdt(n, attrs, vis)
	case "macro_invocation":
		mac, err := s.macro(n)
		if err != nil {
			return nil, err
		}
		return &ItemMacro{Attrs: attrs, Mac: mac, Semi: st.semi || mac.Delim != DelimBrace, Range: span}, nil
	case "macro_definition":
		return s.itemMacroRules(n, attrs)
	case "function_signature_item":
		return nil, &ParseError{Span: s.endOf(n), Message: fmt.Sprintf(ErrExpected, "function body")}
	}

	return nil, s.errorAt(n, ErrUnsupported, "item", "`"+n.Type()+"`")
}

// endOf is the empty span at the end of n.
func (s *source) endOf(n *sitter.Node) Span {
	end := s.position(n.EndPoint(), n.EndByte())
	return Span{Start: end, End: end}
}

func (s *source) ident(n *sitter.Node) Ident {
	if n == nil {
		return Ident{}
	}

	return Ident{Name: s.content(n), Range: s.span(n)}
}

func (s *source) lifetime(n *sitter.Node) Lifetime {
	return Lifetime{Name: s.content(n), Range: s.span(n)}
}

func (s *source) expr(n *sitter.Node) *Expr {
	return &Expr{Tokens: s.leaves(n), Range: s.span(n)}
}

// requiredExpr returns the value of a const or static item.
func (s *source) requiredExpr(n *sitter.Node) (*Expr, error) {
	value := s.field(n, "value")
	if value == nil {
		return nil, &ParseError{Span: s.endOf(n), Message: fmt.Sprintf(ErrExpected, "`=`")}
	}

	return s.expr(value), nil
}

// block keeps a function body as the tokens between its braces.
func (s *source) block(n *sitter.Node) *Block {
	toks := s.leaves(n)
	if len(toks) >= 2 {
		toks = toks[1 : len(toks)-1]
	}

	return &Block{Tokens: toks, Range: s.span(n)}
}

func (s *source) visibility(n *sitter.Node) Visibility {
	vm := childOfType(n, "visibility_modifier")
	if vm == nil {
		return Visibility{}
	}

	vis := Visibility{Kind: VisPublic, Range: s.span(vm)}
	switch {
	case hasChild(vm, "crate"):
		vis.Kind = VisCrate
	case hasChild(vm, "in"):
		vis.Kind = VisRestricted
		vis.In = true
		for _, c := range namedChildren(vm) {
			if p, err := s.modPath(c); err == nil {
				vis.Path = p
			}
		}
	default:
		for _, kw := range []string{"self", "super"} {
			if c := childOfType(vm, kw); c != nil {
				vis.Kind = VisRestricted
				vis.Path = PathFromIdent(s.ident(c))
			}
		}
	}

	return vis
}

func (s *source) abi(n *sitter.Node) *Abi {
	abi := &Abi{Range: s.span(n)}
	if lit := childOfType(n, "string_literal"); lit != nil {
		abi.Name = s.content(lit)
	}

	return abi
}

func (s *source) attribute(n *sitter.Node) (*Attribute, error) {
	attr := &Attribute{Inner: n.Type() == "inner_attribute_item", Range: s.span(n)}
	meta := childOfType(n, "attribute")
	if meta == nil {
		return nil, s.errorAt(n, ErrExpected, "an attribute")
	}

	children := namedChildren(meta)
	if len(children) == 0 {
		return nil, s.errorAt(meta, ErrExpected, "a path")
	}
	path, err := s.modPath(children[0])
	if err != nil {
		return nil, err
	}
	attr.Path = path

	if args := s.field(meta, "arguments"); args != nil {
		attr.Delim, attr.Tokens = s.group(args)
		return attr, nil
	}
	if value := s.field(meta, "value"); value != nil {
		attr.Tokens = append(s.leaves(childOfType(meta, "=")), s.leaves(value)...)
	}

	return attr, nil
}

// group splits a token tree into its delimiter and inner tokens.
func (s *source) group(n *sitter.Node) (Delimiter, []Token) {
	toks := s.leaves(n)
	if len(toks) < 2 {
		return DelimNone, toks
	}

	return delimOf(toks[0].Text), toks[1 : len(toks)-1]
}

func delimOf(text string) Delimiter {
	switch text {
	case "(":
		return DelimParen
	case "[":
		return DelimBracket
	case "{":
		return DelimBrace
	}

	return DelimNone
}

func (s *source) macro(n *sitter.Node) (*Macro, error) {
	path, err := s.modPath(s.field(n, "macro"))
	if err != nil {
		return nil, err
	}
	mac := &Macro{Path: path, Range: s.span(n)}
	if tt := childOfType(n, "token_tree"); tt != nil {
		mac.Delim, mac.Tokens = s.group(tt)
	}

	return mac, nil
}

func (s *source) itemMacroRules(n *sitter.Node, attrs []*Attribute) (Item, error) {
	name := s.ident(s.field(n, "name"))
	toks := s.leaves(n)

	// macro_rules ! name { ... } with an optional trailing ;
	var body []Token
	for i, t := range toks {
		if t.Span.Start.Offset >= name.Range.End.Offset {
			body = toks[i:]
			break
		}
	}
	semi := len(body) > 0 && body[len(body)-1].Is(";")
	if semi {
		body = body[:len(body)-1]
	}

	mac := &Macro{Path: PathFromIdent(Ident{Name: "macro_rules", Range: toks[0].Span}), Range: s.span(n)}
	if len(body) >= 2 {
		mac.Delim = delimOf(body[0].Text)
		mac.Tokens = body[1 : len(body)-1]
	}

	return &ItemMacro{Attrs: attrs, Ident: &name, Mac: mac, Semi: semi, Range: s.span(n)}, nil
}

func (s *source) itemAdt(n *sitter.Node, attrs []*Attribute, vis Visibility) (Item, error) {
	nameNode := s.field(n, "name")
	ident := s.ident(nameNode)
	generics, err := s.generics(s.field(n, "type_parameters"))
	if err != nil {
		return nil, err
	}

	after := nameNode
	if tp := s.field(n, "type_parameters"); tp != nil {
		after = tp
	}
	var body []Token
	for _, t := range s.leaves(n) {
		if t.Span.Start.Offset >= int(after.EndByte())-s.byteShift {
			body = append(body, t)
		}
	}

	span := s.span(n)
	switch n.Type() {
	case "struct_item":
		return &ItemStruct{Attrs: attrs, Vis: vis, Ident: ident, Generics: generics, Body: body, Range: span}, nil
	case "enum_item":
		return &ItemEnum{Attrs: attrs, Vis: vis, Ident: ident, Generics: generics, Body: body, Range: span}, nil
	}

	return &ItemUnion{Attrs: attrs, Vis: vis, Ident: ident, Generics: generics, Body: body, Range: span}, nil
}

func (s *source) itemTrait(n *sitter.Node, attrs []*Attribute, vis Visibility) (Item, error) {
	item := &ItemTrait{
		Attrs:    attrs,
		Vis:      vis,
		Unsafety: hasChild(n, "unsafe"),
		Auto:     hasChild(n, "auto"),
		Ident:    s.ident(s.field(n, "name")),
		Range:    s.span(n),
	}

	var err error
	if item.Generics, err = s.genericsWithWhere(n); err != nil {
		return nil, err
	}
	if b := s.field(n, "bounds"); b != nil {
		if item.Supertraits, err = s.bounds(b); err != nil {
			return nil, err
		}
	}

	_, stmts, err := s.statements(s.field(n, "body"))
	if err != nil {
		return nil, err
	}
	for _, st := range stmts {
		ti, err := s.traitItem(st)
		if err != nil {
			return nil, err
		}
		item.Items = append(item.Items, ti)
	}

	return item, nil
}

func (s *source) traitItem(st statement) (TraitItem, error) {
	n, attrs := st.node, st.attrs
	span := s.span(n)

	switch n.Type() {
	case "function_signature_item", "function_item":
		sig, err := s.signature(n)
		if err != nil {
			return nil, err
		}
		item := &TraitItemMethod{Attrs: attrs, Sig: sig, Range: span}
		if body := s.field(n, "body"); body != nil {
			item.Default = s.block(body)
		}
		return item, nil
	case "associated_type", "type_item":
		item := &TraitItemType{Attrs: attrs, Ident: s.ident(s.field(n, "name")), Range: span}
		var err error
		if item.Generics, err = s.genericsWithWhere(n); err != nil {
			return nil, err
		}
		if b := s.field(n, "bounds"); b != nil {
			if item.Bounds, err = s.bounds(b); err != nil {
				return nil, err
			}
		}
		if ty := s.field(n, "type"); ty != nil {
			if item.Default, err = s.typ(ty); err != nil {
				return nil, err
			}
		}
		return item, nil
	case "const_item":
		ty, err := s.typ(s.field(n, "type"))
		if err != nil {
			return nil, err
		}
		item := &TraitItemConst{Attrs: attrs, Ident: s.ident(s.field(n, "name")), Type: ty, Range: span}
		if value := s.field(n, "value"); value != nil {
			item.Default = s.expr(value)
		}
		return item, nil
	case "macro_invocation":
		mac, err := s.macro(n)
		if err != nil {
			return nil, err
		}
		return &TraitItemMacro{Attrs: attrs, Mac: mac, Range: span}, nil
	}

	return nil, s.errorAt(n, ErrUnsupported, "trait item", "`"+n.Type()+"`")
}

func (s *source) itemImpl(n *sitter.Node, attrs []*Attribute) (Item, error) {
	item := &ItemImpl{
		Attrs:       attrs,
		Defaultness: hasChild(n, "default"),
		Unsafety:    hasChild(n, "unsafe"),
		Range:       s.span(n),
	}

	var err error
	if item.Generics, err = s.genericsWithWhere(n); err != nil {
		return nil, err
	}
	if tr := s.field(n, "trait"); tr != nil {
		_, path, err := s.path(tr)
		if err != nil {
			return nil, err
		}
		item.Trait = &ImplTrait{Negative: hasChild(n, "!"), Path: path}
	}
	if item.SelfType, err = s.typ(s.field(n, "type")); err != nil {
		return nil, err
	}

	body := s.field(n, "body")
	if body == nil {
		return nil, &ParseError{Span: s.endOf(n), Message: fmt.Sprintf(ErrExpected, "`{`")}
	}
	_, stmts, err := s.statements(body)
	if err != nil {
		return nil, err
	}
	for _, st := range stmts {
		ii, err := s.implItem(st)
		if err != nil {
			return nil, err
		}
		item.Items = append(item.Items, ii)
	}

	return item, nil
}

func (s *source) implItem(st statement) (ImplItem, error) {
	n, attrs := st.node, st.attrs
	vis := s.visibility(n)
	span := s.span(n)

	switch n.Type() {
	case "function_item":
		sig, err := s.signature(n)
		if err != nil {
			return nil, err
		}
		defaultness := false
		if mods := childOfType(n, "function_modifiers"); mods != nil {
			defaultness = hasChild(mods, "default")
		}
		return &ImplItemMethod{
			Attrs:       attrs,
			Vis:         vis,
			Defaultness: defaultness,
			Sig:         sig,
			Block:       s.block(s.field(n, "body")),
			Range:       span,
		}, nil
	case "const_item":
		ty, err := s.typ(s.field(n, "type"))
		if err != nil {
			return nil, err
		}
		expr, err := s.requiredExpr(n)
		if err != nil {
			return nil, err
		}
		return &ImplItemConst{Attrs: attrs, Vis: vis, Ident: s.ident(s.field(n, "name")), Type: ty, Expr: expr, Range: span}, nil
	case "type_item":
		item := &ImplItemType{Attrs: attrs, Vis: vis, Ident: s.ident(s.field(n, "name")), Range: span}
		var err error
		if item.Generics, err = s.genericsWithWhere(n); err != nil {
			return nil, err
		}
		if item.Type, err = s.typ(s.field(n, "type")); err != nil {
			return nil, err
		}
		return item, nil
	case "macro_invocation":
		mac, err := s.macro(n)
		if err != nil {
			return nil, err
		}
		return &ImplItemMacro{Attrs: attrs, Mac: mac, Range: span}, nil
	case "function_signature_item":
		return nil, &ParseError{Span: s.endOf(n), Message: fmt.Sprintf(ErrExpected, "function body")}
	}

	return nil, s.errorAt(n, ErrUnsupported, "impl item", "`"+n.Type()+"`")
}

func (s *source) itemForeignMod(n *sitter.Node, attrs []*Attribute) (Item, error) {
	item := &ItemForeignMod{Attrs: attrs, Unsafety: hasChild(n, "unsafe"), Range: s.span(n)}
	if ext := childOfType(n, "extern_modifier"); ext != nil {
		item.Abi = s.abi(ext)
	}

	body := s.field(n, "body")
	if body == nil {
		return nil, &ParseError{Span: s.endOf(n), Message: fmt.Sprintf(ErrExpected, "`{`")}
	}
	inner, stmts, err := s.statements(body)
	if err != nil {
		return nil, err
	}
	item.Attrs = append(item.Attrs, inner...)

	for _, st := range stmts {
		fi, err := s.foreignItem(st)
		if err != nil {
			return nil, err
		}
		item.Items = append(item.Items, fi)
	}

	return item, nil
}

func (s *source) foreignItem(st statement) (ForeignItem, error) {
	n, attrs := st.node, st.attrs
	vis := s.visibility(n)
	span := s.span(n)

	switch n.Type() {
	case "function_signature_item":
		sig, err := s.signature(n)
		if err != nil {
			return nil, err
		}
		return &ForeignItemFn{Attrs: attrs, Vis: vis, Sig: sig, Range: span}, nil
	case "static_item":
		ty, err := s.typ(s.field(n, "type"))
		if err != nil {
			return nil, err
		}
		return &ForeignItemStatic{
			Attrs:   attrs,
			Vis:     vis,
			Mutable: hasChild(n, "mutable_specifier"),
			Ident:   s.ident(s.field(n, "name")),
			Type:    ty,
			Range:   span,
		}, nil
	case "associated_type":
		return &ForeignItemType{Attrs: attrs, Vis: vis, Ident: s.ident(s.field(n, "name")), Range: span}, nil
	case "macro_invocation":
		mac, err := s.macro(n)
		if err != nil {
			return nil, err
		}
		return &ForeignItemMacro{Attrs: attrs, Mac: mac, Range: span}, nil
	case "function_item":
		return nil, s.errorAt(s.field(n, "body"), ErrExpected, "`;`")
	}

	return nil, s.errorAt(n, ErrUnsupported, "foreign item", "`"+n.Type()+"`")
}

// signature reads the header of a function_item or function_signature_item.
func (s *source) signature(n *sitter.Node) (*Signature, error) {
	sig := &Signature{Ident: s.ident(s.field(n, "name"))}

	first := n.Child(0)
	if first != nil && first.Type() == "visibility_modifier" {
		first = first.NextSibling()
	}
	last := s.field(n, "parameters")

	if mods := childOfType(n, "function_modifiers"); mods != nil {
		sig.Constness = hasChild(mods, "const")
		sig.Asyncness = hasChild(mods, "async")
		sig.Unsafety = hasChild(mods, "unsafe")
		if ext := childOfType(mods, "extern_modifier"); ext != nil {
			sig.Abi = s.abi(ext)
		}
	}

	var err error
	if sig.Generics, err = s.genericsWithWhere(n); err != nil {
		return nil, err
	}
	if err := s.parameters(last, sig); err != nil {
		return nil, err
	}
	if ret := s.field(n, "return_type"); ret != nil {
		if sig.Output, err = s.typ(ret); err != nil {
			return nil, err
		}
		last = ret
	}
	if wc := childOfType(n, "where_clause"); wc != nil {
		last = wc
	}
	if first != nil && last != nil {
		sig.Range = s.spanBetween(first, last)
	}

	return sig, nil
}

func (s *source) parameters(params *sitter.Node, sig *Signature) error {
	if params == nil {
		return nil
	}

	var attrs []*Attribute
	for i := 0; i < int(params.ChildCount()); i++ {
		c := params.Child(i)
		switch c.Type() {
		case "(", ")", ",", "line_comment", "block_comment":
			continue
		case "attribute_item":
			attr, err := s.attribute(c)
			if err != nil {
				return err
			}
			attrs = append(attrs, attr)
			continue
		case "variadic_parameter":
			sig.Variadic = &Variadic{Range: s.span(c)}
		case "self_parameter":
			if len(sig.Inputs) > 0 {
				return s.errorAt(c, ErrUnexpected, "`self`")
			}
			recv := &Receiver{
				Attrs:     attrs,
				Reference: hasChild(c, "&"),
				Mutable:   hasChild(c, "mutable_specifier"),
				Range:     s.span(c),
			}
			if lt := childOfType(c, "lifetime"); lt != nil {
				l := s.lifetime(lt)
				recv.Lifetime = &l
			}
			sig.Inputs = append(sig.Inputs, recv)
		case "parameter":
			arg, err := s.parameter(c, attrs, len(sig.Inputs) == 0)
			if err != nil {
				return err
			}
			sig.Inputs = append(sig.Inputs, arg)
		default:
			return s.errorAt(c, ErrUnsupported, "argument pattern", "`"+s.content(c)+"`")
		}
		attrs = nil
	}

	return nil
}

func (s *source) parameter(c *sitter.Node, attrs []*Attribute, first bool) (FnArg, error) {
	pat := s.field(c, "pattern")
	ty, err := s.typ(s.field(c, "type"))
	if err != nil {
		return nil, err
	}

	if pat.Type() == "self" {
		if !first {
			return nil, s.errorAt(pat, ErrUnexpected, "`self`")
		}
		return &Receiver{Attrs: attrs, Mutable: hasChild(c, "mutable_specifier"), Type: ty, Range: s.span(c)}, nil
	}

	p := &Pat{Mutable: hasChild(c, "mutable_specifier")}
	start := pat
	if m := childOfType(c, "mutable_specifier"); m != nil {
		start = m
	}
	for {
		switch pat.Type() {
		case "mut_pattern":
			p.Mutable = true
		case "ref_pattern":
			p.ByRef = true
		case "identifier", "_":
			p.Ident = s.ident(pat)
			p.Range = s.spanBetween(start, pat)
			return &PatType{Attrs: attrs, Pat: p, Type: ty, Range: s.span(c)}, nil
		default:
			return nil, s.errorAt(pat, ErrUnsupported, "argument pattern", "`"+s.content(pat)+"`")
		}

		var inner *sitter.Node
		for _, ch := range namedChildren(pat) {
			if ch.Type() != "mutable_specifier" {
				inner = ch
			} else {
				p.Mutable = true
			}
		}
		if inner == nil {
			return nil, s.errorAt(pat, ErrUnsupported, "argument pattern", "`"+s.content(pat)+"`")
		}
		pat = inner
	}
}
