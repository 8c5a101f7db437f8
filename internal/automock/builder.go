package automock

import (
	"fmt"
	"strings"

	"github.com/KimMachineGun/automock/internal/syntax"
)

type mockBuilder struct{}

// NewBuilder returns the Builder that lays out mocks on top of the mockall
// runtime: expectation fields, Default impls, checkpoint and expect_ methods.
func NewBuilder() Builder {
	return mockBuilder{}
}

func (b mockBuilder) Build(spec *MockSpec) (string, error) {
	info, err := newMockInfo(spec)
	if err != nil {
		return "", err
	}

	return execute("mock", info)
}

func newMockInfo(spec *MockSpec) (*mockInfo, error) {
	name := "Mock" + spec.Name.Name
	info := &mockInfo{
		Vis:          visString(spec.Vis),
		Name:         name,
		ImplGenerics: syntax.PrintImplGenerics(spec.Generics),
		TypeGenerics: syntax.PrintTypeGenerics(spec.Generics),
		Where:        syntax.PrintWhere(spec.Generics),
	}

	selfType, err := syntax.ParseType(name + info.TypeGenerics)
	if err != nil {
		return nil, fmt.Errorf("cannot parse mock type: %v", err)
	}

	for _, method := range spec.Methods {
		m, err := newMethodInfo(method.Sig, selfType)
		if err != nil {
			return nil, err
		}
		if m.Static() {
			m.Store = fmt.Sprintf("%s_%s_expectation", name, m.Name)
		} else {
			m.Owner = "self"
			info.Fields = append(info.Fields, m.Field())
		}
		info.Methods = append(info.Methods, m)
	}

	for _, trait := range spec.Traits {
		t, err := newTraitInfo(name, trait, selfType)
		if err != nil {
			return nil, err
		}
		info.Fields = append(info.Fields, fieldInfo{
			Name: t.Field,
			Type: t.Struct + t.TypeGenerics,
			Init: t.Struct + "::default()",
		})
		info.Traits = append(info.Traits, t)
	}

	info.Fields = append(info.Fields, phantomFields(spec.Generics)...)

	return info, nil
}

func newTraitInfo(mockName string, trait *syntax.ItemTrait, selfType syntax.Type) (*traitInfo, error) {
	t := &traitInfo{
		Unsafe:       trait.Unsafety,
		Path:         trait.Ident.Name + syntax.PrintTypeGenerics(trait.Generics),
		Struct:       fmt.Sprintf("%s_%s", mockName, trait.Ident.Name),
		Field:        trait.Ident.Name + "_expectations",
		ImplGenerics: syntax.PrintImplGenerics(trait.Generics),
		TypeGenerics: syntax.PrintTypeGenerics(trait.Generics),
		Where:        syntax.PrintWhere(trait.Generics),
	}

	for _, item := range trait.Items {
		switch item := item.(type) {
		case *syntax.TraitItemType:
			if item.Default == nil {
				return nil, errorAt(item, "default value not given for associated type")
			}
			t.Types = append(t.Types, fmt.Sprintf("type %s%s = %s;",
				item.Ident.Name, syntax.PrintImplGenerics(item.Generics), syntax.Print(item.Default)))
		case *syntax.TraitItemMethod:
			m, err := newMethodInfo(item.Sig, selfType)
			if err != nil {
				return nil, err
			}
			if m.Static() {
				m.Store = fmt.Sprintf("%s_%s_expectation", t.Struct, m.Name)
			} else {
				m.Owner = "self." + t.Field
				t.Fields = append(t.Fields, m.Field())
			}
			t.Methods = append(t.Methods, m)
		case *syntax.TraitItemConst:
		case *syntax.TraitItemMacro:
			return nil, errorAt(item, "macros are not supported in this context")
		}
	}

	t.Fields = append(t.Fields, phantomFields(trait.Generics)...)

	return t, nil
}

// newMethodInfo describes one mocked method or function. Methods without a
// receiver get a placeholder Store that the caller replaces with the name of
// their global store.
func newMethodInfo(sig *syntax.Signature, selfType syntax.Type) (*methodInfo, error) {
	if sig.Variadic != nil {
		return nil, errorAt(sig.Variadic, "variadic functions are not supported")
	}

	sig = syntax.CloneSignature(sig)
	sig.Abi = nil
	renameWildcards(sig)

	var (
		inputs []string
		args   []string
	)
	for _, arg := range sig.Inputs {
		pt, ok := arg.(*syntax.PatType)
		if !ok {
			continue
		}
		inputs = append(inputs, syntax.Print(replaceSelf(pt.Type, selfType)))
		args = append(args, pt.Pat.Ident.Name)
	}

	m := &methodInfo{
		Name:      sig.Ident.Name,
		Signature: syntax.Print(sig),
		Generic:   hasTypeParams(sig.Generics),
		Input:     "(" + strings.Join(inputs, ", ") + ")",
		Output:    "()",
		Args:      "(" + strings.Join(args, ", ") + ")",
		Where:     syntax.PrintWhere(sig.Generics),
	}
	if sig.Output != nil {
		m.Output = syntax.Print(replaceSelf(sig.Output, selfType))
	}

	if sig.Receiver() == nil {
		m.Store = sig.Ident.Name + "_expectation"
		m.ExpectGenerics = syntax.PrintImplGenerics(guardGenerics(sig.Generics))
	} else {
		m.ExpectGenerics = syntax.PrintImplGenerics(sig.Generics)
	}

	return m, nil
}

// renameWildcards names every _ argument arg<N> so it can be forwarded.
func renameWildcards(sig *syntax.Signature) {
	for i, arg := range sig.Inputs {
		if pt, ok := arg.(*syntax.PatType); ok && pt.Pat.IsWild() {
			pt.Pat.Ident.Name = fmt.Sprintf("arg%d", i)
		}
	}
}

func hasTypeParams(g syntax.Generics) bool {
	for _, gp := range g.Params {
		if _, ok := gp.(*syntax.TypeParam); ok {
			return true
		}
	}

	return false
}

// guardGenerics returns g with the 'guard lifetime appended to its lifetime
// parameters. The where clause is not carried over.
func guardGenerics(g syntax.Generics) syntax.Generics {
	g = syntax.CloneGenerics(g)
	guard := &syntax.LifetimeParam{Lifetime: syntax.Lifetime{Name: "'guard"}}

	at := 0
	for at < len(g.Params) {
		if _, ok := g.Params[at].(*syntax.LifetimeParam); !ok {
			break
		}
		at++
	}
	params := make([]syntax.GenericParam, 0, len(g.Params)+1)
	params = append(params, g.Params[:at]...)
	params = append(params, guard)
	params = append(params, g.Params[at:]...)

	return syntax.Generics{Angled: true, Params: params}
}

func phantomFields(g syntax.Generics) []fieldInfo {
	var fields []fieldInfo
	for _, gp := range g.Params {
		var ty string
		switch gp := gp.(type) {
		case *syntax.TypeParam:
			ty = gp.Ident.Name
		case *syntax.LifetimeParam:
			ty = fmt.Sprintf("&%s ()", gp.Lifetime.Name)
		default:
			continue
		}
		fields = append(fields, fieldInfo{
			Name: fmt.Sprintf("_t%d", len(fields)),
			Type: fmt.Sprintf("::std::marker::PhantomData<%s>", ty),
			Init: "::std::marker::PhantomData",
		})
	}

	return fields
}

// replaceSelf returns a copy of ty with every bare Self replaced by with.
func replaceSelf(ty syntax.Type, with syntax.Type) syntax.Type {
	ty = syntax.CloneType(ty)
	if with == nil {
		return ty
	}
	rewriteSelf(&ty, with)

	return ty
}

func rewriteSelf(ty *syntax.Type, with syntax.Type) {
	switch t := (*ty).(type) {
	case *syntax.SliceType:
		rewriteSelf(&t.Elem, with)
	case *syntax.ArrayType:
		rewriteSelf(&t.Elem, with)
	case *syntax.PtrType:
		rewriteSelf(&t.Elem, with)
	case *syntax.RefType:
		rewriteSelf(&t.Elem, with)
	case *syntax.ParenType:
		rewriteSelf(&t.Elem, with)
	case *syntax.GroupType:
		rewriteSelf(&t.Elem, with)
	case *syntax.TupleType:
		for i := range t.Elems {
			rewriteSelf(&t.Elems[i], with)
		}
	case *syntax.BareFnType:
		for _, in := range t.Inputs {
			rewriteSelf(&in.Type, with)
		}
		if t.Output != nil {
			rewriteSelf(&t.Output, with)
		}
	case *syntax.PathType:
		if t.QSelf == nil && t.Path.IsIdent("Self") {
			*ty = syntax.CloneType(with)
			return
		}
		rewriteSelfInPath(t.Path, with)
	case *syntax.TraitObjectType:
		rewriteSelfInBounds(t.Bounds, with)
	case *syntax.ImplTraitType:
		rewriteSelfInBounds(t.Bounds, with)
	}
}

// rewriteSelfInPath descends into the generic and Fn-style arguments of
// every segment, so Box<dyn Fn(u8) -> Self> is rewritten as well.
func rewriteSelfInPath(p *syntax.Path, with syntax.Type) {
	for _, seg := range p.Segments {
		switch args := seg.Arguments.(type) {
		case *syntax.AngleBracketedArgs:
			for _, arg := range args.Args {
				switch arg := arg.(type) {
				case *syntax.TypeArg:
					rewriteSelf(&arg.Type, with)
				case *syntax.BindingArg:
					rewriteSelf(&arg.Type, with)
				case *syntax.ConstraintArg:
					rewriteSelfInBounds(arg.Bounds, with)
				}
			}
		case *syntax.ParenthesizedArgs:
			for i := range args.Inputs {
				rewriteSelf(&args.Inputs[i], with)
			}
			if args.Output != nil {
				rewriteSelf(&args.Output, with)
			}
		}
	}
}

func rewriteSelfInBounds(bounds []syntax.TypeParamBound, with syntax.Type) {
	for _, b := range bounds {
		if tb, ok := b.(*syntax.TraitBound); ok {
			rewriteSelfInPath(tb.Path, with)
		}
	}
}

func visString(v syntax.Visibility) string {
	if v.Kind == syntax.VisInherited {
		return ""
	}

	return syntax.Print(v) + " "
}
