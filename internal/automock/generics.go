package automock

import (
	"github.com/KimMachineGun/automock/internal/syntax"
)

// FilterGenerics returns the parameters of g that are referenced by args, in
// their original order and with their bounds. Const parameters are always
// dropped. The result is the empty Generics when nothing is kept.
func FilterGenerics(g *syntax.Generics, args syntax.PathArguments) (*syntax.Generics, error) {
	var angled *syntax.AngleBracketedArgs
	switch args := args.(type) {
	case nil:
		return &syntax.Generics{}, nil
	case *syntax.ParenthesizedArgs:
		return nil, errorAt(args, "mocking Fn objects is not supported")
	case *syntax.AngleBracketedArgs:
		angled = args
	}
	if g.Where != nil {
		return nil, errorAt(g.Where, "where clauses are not supported here")
	}

	var params []syntax.GenericParam
	for _, gp := range g.Params {
		switch gp := gp.(type) {
		case *syntax.TypeParam:
			if referencesType(angled, gp.Ident.Name) {
				params = append(params, syntax.CloneGenericParam(gp))
			}
		case *syntax.LifetimeParam:
			if referencesLifetime(angled, gp.Lifetime.Name) {
				params = append(params, syntax.CloneGenericParam(gp))
			}
		case *syntax.ConstParam:
			// TODO: a const param used in a kept param's bound is dropped too;
			// decide whether to keep such params once const generics are mocked.
		}
	}
	if len(params) == 0 {
		return &syntax.Generics{}, nil
	}

	return &syntax.Generics{Angled: true, Params: params, Range: g.Range}, nil
}

func referencesType(args *syntax.AngleBracketedArgs, name string) bool {
	for _, arg := range args.Args {
		ta, ok := arg.(*syntax.TypeArg)
		if !ok {
			continue
		}
		pt, ok := ta.Type.(*syntax.PathType)
		if !ok || pt.QSelf != nil {
			continue
		}
		if pt.Path.IsIdent(name) {
			return true
		}
	}

	return false
}

func referencesLifetime(args *syntax.AngleBracketedArgs, name string) bool {
	for _, arg := range args.Args {
		if la, ok := arg.(*syntax.LifetimeArg); ok && la.Lifetime.Name == name {
			return true
		}
	}

	return false
}
