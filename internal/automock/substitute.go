package automock

import (
	"github.com/KimMachineGun/automock/internal/syntax"
)

// resolvePath looks up Self::X in the configured types. The returned type is
// a fresh copy.
func (a *Attrs) resolvePath(p *syntax.Path) (syntax.Type, bool) {
	if p.LeadingColon || len(p.Segments) != 2 || p.Segments[0].Ident.Name != "Self" {
		return nil, false
	}
	if p.Segments[0].Arguments != nil || p.Segments[1].Arguments != nil {
		return nil, false
	}
	ty, ok := a.types[p.Segments[1].Ident.Name]
	if !ok {
		return nil, false
	}

	return syntax.CloneType(ty), true
}

// SubstituteType replaces, in place, every Self::X path in ty whose X has a
// configured type.
func (a *Attrs) SubstituteType(ty *syntax.Type) error {
	switch t := (*ty).(type) {
	case *syntax.SliceType:
		return a.SubstituteType(&t.Elem)
	case *syntax.ArrayType:
		return a.SubstituteType(&t.Elem)
	case *syntax.PtrType:
		return a.SubstituteType(&t.Elem)
	case *syntax.RefType:
		return a.SubstituteType(&t.Elem)
	case *syntax.ParenType:
		return a.SubstituteType(&t.Elem)
	case *syntax.GroupType:
		return a.SubstituteType(&t.Elem)
	case *syntax.BareFnType:
		for _, in := range t.Inputs {
			if err := a.SubstituteType(&in.Type); err != nil {
				return err
			}
		}
		if t.Output != nil {
			return a.SubstituteType(&t.Output)
		}
	case *syntax.TupleType:
		for i := range t.Elems {
			if err := a.SubstituteType(&t.Elems[i]); err != nil {
				return err
			}
		}
	case *syntax.PathType:
		if t.QSelf != nil {
			return errorAt(t, "qualified self types are not supported")
		}
		if newTy, ok := a.resolvePath(t.Path); ok {
			*ty = newTy
			return nil
		}
		return a.substitutePathArgs(t.Path)
	case *syntax.TraitObjectType:
		return a.substituteBounds(t.Bounds)
	case *syntax.ImplTraitType:
		return a.substituteBounds(t.Bounds)
	case *syntax.MacroType, *syntax.VerbatimType:
		return errorAt(t, "this type is not supported when using associated types")
	case *syntax.InferType, *syntax.NeverType:
	}

	return nil
}

// substitutePathArgs descends into the generic arguments of every segment,
// so Box<Self::T> is rewritten as well.
func (a *Attrs) substitutePathArgs(p *syntax.Path) error {
	for _, seg := range p.Segments {
		switch args := seg.Arguments.(type) {
		case *syntax.AngleBracketedArgs:
			for _, arg := range args.Args {
				switch arg := arg.(type) {
				case *syntax.TypeArg:
					if err := a.SubstituteType(&arg.Type); err != nil {
						return err
					}
				case *syntax.BindingArg:
					if err := a.SubstituteType(&arg.Type); err != nil {
						return err
					}
				}
			}
		case *syntax.ParenthesizedArgs:
			for i := range args.Inputs {
				if err := a.SubstituteType(&args.Inputs[i]); err != nil {
					return err
				}
			}
			if args.Output != nil {
				if err := a.SubstituteType(&args.Output); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

func (a *Attrs) substituteBounds(bounds []syntax.TypeParamBound) error {
	for _, b := range bounds {
		tb, ok := b.(*syntax.TraitBound)
		if !ok {
			continue
		}
		ty, ok := a.resolvePath(tb.Path)
		if !ok {
			continue
		}
		pt, ok := ty.(*syntax.PathType)
		if !ok || pt.QSelf != nil {
			return errorAt(tb.Path, "can only substitute paths for trait bounds")
		}
		tb.Path = pt.Path
	}

	return nil
}

// SubstituteTypes returns a copy of item with every associated type resolved
// through the configured types.
func (a *Attrs) SubstituteTypes(item *syntax.ItemTrait) (*syntax.ItemTrait, error) {
	out := syntax.CloneItemTrait(item)
	for _, ti := range out.Items {
		switch ti := ti.(type) {
		case *syntax.TraitItemType:
			ty, ok := a.types[ti.Ident.Name]
			if !ok {
				return nil, errorAt(ti, "default value not given for associated type")
			}
			ti.Default = syntax.CloneType(ty)
			ti.Bounds = nil
		case *syntax.TraitItemMethod:
			for _, arg := range ti.Sig.Inputs {
				if pt, ok := arg.(*syntax.PatType); ok {
					if err := a.SubstituteType(&pt.Type); err != nil {
						return nil, err
					}
				}
			}
			if ti.Sig.Output != nil {
				if err := a.SubstituteType(&ti.Sig.Output); err != nil {
					return nil, err
				}
			}
		}
	}

	return out, nil
}
