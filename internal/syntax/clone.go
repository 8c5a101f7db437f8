package syntax

// Deep copies. Token slices of expressions, bodies and attributes are
// shared since they are never mutated.

func CloneType(t Type) Type {
	switch t := t.(type) {
	case nil:
		return nil
	case *SliceType:
		c := *t
		c.Elem = CloneType(t.Elem)
		return &c
	case *ArrayType:
		c := *t
		c.Elem = CloneType(t.Elem)
		return &c
	case *PtrType:
		c := *t
		c.Elem = CloneType(t.Elem)
		return &c
	case *RefType:
		c := *t
		if t.Lifetime != nil {
			l := *t.Lifetime
			c.Lifetime = &l
		}
		c.Elem = CloneType(t.Elem)
		return &c
	case *BareFnType:
		c := *t
		c.Lifetimes = cloneBoundLifetimes(t.Lifetimes)
		c.Inputs = make([]*BareFnArg, len(t.Inputs))
		for i, arg := range t.Inputs {
			a := *arg
			a.Type = CloneType(arg.Type)
			c.Inputs[i] = &a
		}
		c.Output = CloneType(t.Output)
		return &c
	case *TupleType:
		c := *t
		c.Elems = cloneTypes(t.Elems)
		return &c
	case *PathType:
		c := *t
		if t.QSelf != nil {
			c.QSelf = &QSelf{Type: CloneType(t.QSelf.Type), Trait: ClonePath(t.QSelf.Trait)}
		}
		c.Path = ClonePath(t.Path)
		return &c
	case *TraitObjectType:
		c := *t
		c.Bounds = CloneBounds(t.Bounds)
		return &c
	case *ImplTraitType:
		c := *t
		c.Bounds = CloneBounds(t.Bounds)
		return &c
	case *ParenType:
		c := *t
		c.Elem = CloneType(t.Elem)
		return &c
	case *GroupType:
		c := *t
		c.Elem = CloneType(t.Elem)
		return &c
	case *InferType:
		c := *t
		return &c
	case *NeverType:
		c := *t
		return &c
	case *MacroType:
		c := *t
		mac := *t.Mac
		mac.Path = ClonePath(t.Mac.Path)
		c.Mac = &mac
		return &c
	case *VerbatimType:
		c := *t
		return &c
	}
	return t
}

func cloneTypes(types []Type) []Type {
	if types == nil {
		return nil
	}
	out := make([]Type, len(types))
	for i, t := range types {
		out[i] = CloneType(t)
	}
	return out
}

func ClonePath(p *Path) *Path {
	if p == nil {
		return nil
	}
	c := *p
	c.Segments = make([]*PathSegment, len(p.Segments))
	for i, seg := range p.Segments {
		c.Segments[i] = &PathSegment{Ident: seg.Ident, Arguments: clonePathArgs(seg.Arguments)}
	}
	return &c
}

func clonePathArgs(args PathArguments) PathArguments {
	switch args := args.(type) {
	case *AngleBracketedArgs:
		c := *args
		c.Args = make([]GenericArgument, len(args.Args))
		for i, a := range args.Args {
			c.Args[i] = cloneGenericArg(a)
		}
		return &c
	case *ParenthesizedArgs:
		c := *args
		c.Inputs = cloneTypes(args.Inputs)
		c.Output = CloneType(args.Output)
		return &c
	}
	return nil
}

func cloneGenericArg(a GenericArgument) GenericArgument {
	switch a := a.(type) {
	case *LifetimeArg:
		c := *a
		return &c
	case *TypeArg:
		return &TypeArg{Type: CloneType(a.Type)}
	case *BindingArg:
		return &BindingArg{Ident: a.Ident, Type: CloneType(a.Type)}
	case *ConstraintArg:
		c := *a
		c.Bounds = CloneBounds(a.Bounds)
		return &c
	case *ConstArg:
		c := *a
		return &c
	}
	return a
}

func CloneBounds(bounds []TypeParamBound) []TypeParamBound {
	if bounds == nil {
		return nil
	}
	out := make([]TypeParamBound, len(bounds))
	for i, b := range bounds {
		out[i] = CloneBound(b)
	}
	return out
}

func CloneBound(b TypeParamBound) TypeParamBound {
	switch b := b.(type) {
	case *TraitBound:
		c := *b
		c.Lifetimes = cloneBoundLifetimes(b.Lifetimes)
		c.Path = ClonePath(b.Path)
		return &c
	case *LifetimeBound:
		c := *b
		return &c
	}
	return b
}

func cloneBoundLifetimes(bl *BoundLifetimes) *BoundLifetimes {
	if bl == nil {
		return nil
	}
	c := *bl
	c.Lifetimes = make([]*LifetimeParam, len(bl.Lifetimes))
	for i, lp := range bl.Lifetimes {
		c.Lifetimes[i] = CloneGenericParam(lp).(*LifetimeParam)
	}
	return &c
}

func CloneGenericParam(gp GenericParam) GenericParam {
	switch gp := gp.(type) {
	case *TypeParam:
		c := *gp
		c.Bounds = CloneBounds(gp.Bounds)
		c.Default = CloneType(gp.Default)
		return &c
	case *LifetimeParam:
		c := *gp
		c.Bounds = append([]Lifetime(nil), gp.Bounds...)
		return &c
	case *ConstParam:
		c := *gp
		c.Type = CloneType(gp.Type)
		return &c
	}
	return gp
}

func CloneGenerics(g Generics) Generics {
	c := g
	if g.Params != nil {
		c.Params = make([]GenericParam, len(g.Params))
		for i, gp := range g.Params {
			c.Params[i] = CloneGenericParam(gp)
		}
	}
	if g.Where != nil {
		w := *g.Where
		w.Predicates = make([]WherePredicate, len(g.Where.Predicates))
		for i, pred := range g.Where.Predicates {
			switch pred := pred.(type) {
			case *PredicateType:
				pc := *pred
				pc.Lifetimes = cloneBoundLifetimes(pred.Lifetimes)
				pc.Bounded = CloneType(pred.Bounded)
				pc.Bounds = CloneBounds(pred.Bounds)
				w.Predicates[i] = &pc
			case *PredicateLifetime:
				pc := *pred
				pc.Bounds = append([]Lifetime(nil), pred.Bounds...)
				w.Predicates[i] = &pc
			}
		}
		c.Where = &w
	}
	return c
}

func CloneSignature(sig *Signature) *Signature {
	if sig == nil {
		return nil
	}
	c := *sig
	c.Generics = CloneGenerics(sig.Generics)
	if sig.Inputs != nil {
		c.Inputs = make([]FnArg, len(sig.Inputs))
		for i, arg := range sig.Inputs {
			switch arg := arg.(type) {
			case *Receiver:
				r := *arg
				r.Type = CloneType(arg.Type)
				c.Inputs[i] = &r
			case *PatType:
				pt := *arg
				pat := *arg.Pat
				pt.Pat = &pat
				pt.Type = CloneType(arg.Type)
				c.Inputs[i] = &pt
			}
		}
	}
	c.Output = CloneType(sig.Output)
	return &c
}

func CloneTraitItem(ti TraitItem) TraitItem {
	switch ti := ti.(type) {
	case *TraitItemConst:
		c := *ti
		c.Type = CloneType(ti.Type)
		return &c
	case *TraitItemMethod:
		c := *ti
		c.Sig = CloneSignature(ti.Sig)
		return &c
	case *TraitItemType:
		c := *ti
		c.Generics = CloneGenerics(ti.Generics)
		c.Bounds = CloneBounds(ti.Bounds)
		c.Default = CloneType(ti.Default)
		return &c
	case *TraitItemMacro:
		c := *ti
		return &c
	}
	return ti
}

func CloneItemTrait(t *ItemTrait) *ItemTrait {
	c := *t
	c.Generics = CloneGenerics(t.Generics)
	c.Supertraits = CloneBounds(t.Supertraits)
	c.Items = make([]TraitItem, len(t.Items))
	for i, ti := range t.Items {
		c.Items[i] = CloneTraitItem(ti)
	}
	return &c
}
