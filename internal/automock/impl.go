package automock

import (
	"github.com/KimMachineGun/automock/internal/syntax"
)

// mockImpl describes a mock of the struct an impl block belongs to. Methods
// of a trait impl are routed through a synthetic trait.
func mockImpl(item *syntax.ItemImpl) (*MockSpec, error) {
	selfType, ok := item.SelfType.(*syntax.PathType)
	if !ok || selfType.QSelf != nil {
		return nil, errorAt(item.SelfType, "only traits and structs can be mocked")
	}
	name, _, err := FindIdentFromPath(selfType.Path)
	if err != nil {
		return nil, err
	}

	var methods []*syntax.TraitItemMethod
	for _, ii := range item.Items {
		switch ii := ii.(type) {
		case *syntax.ImplItemConst:
		case *syntax.ImplItemMethod:
			methods = append(methods, &syntax.TraitItemMethod{
				Attrs: ii.Attrs,
				Sig:   syntax.CloneSignature(ii.Sig),
				Range: ii.Range,
			})
		default:
			return nil, errorAt(ii, "this impl item is not supported")
		}
	}

	spec := &MockSpec{
		Vis:      syntax.Public(),
		Name:     name,
		Generics: syntax.CloneGenerics(item.Generics),
	}
	if item.Trait == nil {
		spec.Methods = methods
		return spec, nil
	}

	if item.Trait.Negative {
		return nil, errorAt(item.Trait.Path, "negative impls cannot be mocked")
	}
	traitName, _, err := FindIdentFromPath(item.Trait.Path)
	if err != nil {
		return nil, err
	}
	segs := item.Trait.Path.Segments
	generics, err := FilterGenerics(&item.Generics, segs[len(segs)-1].Arguments)
	if err != nil {
		return nil, err
	}

	items := make([]syntax.TraitItem, 0, len(methods))
	for _, m := range methods {
		items = append(items, m)
	}
	spec.Traits = []*syntax.ItemTrait{{
		Vis:      syntax.Public(),
		Unsafety: item.Unsafety,
		Ident:    traitName,
		Generics: *generics,
		Items:    items,
		Range:    item.Range,
	}}

	return spec, nil
}
