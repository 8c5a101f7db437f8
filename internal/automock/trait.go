package automock

import (
	"github.com/KimMachineGun/automock/internal/syntax"
)

// mockTrait describes a mock implementing item, with its associated types
// resolved through attrs.
func mockTrait(attrs *Attrs, item *syntax.ItemTrait) (*MockSpec, error) {
	generics := syntax.CloneGenerics(item.Generics)
	trait, err := attrs.SubstituteTypes(item)
	if err != nil {
		return nil, err
	}

	return &MockSpec{
		Vis:      item.Vis,
		Name:     item.Ident,
		Generics: generics,
		Traits:   []*syntax.ItemTrait{trait},
	}, nil
}
