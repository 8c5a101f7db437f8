package automock

import (
	"github.com/KimMachineGun/automock/internal/syntax"
)

// MockSpec describes a mock for the Builder: its name, visibility and
// generics, the methods it exposes directly and the traits it implements.
type MockSpec struct {
	Vis      syntax.Visibility
	Name     syntax.Ident
	Generics syntax.Generics
	Methods  []*syntax.TraitItemMethod
	Traits   []*syntax.ItemTrait
}

// Builder turns a MockSpec into source text.
type Builder interface {
	Build(spec *MockSpec) (string, error)
}
