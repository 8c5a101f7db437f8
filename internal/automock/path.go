package automock

import (
	"github.com/KimMachineGun/automock/internal/syntax"
)

// FindIdentFromPath returns the identifier and generic arguments of a
// single-segment path.
func FindIdentFromPath(p *syntax.Path) (syntax.Ident, syntax.PathArguments, error) {
	if len(p.Segments) != 1 {
		return syntax.Ident{}, nil, errorAt(p, "only declarations defined in the current module are supported")
	}
	seg := p.Segments[0]

	return seg.Ident, seg.Arguments, nil
}
