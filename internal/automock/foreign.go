package automock

import (
	"github.com/KimMachineGun/automock/internal/syntax"
)

// mockForeign mocks the functions of an extern block inside the module named
// by the mod directive. Foreign functions are always unsafe to call.
func mockForeign(attrs *Attrs, item *syntax.ItemForeignMod) (string, error) {
	if attrs.ModName == nil {
		return "", errorAt(item, `extern blocks need a "mod <name>;" attribute to name the generated module`)
	}

	mod := moduleInfo{Name: attrs.ModName.Name}
	for _, fi := range item.Items {
		switch fi := fi.(type) {
		case *syntax.ForeignItemFn:
			sig := syntax.CloneSignature(fi.Sig)
			sig.Unsafety = true
			m, code, err := mockFunction(fi.Vis, sig)
			if err != nil {
				return "", err
			}
			mod.Items = append(mod.Items, code)
			mod.Functions = append(mod.Functions, m)
		case *syntax.ForeignItemStatic, *syntax.ForeignItemType:
			mod.Items = append(mod.Items, syntax.Print(fi))
		case *syntax.ForeignItemMacro:
			return "", errorAt(fi, "macros are not supported in this context")
		default:
			return "", errorAt(fi, "content unrecognized")
		}
	}

	return execute("module", mod)
}
