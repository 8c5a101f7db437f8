package automock

import (
	"github.com/KimMachineGun/automock/internal/syntax"
)

// mockModule mocks every function of a module. The generated module is
// named mock_<name>. A mod directive overrides that name here as it does
// for extern blocks, even though the upstream macro ignores it for
// modules; module_renamed.txtar pins this extension.
func mockModule(attrs *Attrs, item *syntax.ItemMod) (string, error) {
	mod := moduleInfo{Name: "mock_" + item.Ident.Name}
	if attrs.ModName != nil {
		mod.Name = attrs.ModName.Name
	}

	for _, it := range item.Content {
		switch it := it.(type) {
		case *syntax.ItemUse, *syntax.ItemExternCrate, *syntax.ItemImpl:
		case *syntax.ItemStatic, *syntax.ItemConst, *syntax.ItemType, *syntax.ItemTraitAlias:
			mod.Items = append(mod.Items, syntax.Print(it))
		case *syntax.ItemFn:
			m, code, err := mockFunction(it.Vis, it.Sig)
			if err != nil {
				return "", err
			}
			mod.Items = append(mod.Items, code)
			mod.Functions = append(mod.Functions, m)
		case *syntax.ItemMod, *syntax.ItemForeignMod, *syntax.ItemStruct, *syntax.ItemEnum,
			*syntax.ItemUnion, *syntax.ItemTrait:
			return "", errorAt(it, "nested mocks are not supported")
		case *syntax.ItemMacro:
			return "", errorAt(it, "macros are not supported in this context")
		default:
			return "", errorAt(it, "content unrecognized")
		}
	}

	return execute("module", mod)
}
