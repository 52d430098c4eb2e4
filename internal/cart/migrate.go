package cart

// Stored carts are treated as versioned data: an ordered list of pure
// migrations runs on every load. Each migration must be idempotent so
// replaying it over already-migrated data is a no-op.

type migration struct {
	name  string
	apply func([]Item) []Item
}

var migrations = []migration{
	{name: "fix-flavor-spelling", apply: fixFlavorSpelling},
}

// flavorSpellingFixes maps historical misspellings that shipped in early
// carts to the canonical flavor names.
var flavorSpellingFixes = map[string]string{
	"Brigadeiro Tradiconal": "Brigadeiro Tradicional",
	"Maracuja":              "Maracujá",
}

func fixFlavorSpelling(items []Item) []Item {
	for i := range items {
		if items[i].Flavor == nil {
			continue
		}
		if fixed, ok := flavorSpellingFixes[*items[i].Flavor]; ok {
			f := fixed
			items[i].Flavor = &f
		}
	}
	return items
}

func migrateItems(items []Item) []Item {
	for _, m := range migrations {
		items = m.apply(items)
	}
	return items
}
