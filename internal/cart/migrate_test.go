package cart

import (
	"encoding/json"
	"testing"
)

func TestFlavorSpellingMigrationCorrectsLoadedCart(t *testing.T) {
	store := NewMemStore()
	item := milkEgg(1)
	item.Flavor = strPtr("Brigadeiro Tradiconal")
	data, err := json.Marshal(envelope{Version: 0, Items: []Item{item}})
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Set(DefaultKey, data); err != nil {
		t.Fatal(err)
	}

	c := New(store, DefaultKey)
	items := c.Items()
	if len(items) != 1 || items[0].Flavor == nil {
		t.Fatalf("expected one flavored line, got %+v", items)
	}
	if *items[0].Flavor != "Brigadeiro Tradicional" {
		t.Fatalf("expected corrected flavor name, got %q", *items[0].Flavor)
	}
}

func TestFlavorSpellingMigrationIsIdempotent(t *testing.T) {
	canonical := strPtr("Brigadeiro Tradicional")
	items := []Item{{ProductID: 1, Weight: "500g", Quantity: 1, Flavor: canonical}}

	once := fixFlavorSpelling(items)
	twice := fixFlavorSpelling(once)

	if *twice[0].Flavor != "Brigadeiro Tradicional" {
		t.Fatalf("canonical flavor must be a fixed point, got %q", *twice[0].Flavor)
	}
}

func TestMigrationSkipsUnflavoredLines(t *testing.T) {
	items := []Item{{ProductID: 1, Weight: "500g", Quantity: 1}}
	out := migrateItems(items)
	if out[0].Flavor != nil {
		t.Fatalf("expected flavorless line untouched, got %+v", out[0])
	}
}
