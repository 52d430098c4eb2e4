package cart

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/shopspring/decimal"
)

// DefaultKey is the namespaced storage key a storefront cart persists under.
const DefaultKey = "eggshop:cart"

// Stage is the drawer's two-mode view.
type Stage string

const (
	StageReview Stage = "review"
	StageHub    Stage = "hub"
)

// Item is one configured, quantified purchasable line. Optional fields are
// pointers: absent is a distinct value, never a wildcard.
type Item struct {
	ProductID   int             `json:"productId"`
	ProductName string          `json:"productName"`
	ProductSlug string          `json:"productSlug"`
	ImageURL    *string         `json:"imageUrl,omitempty"`
	Weight      string          `json:"weight"`
	WeightGrams int             `json:"weightGrams"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Flavor      *string         `json:"flavor,omitempty"`
	FlavorID    *int            `json:"flavorId,omitempty"`
	Shell       *string         `json:"shell,omitempty"`
	VariantKey  *string         `json:"variantKey,omitempty"`
}

// Key identifies a line. Two items are the same line iff every field
// matches, with nil comparing equal only to nil.
type Key struct {
	ProductID  int
	Weight     string
	FlavorID   *int
	Shell      *string
	VariantKey *string
}

func (it Item) Key() Key {
	return Key{
		ProductID:  it.ProductID,
		Weight:     it.Weight,
		FlavorID:   it.FlavorID,
		Shell:      it.Shell,
		VariantKey: it.VariantKey,
	}
}

func eqIntPtr(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func eqStrPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func sameKey(a, b Key) bool {
	return a.ProductID == b.ProductID &&
		a.Weight == b.Weight &&
		eqIntPtr(a.FlavorID, b.FlavorID) &&
		eqStrPtr(a.Shell, b.Shell) &&
		eqStrPtr(a.VariantKey, b.VariantKey)
}

// envelope is the persisted schema. A bare item array is accepted as the
// pre-versioning layout.
type envelope struct {
	Version int    `json:"version"`
	Items   []Item `json:"items"`
}

const schemaVersion = 1

// Cart holds the line items and the drawer view state. All mutations write
// through to storage synchronously.
type Cart struct {
	mu    sync.Mutex
	store Storage
	key   string
	items []Item
	stage Stage
	open  bool
}

// New loads a cart from storage, running migrations over whatever was
// persisted. Absent or malformed data degrades to an empty cart.
func New(store Storage, key string) *Cart {
	c := &Cart{store: store, key: key, stage: StageReview}
	c.load()
	return c
}

func (c *Cart) load() {
	data, err := c.store.Get(c.key)
	if err != nil {
		log.Printf("[CART] load %s: %v", c.key, err)
		return
	}
	if len(data) == 0 {
		return
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		var bare []Item
		if err := json.Unmarshal(data, &bare); err != nil {
			log.Printf("[CART] discarding malformed stored cart %s: %v", c.key, err)
			return
		}
		env.Items = bare
	}

	c.items = migrateItems(env.Items)
	if env.Version != schemaVersion {
		c.persist()
	}
}

func (c *Cart) persist() {
	data, err := json.Marshal(envelope{Version: schemaVersion, Items: c.items})
	if err != nil {
		log.Printf("[CART] marshal %s: %v", c.key, err)
		return
	}
	if err := c.store.Set(c.key, data); err != nil {
		log.Printf("[CART] persist %s: %v", c.key, err)
	}
}

// Items returns a copy of the current lines in insertion order.
func (c *Cart) Items() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// AddItem stacks the quantity onto an existing matching line or appends a
// new one. The add accumulates; it never replaces the existing quantity.
func (c *Cart) AddItem(it Item) {
	if it.Quantity < 1 {
		it.Quantity = 1
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	k := it.Key()
	for i := range c.items {
		if sameKey(c.items[i].Key(), k) {
			c.items[i].Quantity += it.Quantity
			c.persist()
			return
		}
	}
	c.items = append(c.items, it)
	c.persist()
}

// RemoveItem drops the one line matching the key. Removing a missing line
// is a no-op.
func (c *Cart) RemoveItem(k Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLocked(k)
}

func (c *Cart) removeLocked(k Key) {
	for i := range c.items {
		if sameKey(c.items[i].Key(), k) {
			c.items = append(c.items[:i], c.items[i+1:]...)
			c.persist()
			return
		}
	}
}

// UpdateQuantity sets the quantity of the matching line exactly. A quantity
// of zero or less removes the line.
func (c *Cart) UpdateQuantity(k Key, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if quantity <= 0 {
		c.removeLocked(k)
		return
	}
	for i := range c.items {
		if sameKey(c.items[i].Key(), k) {
			c.items[i].Quantity = quantity
			c.persist()
			return
		}
	}
}

// Clear empties all lines and returns the drawer to the review stage.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	c.stage = StageReview
	c.persist()
}

func (c *Cart) TotalItems() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0
	for _, it := range c.items {
		total += it.Quantity
	}
	return total
}

func (c *Cart) TotalPrice() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := decimal.Zero
	for _, it := range c.items {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total.Round(2)
}

func (c *Cart) SetOpen(open bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.open = open
}

func (c *Cart) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}

func (c *Cart) SetStage(s Stage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stage = s
}

func (c *Cart) Stage() Stage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stage
}

// OpenForReview opens the drawer forced to the review stage.
func (c *Cart) OpenForReview() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.open = true
	c.stage = StageReview
}

// OpenForLogisticsHub moves from review into the logistics hub and opens
// the drawer. Calling it while already at the hub keeps it there.
func (c *Cart) OpenForLogisticsHub() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.open = true
	c.stage = StageHub
}
