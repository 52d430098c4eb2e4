package checkout

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"eggshop/internal/cart"
	"eggshop/internal/pricing"
)

// ErrIncomplete is returned when a terminal action runs before every step
// the current selections call for has been answered.
var ErrIncomplete = errors.New("custom egg selections incomplete")

// Builder drives the guided custom-egg flow: a single 1-based step index
// whose meaning is resolved against the accumulated selections.
type Builder struct {
	mu       sync.Mutex
	open     bool
	step     int
	sel      Selections
	quantity int
	log      Logistics
	adv      advanceScheduler
}

func NewBuilder() *Builder {
	return &Builder{step: 1, quantity: 1}
}

func (b *Builder) Open() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.open = true
}

// Close cancels any pending auto-advance and wipes every piece of local
// state. Partial selections never leak into the next session.
func (b *Builder) Close() {
	b.adv.Cancel()
	b.mu.Lock()
	defer b.mu.Unlock()
	b.resetLocked()
}

func (b *Builder) resetLocked() {
	b.open = false
	b.step = 1
	b.sel = Selections{}
	b.quantity = 1
	b.log = Logistics{}
}

func (b *Builder) IsOpen() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.open
}

func (b *Builder) Step() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.step
}

func (b *Builder) CurrentStep() StepKind {
	b.mu.Lock()
	defer b.mu.Unlock()
	return ResolveStep(b.step, b.sel)
}

func (b *Builder) TotalSteps() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return TotalSteps(b.sel)
}

func (b *Builder) Selections() Selections {
	b.mu.Lock()
	defer b.mu.Unlock()
	sel := b.sel
	sel.Shells = append([]ShellConfig(nil), b.sel.Shells...)
	return sel
}

func (b *Builder) Quantity() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.quantity
}

func (b *Builder) SetQuantity(q int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if q < 1 {
		q = 1
	}
	b.quantity = q
}

func (b *Builder) Logistics() Logistics {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.log
}

func (b *Builder) SetLogistics(l Logistics) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.log = l
}

func (b *Builder) SetWeight(grams int) bool {
	w, ok := pricing.WeightByGrams(grams)
	if !ok {
		return false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sel.WeightGrams = w.Grams
	b.sel.Weight = w.Label
	return true
}

// SetArrangement sizes the shell slice to one or two halves, keeping what
// was already configured when possible.
func (b *Builder) SetArrangement(a Arrangement) bool {
	if a != ArrangementSingle && a != ArrangementDual {
		return false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sel.Arrangement = a
	want := 1
	if a == ArrangementDual {
		want = 2
	}
	for len(b.sel.Shells) < want {
		b.sel.Shells = append(b.sel.Shells, ShellConfig{})
	}
	b.sel.Shells = b.sel.Shells[:want]
	return true
}

// ShellOptions lists the shells still selectable for a half. In dual mode
// the other half's color is filtered out, which is how the same-color
// conflict is prevented rather than raised.
func (b *Builder) ShellOptions(half int) []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	taken := ""
	if b.sel.Arrangement == ArrangementDual {
		other := 1 - half
		if other >= 0 && other < len(b.sel.Shells) {
			taken = b.sel.Shells[other].Shell
		}
	}
	var out []string
	for _, s := range pricing.Shells() {
		if s != taken {
			out = append(out, s)
		}
	}
	return out
}

func (b *Builder) SetShell(half int, shell string) bool {
	options := b.ShellOptions(half)
	allowed := false
	for _, s := range options {
		if s == shell {
			allowed = true
			break
		}
	}
	if !allowed {
		return false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if half < 0 || half >= len(b.sel.Shells) {
		return false
	}
	if b.sel.Shells[half].Shell != shell {
		// A topping picked for the old color may not exist for the new one.
		b.sel.Shells[half].Topping = ""
	}
	b.sel.Shells[half].Shell = shell
	return true
}

func (b *Builder) SetFinish(half int, f Finish) bool {
	if f != FinishPieces && f != FinishFilled {
		return false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if half < 0 || half >= len(b.sel.Shells) {
		return false
	}
	if b.sel.Shells[half].Finish != f {
		b.sel.Shells[half].Topping = ""
		b.sel.Shells[half].Filling = ""
	}
	b.sel.Shells[half].Finish = f
	return true
}

func (b *Builder) ToppingOptions(half int) []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if half < 0 || half >= len(b.sel.Shells) {
		return nil
	}
	return pricing.Toppings(b.sel.Shells[half].Shell)
}

func (b *Builder) SetTopping(half int, topping string) bool {
	options := b.ToppingOptions(half)
	allowed := false
	for _, t := range options {
		if t == topping {
			allowed = true
			break
		}
	}
	if !allowed {
		return false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.sel.Shells[half].Finish != FinishPieces {
		return false
	}
	b.sel.Shells[half].Topping = topping
	return true
}

func (b *Builder) SetFilling(half int, name string) bool {
	if _, ok := pricing.FillingByName(name); !ok {
		return false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if half < 0 || half >= len(b.sel.Shells) {
		return false
	}
	if b.sel.Shells[half].Finish != FinishFilled {
		return false
	}
	b.sel.Shells[half].Filling = name
	return true
}

// CanProceed evaluates the validity of the step the index currently
// resolves to.
func (b *Builder) CanProceed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.canProceedLocked()
}

func (b *Builder) canProceedLocked() bool {
	switch ResolveStep(b.step, b.sel) {
	case StepWeight:
		return b.sel.WeightGrams > 0
	case StepArrangement:
		return b.sel.Arrangement != ""
	case StepShells:
		if len(b.sel.Shells) == 0 {
			return false
		}
		for _, sh := range b.sel.Shells {
			if sh.Shell == "" {
				return false
			}
		}
		return true
	case StepFinish:
		for _, sh := range b.sel.Shells {
			if sh.Finish == "" {
				return false
			}
		}
		return len(b.sel.Shells) > 0
	case StepPieces:
		for _, sh := range b.sel.Shells {
			if sh.Finish == FinishPieces && sh.Topping == "" {
				return false
			}
		}
		return true
	case StepFilling:
		for _, sh := range b.sel.Shells {
			if sh.Finish == FinishFilled && sh.Filling == "" {
				return false
			}
		}
		return true
	case StepPayment:
		return b.log.Validate() == nil
	case StepSummary:
		return true
	}
	return false
}

// Next advances one step when the current one is satisfied. Any pending
// auto-advance is invalidated first: a manual Next and a fired timer can
// never double-advance.
func (b *Builder) Next() bool {
	b.adv.Cancel()
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.canProceedLocked() {
		return false
	}
	if b.step >= TotalSteps(b.sel) {
		return false
	}
	b.step++
	return true
}

func (b *Builder) Back() {
	b.adv.Cancel()
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.step > 1 {
		b.step--
	}
}

// ScheduleAdvance arms the auto-advance after a single-choice pick. Touch
// input waits longer than pointer input.
func (b *Builder) ScheduleAdvance(touch bool) {
	delay := AdvanceDelayPointer
	if touch {
		delay = AdvanceDelayTouch
	}
	b.adv.Schedule(delay, func() { b.Next() })
}

// Interrupt cancels any pending auto-advance. Scrolling or typing during
// the delay calls this; a later manual Next still works.
func (b *Builder) Interrupt() {
	b.adv.Cancel()
}

func (b *Builder) selectionsCompleteLocked() bool {
	if b.sel.WeightGrams == 0 || b.sel.Arrangement == "" || len(b.sel.Shells) == 0 {
		return false
	}
	for _, sh := range b.sel.Shells {
		if sh.Shell == "" || sh.Finish == "" {
			return false
		}
		if sh.Finish == FinishPieces && sh.Topping == "" {
			return false
		}
		if sh.Finish == FinishFilled && sh.Filling == "" {
			return false
		}
	}
	return true
}

// UnitPrice is the weight base price plus each configured half's shell and
// filling surcharges, rounded to two places.
func (b *Builder) UnitPrice() decimal.Decimal {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.unitPriceLocked()
}

func (b *Builder) unitPriceLocked() decimal.Decimal {
	w, ok := pricing.WeightByGrams(b.sel.WeightGrams)
	if !ok {
		return decimal.Zero
	}
	price := w.Price
	for _, sh := range b.sel.Shells {
		price = price.Add(pricing.ShellSurcharge(sh.Shell))
		if f, ok := pricing.FillingByName(sh.Filling); ok {
			price = price.Add(f.Surcharge)
		}
	}
	return pricing.Round2(price)
}

func (b *Builder) buildItemLocked() cart.Item {
	variant := uuid.NewString()
	item := cart.Item{
		ProductName: "Ovo personalizado",
		ProductSlug: "ovo-personalizado",
		Weight:      b.sel.Weight,
		WeightGrams: b.sel.WeightGrams,
		Price:       b.unitPriceLocked(),
		Quantity:    b.quantity,
		VariantKey:  &variant,
	}
	if b.sel.Arrangement == ArrangementSingle && len(b.sel.Shells) == 1 {
		shell := b.sel.Shells[0].Shell
		item.Shell = &shell
	}
	desc := describeShells(b.sel.Shells)
	item.Flavor = &desc
	return item
}

func describeShells(shells []ShellConfig) string {
	parts := make([]string, 0, len(shells))
	for _, sh := range shells {
		switch sh.Finish {
		case FinishPieces:
			parts = append(parts, sh.Shell+" com "+sh.Topping)
		case FinishFilled:
			parts = append(parts, sh.Shell+" recheado de "+sh.Filling)
		default:
			parts = append(parts, sh.Shell)
		}
	}
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += " / "
		}
		out += p
	}
	return out
}

// AddToCart builds the single ad hoc line item from the accumulated
// selections and stacks it into the cart under a synthesized variant key so
// it never merges with a catalog line. The builder closes and resets.
func (b *Builder) AddToCart(c *cart.Cart) (cart.Item, error) {
	b.adv.Cancel()
	b.mu.Lock()
	if !b.selectionsCompleteLocked() {
		b.mu.Unlock()
		return cart.Item{}, ErrIncomplete
	}
	if ferr := b.log.Validate(); ferr != nil {
		b.mu.Unlock()
		return cart.Item{}, ferr
	}
	item := b.buildItemLocked()
	b.resetLocked()
	b.mu.Unlock()

	c.AddItem(item)
	return item, nil
}

// SendMessage formats the custom egg as an order message and returns the
// wa.me handoff link. The builder closes and resets.
func (b *Builder) SendMessage(phone string) (string, error) {
	b.adv.Cancel()
	b.mu.Lock()
	if !b.selectionsCompleteLocked() {
		b.mu.Unlock()
		return "", ErrIncomplete
	}
	if ferr := b.log.Validate(); ferr != nil {
		b.mu.Unlock()
		return "", ferr
	}
	item := b.buildItemLocked()
	logistics := b.log
	b.resetLocked()
	b.mu.Unlock()

	text := BuildMessage([]cart.Item{item}, logistics)
	return BuildLink(phone, text), nil
}
