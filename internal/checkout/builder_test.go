package checkout

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eggshop/internal/cart"
	"eggshop/internal/pricing"
)

// walkToPayment drives a dual builder with half 1 getting pieces and half 2
// getting a filling, up to the payment step.
func walkToPayment(t *testing.T, b *Builder) {
	t.Helper()
	b.Open()

	require.True(t, b.SetWeight(500))
	require.True(t, b.Next())

	require.True(t, b.SetArrangement(ArrangementDual))
	require.True(t, b.Next())

	require.True(t, b.SetShell(0, pricing.ShellMilk))
	require.True(t, b.SetShell(1, pricing.ShellWhite))
	require.True(t, b.Next())

	require.True(t, b.SetFinish(0, FinishPieces))
	require.True(t, b.SetFinish(1, FinishFilled))
	require.True(t, b.Next())

	require.Equal(t, StepPieces, b.CurrentStep())
	require.True(t, b.SetTopping(0, "Amendoim crocante"))
	require.True(t, b.Next())

	require.Equal(t, StepFilling, b.CurrentStep())
	require.True(t, b.SetFilling(1, "Beijinho"))
	require.True(t, b.Next())

	require.Equal(t, StepPayment, b.CurrentStep())
}

func TestBuilderFullDualWalk(t *testing.T) {
	b := NewBuilder()
	walkToPayment(t, b)

	assert.Equal(t, 8, b.TotalSteps())

	// Payment step blocks until logistics is complete.
	assert.False(t, b.CanProceed())
	b.SetLogistics(Logistics{Method: MethodPickup, Date: "2026-04-03", Payment: "Pix"})
	assert.True(t, b.CanProceed())
	require.True(t, b.Next())
	assert.Equal(t, StepSummary, b.CurrentStep())
}

func TestBuilderCannotSkipUnansweredStep(t *testing.T) {
	b := NewBuilder()
	b.Open()

	assert.False(t, b.Next(), "weight step must be answered first")
	require.True(t, b.SetWeight(350))
	require.True(t, b.Next())
	assert.False(t, b.Next(), "arrangement not chosen yet")
}

func TestDualModeForbidsSameColorTwice(t *testing.T) {
	b := NewBuilder()
	b.Open()
	require.True(t, b.SetWeight(500))
	require.True(t, b.SetArrangement(ArrangementDual))
	require.True(t, b.SetShell(0, pricing.ShellMilk))

	options := b.ShellOptions(1)
	assert.NotContains(t, options, pricing.ShellMilk, "taken color is filtered out")
	assert.False(t, b.SetShell(1, pricing.ShellMilk), "conflicting pick is refused")
	assert.True(t, b.SetShell(1, pricing.ShellWhite))
}

func TestWhiteShellUnlocksThirdTopping(t *testing.T) {
	b := NewBuilder()
	b.Open()
	require.True(t, b.SetWeight(500))
	require.True(t, b.SetArrangement(ArrangementDual))
	require.True(t, b.SetShell(0, pricing.ShellMilk))
	require.True(t, b.SetShell(1, pricing.ShellWhite))
	require.True(t, b.SetFinish(0, FinishPieces))
	require.True(t, b.SetFinish(1, FinishPieces))

	assert.Len(t, b.ToppingOptions(0), 2)
	assert.Len(t, b.ToppingOptions(1), 3)
	assert.False(t, b.SetTopping(0, "Confete colorido"), "white-only topping refused for milk half")
	assert.True(t, b.SetTopping(1, "Confete colorido"))
}

func TestChangingShellClearsStaleTopping(t *testing.T) {
	b := NewBuilder()
	b.Open()
	require.True(t, b.SetWeight(500))
	require.True(t, b.SetArrangement(ArrangementSingle))
	require.True(t, b.SetShell(0, pricing.ShellWhite))
	require.True(t, b.SetFinish(0, FinishPieces))
	require.True(t, b.SetTopping(0, "Confete colorido"))

	require.True(t, b.SetShell(0, pricing.ShellMilk))
	assert.Empty(t, b.Selections().Shells[0].Topping)
}

func TestSwitchingArrangementPreservesFirstHalf(t *testing.T) {
	b := NewBuilder()
	b.Open()
	require.True(t, b.SetWeight(500))
	require.True(t, b.SetArrangement(ArrangementDual))
	require.True(t, b.SetShell(0, pricing.ShellDark))
	require.True(t, b.SetShell(1, pricing.ShellWhite))

	require.True(t, b.SetArrangement(ArrangementSingle))
	sel := b.Selections()
	require.Len(t, sel.Shells, 1)
	assert.Equal(t, pricing.ShellDark, sel.Shells[0].Shell)
}

func TestAddToCartBuildsOneVariantLine(t *testing.T) {
	b := NewBuilder()
	walkToPayment(t, b)
	b.SetLogistics(Logistics{Method: MethodPickup, Date: "2026-04-03", Payment: "Pix"})
	b.SetQuantity(2)

	c := cart.New(cart.NewMemStore(), cart.DefaultKey)
	item, err := b.AddToCart(c)
	require.NoError(t, err)

	require.NotNil(t, item.VariantKey)
	assert.Nil(t, item.Shell, "dual eggs carry no single shell name")
	require.NotNil(t, item.Flavor)
	assert.Contains(t, *item.Flavor, "Ao Leite com Amendoim crocante")
	assert.Contains(t, *item.Flavor, "Branco recheado de Beijinho")
	assert.Equal(t, 2, item.Quantity)

	// 500g base 120 + white surcharge 5. Beijinho carries none.
	assert.True(t, item.Price.Equal(decimal.NewFromInt(125)), "got %s", item.Price)

	require.Len(t, c.Items(), 1)

	// The builder resets completely.
	assert.Equal(t, 1, b.Step())
	assert.False(t, b.IsOpen())
	assert.Empty(t, b.Selections().Shells)
}

func TestAddToCartRefusesIncompleteSelections(t *testing.T) {
	b := NewBuilder()
	b.Open()
	require.True(t, b.SetWeight(500))

	c := cart.New(cart.NewMemStore(), cart.DefaultKey)
	_, err := b.AddToCart(c)
	assert.ErrorIs(t, err, ErrIncomplete)
	assert.Empty(t, c.Items())
}

func TestAddToCartRequiresPaymentValidity(t *testing.T) {
	b := NewBuilder()
	walkToPayment(t, b)

	c := cart.New(cart.NewMemStore(), cart.DefaultKey)
	_, err := b.AddToCart(c)

	var ferr *FieldError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, FieldMethod, ferr.Field)
}

func TestSendMessageBuildsLinkAndResets(t *testing.T) {
	b := NewBuilder()
	walkToPayment(t, b)
	b.SetLogistics(Logistics{Method: MethodPickup, Date: "2026-04-03", Payment: "Pix"})

	link, err := b.SendMessage("5553999990000")
	require.NoError(t, err)
	assert.Contains(t, link, "https://wa.me/5553999990000?text=")
	assert.Contains(t, link, "Ovo%20personalizado")

	assert.Equal(t, 1, b.Step())
	assert.False(t, b.IsOpen())
}

func TestCloseWipesPartialState(t *testing.T) {
	b := NewBuilder()
	b.Open()
	require.True(t, b.SetWeight(750))
	require.True(t, b.Next())
	require.True(t, b.SetArrangement(ArrangementDual))

	b.Close()

	assert.Equal(t, 1, b.Step())
	sel := b.Selections()
	assert.Zero(t, sel.WeightGrams)
	assert.Empty(t, sel.Shells)
	assert.Equal(t, 1, b.Quantity())
}

func TestUnitPriceAddsSurcharges(t *testing.T) {
	b := NewBuilder()
	b.Open()
	require.True(t, b.SetWeight(500))
	require.True(t, b.SetArrangement(ArrangementSingle))
	require.True(t, b.SetShell(0, pricing.ShellDark))
	require.True(t, b.SetFinish(0, FinishFilled))
	require.True(t, b.SetFilling(0, "Ninho com Nutella"))

	// 120 base + 8 dark shell + 10 filling.
	assert.True(t, b.UnitPrice().Equal(decimal.NewFromInt(138)), "got %s", b.UnitPrice())
}
