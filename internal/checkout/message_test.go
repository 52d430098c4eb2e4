package checkout

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eggshop/internal/cart"
)

func TestMessageTotalsMatchDrawerTotals(t *testing.T) {
	tests := []struct {
		name      string
		regionID  string
		wantTotal string
	}{
		{"numeric fee", "pelotas", "Total: R$ 130,00"},
		{"on-request fee", "outra-cidade", "Total: R$ 120,00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := cart.New(cart.NewMemStore(), cart.DefaultKey)
			c.AddItem(testItem(60, 2))
			d := NewDrawer(c)
			l := validDelivery()
			l.RegionID = tt.regionID
			d.SetLogistics(l)

			msg := BuildMessage(c.Items(), d.Logistics())

			// The message total and the drawer total are the same number.
			assert.Contains(t, msg, tt.wantTotal)
			assert.Contains(t, msg, "Total: R$ "+strings.ReplaceAll(d.FinalTotal().StringFixed(2), ".", ","))
		})
	}
}

func TestMessageOnRequestFeeLine(t *testing.T) {
	c := cart.New(cart.NewMemStore(), cart.DefaultKey)
	c.AddItem(testItem(50, 1))

	l := validDelivery()
	l.RegionID = "outra-cidade"
	msg := BuildMessage(c.Items(), l)

	assert.Contains(t, msg, "Entrega: a combinar")
	assert.Contains(t, msg, "Subtotal: R$ 50,00")
	assert.Contains(t, msg, "Total: R$ 50,00")
}

func TestMessageLineItems(t *testing.T) {
	c := cart.New(cart.NewMemStore(), cart.DefaultKey)
	it := testItem(62.5, 2)
	it.Flavor = strp("Beijinho")
	c.AddItem(it)
	second := testItem(90, 1)
	second.ProductID = 2
	second.ProductName = "Ovo Prestígio"
	second.Shell = strp("Branco")
	c.AddItem(second)

	msg := BuildMessage(c.Items(), Logistics{Method: MethodPickup, Date: "2026-04-03", Payment: "Pix"})

	assert.Contains(t, msg, "1. Ovo Brigadeiro 500g (Ao Leite) — Beijinho")
	assert.Contains(t, msg, "2x R$ 62,50 = R$ 125,00")
	assert.Contains(t, msg, "2. Ovo Prestígio 500g (Branco)")
	assert.Contains(t, msg, "Recebimento: Retirada")
	assert.Contains(t, msg, "Data: 2026-04-03")
	assert.Contains(t, msg, "Pagamento: Pix")
	assert.NotContains(t, msg, "Endereço:", "pickup carries no address line")
	assert.Contains(t, msg, "Obrigado!")
}

func TestMessageObservationsLineIsConditional(t *testing.T) {
	c := cart.New(cart.NewMemStore(), cart.DefaultKey)
	c.AddItem(testItem(50, 1))

	plain := BuildMessage(c.Items(), Logistics{Method: MethodPickup, Date: "2026-04-03", Payment: "Pix"})
	assert.NotContains(t, plain, "Observações:")

	noted := BuildMessage(c.Items(), Logistics{
		Method: MethodPickup, Date: "2026-04-03", Payment: "Pix", Notes: "entregar embrulhado",
	})
	assert.Contains(t, noted, "Observações: entregar embrulhado")
}

func TestEncodeMessageUsesPercentTwenty(t *testing.T) {
	encoded := EncodeMessage("Olá! Total: R$ 10,00")
	assert.NotContains(t, encoded, "+")
	assert.Contains(t, encoded, "%20")
	assert.NotContains(t, encoded, " ")
}

func TestBuildLinkStripsPhoneFormatting(t *testing.T) {
	link := BuildLink("+55 (53) 99999-0000", "oi")
	require.True(t, strings.HasPrefix(link, "https://wa.me/5553999990000?text="))
}

func TestFormattingNeverChangesStoredAmounts(t *testing.T) {
	// The comma rendering is presentation only: the decimal value that the
	// message was built from still computes with a dot.
	v := decimal.NewFromFloat(130).Round(2)
	assert.Equal(t, "130.00", v.StringFixed(2))
}
