package pricing

import "github.com/shopspring/decimal"

// Chocolate shells offered for egg halves.
const (
	ShellMilk  = "Ao Leite"
	ShellWhite = "Branco"
	ShellDark  = "Meio Amargo"
)

func Shells() []string {
	return []string{ShellMilk, ShellWhite, ShellDark}
}

// WeightOption is one purchasable egg size for the custom builder.
type WeightOption struct {
	Grams int             `json:"grams"`
	Label string          `json:"label"`
	Price decimal.Decimal `json:"price"`
}

var weights = []WeightOption{
	{Grams: 350, Label: "350g", Price: decimal.NewFromInt(90)},
	{Grams: 500, Label: "500g", Price: decimal.NewFromInt(120)},
	{Grams: 750, Label: "750g", Price: decimal.NewFromInt(160)},
	{Grams: 1000, Label: "1kg", Price: decimal.NewFromInt(200)},
}

func Weights() []WeightOption {
	out := make([]WeightOption, len(weights))
	copy(out, weights)
	return out
}

func WeightByGrams(grams int) (WeightOption, bool) {
	for _, w := range weights {
		if w.Grams == grams {
			return w, true
		}
	}
	return WeightOption{}, false
}

var shellSurcharges = map[string]decimal.Decimal{
	ShellMilk:  decimal.Zero,
	ShellWhite: decimal.NewFromInt(5),
	ShellDark:  decimal.NewFromInt(8),
}

func ShellSurcharge(shell string) decimal.Decimal {
	if s, ok := shellSurcharges[shell]; ok {
		return s
	}
	return decimal.Zero
}

// Toppings lists the crunchy-pieces options for a shell. The sprinkles
// option only reads well against white chocolate, so it is offered for
// that shell alone.
func Toppings(shell string) []string {
	base := []string{"Amendoim crocante", "Castanha de caju"}
	if shell == ShellWhite {
		return append(base, "Confete colorido")
	}
	return base
}

// Filling is a cream option for a filled egg half.
type Filling struct {
	Name      string          `json:"name"`
	Surcharge decimal.Decimal `json:"surcharge"`
}

var fillings = []Filling{
	{Name: "Brigadeiro Tradicional"},
	{Name: "Beijinho"},
	{Name: "Prestígio", Surcharge: decimal.NewFromInt(5)},
	{Name: "Maracujá", Surcharge: decimal.NewFromInt(5)},
	{Name: "Ninho com Nutella", Surcharge: decimal.NewFromInt(10)},
}

func Fillings() []Filling {
	out := make([]Filling, len(fillings))
	copy(out, fillings)
	return out
}

func FillingByName(name string) (Filling, bool) {
	for _, f := range fillings {
		if f.Name == name {
			return f, true
		}
	}
	return Filling{}, false
}
