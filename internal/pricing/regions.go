package pricing

import "github.com/shopspring/decimal"

// Region is a delivery-fee zone. FeeOnRequest marks a zone whose fee is
// arranged with the customer after the order, so Fee carries no meaning.
type Region struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Fee          decimal.Decimal `json:"fee"`
	FeeOnRequest bool            `json:"feeOnRequest"`
}

// regions is a closed set. Fee lookups must go through RegionFee so an
// unknown id is reported instead of silently costing zero.
var regions = []Region{
	{ID: "pelotas", Name: "Pelotas", Fee: decimal.NewFromInt(10)},
	{ID: "outra-cidade", Name: "Outra cidade", FeeOnRequest: true},
}

func Regions() []Region {
	out := make([]Region, len(regions))
	copy(out, regions)
	return out
}

func RegionByID(id string) (Region, bool) {
	for _, r := range regions {
		if r.ID == id {
			return r, true
		}
	}
	return Region{}, false
}

// RegionFee resolves the flat delivery fee for a region. onRequest reports a
// zone whose fee is arranged later; the returned fee is zero in that case and
// must not be added to any total.
func RegionFee(id string) (fee decimal.Decimal, onRequest bool, found bool) {
	r, ok := RegionByID(id)
	if !ok {
		return decimal.Zero, false, false
	}
	if r.FeeOnRequest {
		return decimal.Zero, true, true
	}
	return r.Fee, false, true
}
