package checkout

import (
	"context"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"eggshop/internal/cart"
	"eggshop/internal/models"
	"eggshop/internal/pricing"
)

// OrderCreator records an order with the backend. Implementations are
// expected to be attempted exactly once per submission; the drawer treats a
// failure as non-fatal.
type OrderCreator interface {
	CreateOrder(ctx context.Context, order models.Order) (string, error)
}

// Drawer is the two-stage checkout controller operating on top of a cart:
// review (line editing) and the logistics hub.
type Drawer struct {
	cart *cart.Cart
	log  Logistics
}

func NewDrawer(c *cart.Cart) *Drawer {
	return &Drawer{cart: c}
}

func (d *Drawer) Cart() *cart.Cart { return d.cart }

func (d *Drawer) Logistics() Logistics { return d.log }

func (d *Drawer) SetLogistics(l Logistics) { d.log = l }

func (d *Drawer) SetMethod(m Method)    { d.log.Method = m }
func (d *Drawer) SetAddress(a string)   { d.log.Address = a }
func (d *Drawer) SetRegion(id string)   { d.log.RegionID = id }
func (d *Drawer) SetDate(date string)   { d.log.Date = date }
func (d *Drawer) SetPayment(p string)   { d.log.Payment = p }
func (d *Drawer) SetNotes(notes string) { d.log.Notes = notes }

// DeliveryFee derives the fee from the current selections. onRequest marks
// the "to be arranged" zone: the storefront shows a disclaimer and the fee
// contributes nothing to the total.
func (d *Drawer) DeliveryFee() (fee decimal.Decimal, onRequest bool) {
	if d.log.Method != MethodDelivery || d.log.RegionID == "" {
		return decimal.Zero, false
	}
	fee, onRequest, found := pricing.RegionFee(d.log.RegionID)
	if !found {
		return decimal.Zero, false
	}
	return fee, onRequest
}

// FeeDisclaimer reports whether the "fee to be confirmed" notice applies.
func (d *Drawer) FeeDisclaimer() bool {
	_, onRequest := d.DeliveryFee()
	return onRequest
}

// FinalTotal is the cart total plus the numeric delivery fee.
func (d *Drawer) FinalTotal() decimal.Decimal {
	fee, onRequest := d.DeliveryFee()
	total := d.cart.TotalPrice()
	if onRequest {
		return total
	}
	return pricing.Round2(total.Add(fee))
}

// Validate reports the first unmet submission requirement, or nil.
func (d *Drawer) Validate() *FieldError {
	return d.log.Validate()
}

// SubmitResult reports how a submission completed. Confirmed means the
// order record was created; otherwise the customer is redirected to the
// messaging handoff only.
type SubmitResult struct {
	OrderID   string `json:"orderId,omitempty"`
	Confirmed bool   `json:"confirmed"`
	Link      string `json:"whatsappUrl"`
}

// Submit records the order and builds the messaging handoff. A failed order
// record never blocks the handoff: the customer is redirected either way,
// but the cart is cleared and the drawer reset only on confirmed success.
func (d *Drawer) Submit(ctx context.Context, orders OrderCreator, phone string) (SubmitResult, error) {
	if ferr := d.Validate(); ferr != nil {
		return SubmitResult{}, ferr
	}

	items := d.cart.Items()
	order := d.buildOrder(items)

	var result SubmitResult
	id, err := orders.CreateOrder(ctx, order)
	if err != nil {
		log.Printf("[CHECKOUT] order record failed, falling back to redirect: %v", err)
	} else {
		result.OrderID = id
		result.Confirmed = true
	}

	text := BuildMessage(items, d.log)
	result.Link = BuildLink(phone, text)

	if result.Confirmed {
		d.cart.Clear()
		d.cart.SetOpen(false)
	}
	d.log = Logistics{}

	return result, nil
}

func (d *Drawer) buildOrder(items []cart.Item) models.Order {
	out := make([]models.OrderItem, 0, len(items))
	for _, it := range items {
		oi := models.OrderItem{
			ProductID: it.ProductID,
			Name:      it.ProductName,
			Weight:    it.Weight,
			Price:     it.Price.InexactFloat64(),
			Quantity:  it.Quantity,
		}
		if it.Flavor != nil {
			oi.Flavor = *it.Flavor
		}
		if it.Shell != nil {
			oi.Shell = *it.Shell
		}
		out = append(out, oi)
	}

	region := ""
	if r, ok := pricing.RegionByID(d.log.RegionID); ok && d.log.Method == MethodDelivery {
		region = r.Name
	}

	return models.Order{
		Items:         out,
		Total:         d.FinalTotal().StringFixed(2),
		Method:        string(d.log.Method),
		Address:       d.log.Address,
		Region:        region,
		Date:          d.log.Date,
		PaymentMethod: d.log.Payment,
		Notes:         d.log.Notes,
		Status:        "pending",
		CreatedAt:     time.Now(),
	}
}

func sumItems(items []cart.Item) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Price.Mul(intDecimal(it.Quantity)))
	}
	return total
}

func intDecimal(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}
