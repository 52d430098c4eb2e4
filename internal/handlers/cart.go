package handlers

import (
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"eggshop/internal/cart"
	"eggshop/internal/checkout"
)

const sessionHeader = "X-Session-ID"

// CartSessions hands out one persistent cart per storefront session.
type CartSessions struct {
	mu    sync.Mutex
	store cart.Storage
	carts map[string]*cart.Cart
}

func NewCartSessions(store cart.Storage) *CartSessions {
	return &CartSessions{store: store, carts: make(map[string]*cart.Cart)}
}

// resolve returns the session id (minting one when absent) and its cart.
func (s *CartSessions) resolve(c *gin.Context) (string, *cart.Cart) {
	id := c.GetHeader(sessionHeader)
	if id == "" {
		id = uuid.NewString()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	ct, ok := s.carts[id]
	if !ok {
		ct = cart.New(s.store, cart.DefaultKey+":"+id)
		s.carts[id] = ct
	}
	return id, ct
}

/* =========================
   CART DTOs
========================= */

type cartItemRequest struct {
	ProductID   int     `json:"productId"`
	ProductName string  `json:"productName" binding:"required"`
	ProductSlug string  `json:"productSlug"`
	ImageURL    *string `json:"imageUrl"`
	Weight      string  `json:"weight" binding:"required"`
	WeightGrams int     `json:"weightGrams"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity" binding:"required"`
	Flavor      *string `json:"flavor"`
	FlavorID    *int    `json:"flavorId"`
	Shell       *string `json:"shell"`
	VariantKey  *string `json:"variantKey"`
}

func (r cartItemRequest) toItem() cart.Item {
	return cart.Item{
		ProductID:   r.ProductID,
		ProductName: r.ProductName,
		ProductSlug: r.ProductSlug,
		ImageURL:    r.ImageURL,
		Weight:      r.Weight,
		WeightGrams: r.WeightGrams,
		Price:       decimal.NewFromFloat(r.Price).Round(2),
		Quantity:    r.Quantity,
		Flavor:      r.Flavor,
		FlavorID:    r.FlavorID,
		Shell:       r.Shell,
		VariantKey:  r.VariantKey,
	}
}

type cartKeyRequest struct {
	ProductID  int     `json:"productId"`
	Weight     string  `json:"weight" binding:"required"`
	FlavorID   *int    `json:"flavorId"`
	Shell      *string `json:"shell"`
	VariantKey *string `json:"variantKey"`
	Quantity   int     `json:"quantity"`
}

func (r cartKeyRequest) toKey() cart.Key {
	return cart.Key{
		ProductID:  r.ProductID,
		Weight:     r.Weight,
		FlavorID:   r.FlavorID,
		Shell:      r.Shell,
		VariantKey: r.VariantKey,
	}
}

func cartView(id string, ct *cart.Cart) gin.H {
	return gin.H{
		"sessionId":  id,
		"items":      ct.Items(),
		"totalItems": ct.TotalItems(),
		"totalPrice": ct.TotalPrice(),
		"stage":      ct.Stage(),
		"open":       ct.IsOpen(),
	}
}

/* =========================
   CART ENDPOINTS
========================= */

func GetCart(sessions *CartSessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ct := sessions.resolve(c)
		c.JSON(http.StatusOK, cartView(id, ct))
	}
}

func AddCartItem(sessions *CartSessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /cart/items"
		defer handlePanic(c, route)

		var req cartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		id, ct := sessions.resolve(c)
		ct.AddItem(req.toItem())
		c.JSON(http.StatusOK, cartView(id, ct))
	}
}

func UpdateCartItem(sessions *CartSessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /cart/items"
		defer handlePanic(c, route)

		var req cartKeyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		id, ct := sessions.resolve(c)
		ct.UpdateQuantity(req.toKey(), req.Quantity)
		c.JSON(http.StatusOK, cartView(id, ct))
	}
}

func RemoveCartItem(sessions *CartSessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /cart/items"
		defer handlePanic(c, route)

		var req cartKeyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		id, ct := sessions.resolve(c)
		ct.RemoveItem(req.toKey())
		c.JSON(http.StatusOK, cartView(id, ct))
	}
}

func ClearCart(sessions *CartSessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ct := sessions.resolve(c)
		ct.Clear()
		c.JSON(http.StatusOK, cartView(id, ct))
	}
}

type stageRequest struct {
	Stage string `json:"stage" binding:"required"`
}

func SetCartStage(sessions *CartSessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /cart/stage"
		defer handlePanic(c, route)

		var req stageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		id, ct := sessions.resolve(c)
		switch cart.Stage(req.Stage) {
		case cart.StageReview:
			ct.OpenForReview()
		case cart.StageHub:
			ct.OpenForLogisticsHub()
		default:
			respondWithError(c, http.StatusBadRequest, route, "unknown stage")
			return
		}
		c.JSON(http.StatusOK, cartView(id, ct))
	}
}

/* =========================
   CHECKOUT
========================= */

type logisticsRequest struct {
	Method   string `json:"method"`
	Address  string `json:"address"`
	RegionID string `json:"regionId"`
	Date     string `json:"date"`
	Payment  string `json:"payment"`
	Notes    string `json:"notes"`
}

func (r logisticsRequest) toLogistics() checkout.Logistics {
	return checkout.Logistics{
		Method:   checkout.Method(r.Method),
		Address:  r.Address,
		RegionID: r.RegionID,
		Date:     r.Date,
		Payment:  r.Payment,
		Notes:    r.Notes,
	}
}

// CheckoutQuote derives the delivery fee and final total for the current
// cart and logistics selections, without submitting anything.
func CheckoutQuote(sessions *CartSessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /checkout/quote"
		defer handlePanic(c, route)

		var req logisticsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		_, ct := sessions.resolve(c)
		drawer := checkout.NewDrawer(ct)
		drawer.SetLogistics(req.toLogistics())

		fee, onRequest := drawer.DeliveryFee()
		c.JSON(http.StatusOK, gin.H{
			"subtotal":     ct.TotalPrice(),
			"deliveryFee":  fee,
			"feeOnRequest": onRequest,
			"disclaimer":   drawer.FeeDisclaimer(),
			"total":        drawer.FinalTotal(),
		})
	}
}

// SubmitCheckout drives the drawer controller end to end: validation with a
// field-targeted error, the order record, and the WhatsApp handoff link.
func SubmitCheckout(sessions *CartSessions, orders checkout.OrderCreator, phone string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /checkout/submit"
		defer handlePanic(c, route)

		var req logisticsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		_, ct := sessions.resolve(c)
		if len(ct.Items()) == 0 {
			respondWithError(c, http.StatusBadRequest, route, "cart is empty")
			return
		}

		drawer := checkout.NewDrawer(ct)
		drawer.SetLogistics(req.toLogistics())

		result, err := drawer.Submit(c.Request.Context(), orders, phone)
		if err != nil {
			var ferr *checkout.FieldError
			if errors.As(err, &ferr) {
				c.JSON(http.StatusUnprocessableEntity, gin.H{
					"error": ferr.Message,
					"field": ferr.Field,
				})
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "checkout failed")
			return
		}

		c.JSON(http.StatusOK, result)
	}
}
