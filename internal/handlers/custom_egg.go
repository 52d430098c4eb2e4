package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"eggshop/internal/checkout"
)

type shellConfigRequest struct {
	Shell   string `json:"shell" binding:"required"`
	Finish  string `json:"finish" binding:"required"`
	Topping string `json:"topping"`
	Filling string `json:"filling"`
}

type customEggRequest struct {
	WeightGrams int                  `json:"weightGrams" binding:"required"`
	Arrangement string               `json:"arrangement" binding:"required"`
	Shells      []shellConfigRequest `json:"shells" binding:"required"`
	Quantity    int                  `json:"quantity"`
	Target      string               `json:"target" binding:"required"`
	Logistics   logisticsRequest     `json:"logistics"`
}

// SubmitCustomEgg replays a finished guided-builder session server-side and
// finishes it with the requested terminal action: stacking the custom line
// into the cart or handing off to WhatsApp.
func SubmitCustomEgg(sessions *CartSessions, phone string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /custom-egg"
		defer handlePanic(c, route)

		var req customEggRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		b, err := replayBuilder(req)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		id, ct := sessions.resolve(c)
		switch req.Target {
		case "cart":
			item, err := b.AddToCart(ct)
			if err != nil {
				respondBuilderError(c, route, err)
				return
			}
			c.JSON(http.StatusOK, gin.H{
				"sessionId": id,
				"item":      item,
				"cart":      cartView(id, ct),
			})
		case "whatsapp":
			link, err := b.SendMessage(phone)
			if err != nil {
				respondBuilderError(c, route, err)
				return
			}
			c.JSON(http.StatusOK, gin.H{
				"sessionId":   id,
				"whatsappUrl": link,
			})
		default:
			respondWithError(c, http.StatusBadRequest, route, "unknown target")
		}
	}
}

func replayBuilder(req customEggRequest) (*checkout.Builder, error) {
	b := checkout.NewBuilder()
	b.Open()

	if !b.SetWeight(req.WeightGrams) {
		return nil, errors.New("unknown weight")
	}
	if !b.SetArrangement(checkout.Arrangement(req.Arrangement)) {
		return nil, errors.New("unknown arrangement")
	}
	for i, sh := range req.Shells {
		if !b.SetShell(i, sh.Shell) {
			return nil, errors.New("invalid shell selection")
		}
		if !b.SetFinish(i, checkout.Finish(sh.Finish)) {
			return nil, errors.New("invalid finish selection")
		}
		if sh.Topping != "" && !b.SetTopping(i, sh.Topping) {
			return nil, errors.New("invalid topping selection")
		}
		if sh.Filling != "" && !b.SetFilling(i, sh.Filling) {
			return nil, errors.New("invalid filling selection")
		}
	}
	if req.Quantity > 0 {
		b.SetQuantity(req.Quantity)
	}
	b.SetLogistics(req.Logistics.toLogistics())
	return b, nil
}

func respondBuilderError(c *gin.Context, route string, err error) {
	var ferr *checkout.FieldError
	if errors.As(err, &ferr) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": ferr.Message,
			"field": ferr.Field,
		})
		return
	}
	if errors.Is(err, checkout.ErrIncomplete) {
		respondWithError(c, http.StatusBadRequest, route, err.Error())
		return
	}
	respondWithError(c, http.StatusInternalServerError, route, "custom egg failed")
}
