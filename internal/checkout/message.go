package checkout

import (
	"fmt"
	"net/url"
	"strings"

	"eggshop/internal/cart"
	"eggshop/internal/pricing"
)

// BuildMessage renders the order into the structured text block sent over
// WhatsApp. The numeric total always matches what the storefront summary
// shows: an on-request delivery fee is listed but contributes nothing to
// the arithmetic.
func BuildMessage(items []cart.Item, log Logistics) string {
	var b strings.Builder

	b.WriteString("Olá! Gostaria de fazer um pedido:\n\n")

	subtotal := pricing.Round2(sumItems(items))
	for i, it := range items {
		b.WriteString(fmt.Sprintf("%d. %s %s", i+1, it.ProductName, it.Weight))
		if it.Shell != nil {
			b.WriteString(fmt.Sprintf(" (%s)", *it.Shell))
		}
		if it.Flavor != nil {
			b.WriteString(" — " + *it.Flavor)
		}
		line := pricing.Round2(it.Price.Mul(intDecimal(it.Quantity)))
		b.WriteString(fmt.Sprintf("\n   %dx R$ %s = R$ %s\n",
			it.Quantity, pricing.FormatBR(it.Price), pricing.FormatBR(line)))
	}

	b.WriteString("------------------------------\n")
	b.WriteString("Subtotal: R$ " + pricing.FormatBR(subtotal) + "\n")

	total := subtotal
	if log.Method == MethodDelivery && log.RegionID != "" {
		fee, onRequest, found := pricing.RegionFee(log.RegionID)
		if found && onRequest {
			b.WriteString("Entrega: a combinar\n")
		} else if found {
			b.WriteString("Entrega: R$ " + pricing.FormatBR(fee) + "\n")
			total = pricing.Round2(total.Add(fee))
		}
	}
	b.WriteString("Total: R$ " + pricing.FormatBR(total) + "\n")

	switch log.Method {
	case MethodPickup:
		b.WriteString("Recebimento: Retirada\n")
	case MethodDelivery:
		b.WriteString("Recebimento: Entrega\n")
	}
	if log.Date != "" {
		b.WriteString("Data: " + log.Date + "\n")
	}
	if log.Method == MethodDelivery {
		if log.Address != "" {
			b.WriteString("Endereço: " + log.Address + "\n")
		}
		if r, ok := pricing.RegionByID(log.RegionID); ok {
			b.WriteString("Cidade: " + r.Name + "\n")
		}
	}
	if log.Payment != "" {
		b.WriteString("Pagamento: " + log.Payment + "\n")
	}
	if strings.TrimSpace(log.Notes) != "" {
		b.WriteString("Observações: " + log.Notes + "\n")
	}

	b.WriteString("\nObrigado! 🍫")
	return b.String()
}

// EncodeMessage percent-encodes a message once for use in a deep link.
// Spaces become %20, not '+', so every client renders them literally.
func EncodeMessage(text string) string {
	return strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
}

// BuildLink builds the wa.me deep link carrying the encoded message.
func BuildLink(phone, text string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	return "https://wa.me/" + digits + "?text=" + EncodeMessage(text)
}
