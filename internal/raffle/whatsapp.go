package raffle

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"
)

// BuildConfirmationLink builds a WhatsApp deep link pre-filled with the
// confirmation message for the buyer. Nothing is sent; the admin opens the
// link. The recipient phone is normalized to digits only as wa.me requires.
func BuildConfirmationLink(order OrderView) string {
	message := fmt.Sprintf(
		"¡Hola %s! 🎉 Tu pedido %s ha sido confirmado. Números: %s. Cantidad: %d. Total: $%.2f. ¡Mucha suerte en el sorteo!",
		order.Name,
		order.OrderID,
		strings.Join(order.Numbers, ", "),
		order.Qty,
		order.Total,
	)
	// QueryEscape encodes spaces as '+', which WhatsApp renders literally.
	encoded := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return fmt.Sprintf("https://wa.me/%s?text=%s", NormalizePhone(order.Phone), encoded)
}

// NormalizePhone strips everything but digits from a phone number.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
