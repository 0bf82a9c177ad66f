package format

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var ars = message.NewPrinter(language.MustParse("es-AR"))

// ARS renders a price in Argentine pesos with locale digit grouping and no
// decimal places. A nil (or non-finite) price reads as "price on request".
func ARS(n *float64) string {
	if n == nil || math.IsNaN(*n) || math.IsInf(*n, 0) {
		return "A consultar"
	}
	return ars.Sprintf("$ %d", int64(math.Round(*n)))
}
