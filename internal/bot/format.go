package bot

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Embed colors.
const (
	colorUp      = 0x00ff00
	colorDown    = 0xff0000
	colorNeutral = 0x3498db
)

const (
	iconUp   = "📈"
	iconDown = "📉"
)

// FormatPrice renders a price as "$65,000.1234".
func FormatPrice(d decimal.Decimal) string {
	return "$" + fixed(d, 4, true)
}

// FormatPercent renders a change as "+1.23%" or "-2.50%".
func FormatPercent(d decimal.Decimal) string {
	sign := "+"
	if d.IsNegative() {
		sign = "-"
	}
	return sign + d.Abs().StringFixedBank(2) + "%"
}

// FormatVolume renders a volume as "1,234".
func FormatVolume(d decimal.Decimal) string {
	return fixed(d, 0, true)
}

// FormatRate renders an annual rate as "3.65%".
func FormatRate(d decimal.Decimal) string {
	return fixed(d, 2, false) + "%"
}

func fixed(d decimal.Decimal, places int32, grouped bool) string {
	s := d.Abs().StringFixedBank(places)
	if grouped {
		s = groupThousands(s)
	}
	if d.IsNegative() {
		s = "-" + s
	}
	return s
}

// groupThousands inserts commas into the integer part of an unsigned number.
func groupThousands(s string) string {
	intPart, frac, hasFrac := strings.Cut(s, ".")
	if len(intPart) <= 3 {
		return s
	}

	var b strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}

// trend picks the embed color and icon for a change.
func trend(change decimal.Decimal) (int, string) {
	if change.IsNegative() {
		return colorDown, iconDown
	}
	return colorUp, iconUp
}
