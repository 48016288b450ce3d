package analytics

import (
	"fmt"
	"math"
	"strconv"
)

// FormatCurrency renders a rupiah amount with thousands separators,
// e.g. "Rp 1,250,000". Non-finite and zero amounts render as "Rp 0".
func FormatCurrency(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) || v == 0 {
		return "Rp 0"
	}
	return "Rp " + groupThousands(int64(math.Round(v)))
}

// FormatCompact renders large counts with K/M suffixes for display,
// mirroring the presentation layer's number shortening.
func FormatCompact(v float64) string {
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0) || v == 0:
		return "0"
	case math.Abs(v) >= 1_000_000:
		return fmt.Sprintf("%.1fM", v/1_000_000)
	case math.Abs(v) >= 1_000:
		return fmt.Sprintf("%.1fK", v/1_000)
	default:
		return groupThousands(int64(math.Round(v)))
	}
}

func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := false
	if s[0] == '-' {
		neg = true
		s = s[1:]
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if neg {
		return "-" + s
	}
	return s
}
