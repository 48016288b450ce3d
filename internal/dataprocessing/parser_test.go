package dataprocessing

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fullHeader mirrors the raw export header after the two banner rows.
var fullHeader = []string{
	"ID Kreator", "Kreator", "Nama panggilan", "Waktu Live", "Durasi",
	"GMV yang didapat dari LIVE (Rp)", "Penonton", "Pesanan SKU (LIVE)",
	"Suka pada LIVE", "Komentar", "Live Dibagikan",
	"Pengikut baru (Video kreator)", "CTR",
}

func sheetRows(dataRows ...[]string) [][]string {
	rows := [][]string{
		{"Laporan LIVE harian"},
		{""},
		fullHeader,
	}
	return append(rows, dataRows...)
}

func TestParseRows(t *testing.T) {
	p := NewParser(slog.Default())
	ctx := context.Background()

	t.Run("normalizes a clean batch", func(t *testing.T) {
		rows := sheetRows(
			[]string{"101", "alice", "Ali", "2024-03-15 20:00:00", "1h 30m", "Rp 250000", "1200", "45", "300", "80", "20", "15", "2,5%"},
			[]string{"102", "bob", "", "", "45m", "90000", "400", "12", "50", "10", "5", "3", "1.2%"},
		)

		sessions, err := p.ParseRows(ctx, rows)
		require.NoError(t, err)
		require.Len(t, sessions, 2)

		alice := sessions[0]
		assert.Equal(t, "alice", alice.CreatorID)
		assert.Equal(t, "Ali", alice.CreatorName)
		require.NotNil(t, alice.StartTime)
		assert.Equal(t, 90, alice.DurationMinutes)
		assert.InDelta(t, 250000, alice.GMVLive, 1e-9)
		assert.Equal(t, 1200, alice.ViewerCount)
		assert.Equal(t, 45, alice.OrderCount)
		assert.Equal(t, 300, alice.Likes)
		assert.InDelta(t, 2.5, alice.CTR, 1e-9)

		bob := sessions[1]
		assert.Equal(t, "bob", bob.CreatorID)
		// Nickname falls back to the creator identity.
		assert.Equal(t, "bob", bob.CreatorName)
		assert.Nil(t, bob.StartTime)
		assert.Equal(t, 45, bob.DurationMinutes)
	})

	t.Run("drops blank rows and blank creators", func(t *testing.T) {
		rows := sheetRows(
			[]string{"", "", "", "", "", "", "", "", "", "", "", "", ""},
			[]string{"103", "", "Anon", "", "10m", "5000", "100", "2", "", "", "", "", ""},
			[]string{"104", "carol", "", "", "10m", "5000", "100", "2", "", "", "", "", ""},
		)

		sessions, err := p.ParseRows(ctx, rows)
		require.NoError(t, err)
		require.Len(t, sessions, 1)
		assert.Equal(t, "carol", sessions[0].CreatorID)
	})

	t.Run("malformed cells coerce to zero", func(t *testing.T) {
		rows := sheetRows(
			[]string{"105", "dave", "", "not a date", "soon", "n/a", "-", "abc", "-", "-", "-", "-", "??"},
		)

		sessions, err := p.ParseRows(ctx, rows)
		require.NoError(t, err)
		require.Len(t, sessions, 1)

		s := sessions[0]
		assert.Nil(t, s.StartTime)
		assert.Zero(t, s.DurationMinutes)
		assert.Zero(t, s.GMVLive)
		assert.Zero(t, s.ViewerCount)
		assert.Zero(t, s.OrderCount)
		assert.Zero(t, s.CTR)
	})

	t.Run("missing mandatory column rejects the batch", func(t *testing.T) {
		header := []string{"ID Kreator", "Kreator", "GMV yang didapat dari LIVE (Rp)", "Pesanan SKU (LIVE)"}
		rows := [][]string{
			{"banner"},
			{},
			header,
			{"101", "alice", "1000", "3"},
		}

		sessions, err := p.ParseRows(ctx, rows)
		assert.Nil(t, sessions)

		var schemaErr *SchemaError
		require.ErrorAs(t, err, &schemaErr)
		assert.Equal(t, []string{ColViewers}, schemaErr.Missing)
	})

	t.Run("no header row at all rejects the batch", func(t *testing.T) {
		rows := [][]string{
			{"just", "noise"},
			{"more", "noise"},
		}

		_, err := p.ParseRows(ctx, rows)
		var schemaErr *SchemaError
		require.ErrorAs(t, err, &schemaErr)
		assert.Equal(t, requiredColumns, schemaErr.Missing)
	})
}
