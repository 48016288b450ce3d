package dataprocessing

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"streampulse/internal/normalize"
	"streampulse/pkg/contracts/domain"
)

// Parser loads live-stream session exports and produces normalized Sessions.
// Parsing is deliberately forgiving: individual malformed cells coerce to
// zero values, only a missing mandatory column rejects the whole batch.
type Parser struct {
	logger *slog.Logger
}

// NewParser creates a parser. A nil logger falls back to slog.Default.
func NewParser(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{logger: logger}
}

// ParseWorkbook reads an xlsx export from r and returns the normalized
// sessions. The exports carry two banner rows above the header, so the
// header row is discovered by scanning for a row that maps at least one
// mandatory column.
func (p *Parser) ParseWorkbook(ctx context.Context, r io.Reader) ([]domain.Session, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	p.logger.InfoContext(ctx, "loaded workbook",
		slog.String("sheet", sheets[0]),
		slog.Int("total_rows", len(rows)))

	return p.ParseRows(ctx, rows)
}

// ParseRows converts raw sheet rows into Sessions. The first row that maps
// the creator column is taken as the header; everything above it is banner
// content and skipped.
func (p *Parser) ParseRows(ctx context.Context, rows [][]string) ([]domain.Session, error) {
	headerIdx := -1
	var indexes map[string]int

	for i, row := range rows {
		if i > 10 {
			break
		}
		mapped := mapHeaders(row)
		if _, ok := mapped[ColCreator]; ok {
			headerIdx = i
			indexes = mapped
			break
		}
	}

	if headerIdx == -1 {
		return nil, &SchemaError{Missing: requiredColumns}
	}

	if err := validateRequired(indexes); err != nil {
		p.logger.WarnContext(ctx, "batch rejected, schema incomplete",
			slog.String("error", err.Error()))
		return nil, err
	}

	sessions := make([]domain.Session, 0, len(rows)-headerIdx-1)
	dropped := 0

	for _, row := range rows[headerIdx+1:] {
		raw := extractRow(row, indexes)
		if isBlank(raw) || strings.TrimSpace(raw[ColCreator]) == "" {
			dropped++
			continue
		}
		sessions = append(sessions, buildSession(raw))
	}

	p.logger.InfoContext(ctx, "parsed sessions",
		slog.Int("sessions", len(sessions)),
		slog.Int("dropped_rows", dropped))

	return sessions, nil
}

// extractRow pulls the mapped cells of one sheet row into a RawRow.
func extractRow(row []string, indexes map[string]int) RawRow {
	raw := make(RawRow, len(indexes))
	for col, idx := range indexes {
		if idx < len(row) {
			raw[col] = row[idx]
		}
	}
	return raw
}

// isBlank reports whether every mapped cell of the row is empty.
func isBlank(raw RawRow) bool {
	for _, v := range raw {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// buildSession normalizes one raw row into a Session. Numeric coercion never
// fails; counter fields are clamped at zero so a stray negative cell cannot
// leak into the model.
func buildSession(raw RawRow) domain.Session {
	s := domain.Session{
		CreatorID:       strings.TrimSpace(raw[ColCreator]),
		CreatorName:     strings.TrimSpace(raw[ColNickname]),
		StartTime:       normalize.Timestamp(raw[ColStartTime]),
		DurationMinutes: clampInt(normalize.DurationMinutes(raw[ColDuration])),

		GMVLive:       clamp(normalize.Number(raw[ColGMVLive])),
		GMVGross:      clamp(normalize.Number(raw[ColGMVGross])),
		ViewerCount:   clampInt(int(normalize.Number(raw[ColViewers]))),
		OrderCount:    clampInt(int(normalize.Number(raw[ColOrdersLive]))),
		Buyers:        clampInt(int(normalize.Number(raw[ColBuyers]))),
		ProductsAdded: clampInt(int(normalize.Number(raw[ColProductsAdded]))),
		ProductsSold:  clampInt(int(normalize.Number(raw[ColProductsSold]))),

		Likes:        clampInt(int(normalize.Number(raw[ColLikes]))),
		Comments:     clampInt(int(normalize.Number(raw[ColComments]))),
		Shares:       clampInt(int(normalize.Number(raw[ColShares]))),
		NewFollowers: clampInt(int(normalize.Number(raw[ColNewFollowers]))),
		Views:        clampInt(int(normalize.Number(raw[ColViews]))),
		AvgWatchTime: clamp(normalize.Number(raw[ColAvgWatchTime])),

		CTR:              clamp(normalize.Percent(raw[ColCTR])),
		AdConversionRate: clamp(normalize.Percent(raw[ColAdConversionRate])),
	}
	if s.CreatorName == "" {
		s.CreatorName = s.CreatorID
	}
	return s
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

func clampInt(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
