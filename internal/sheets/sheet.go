package sheets

import (
	"context"
	"strconv"
	"strings"
)

// sheet binds a ValuesClient to one named sheet within one spreadsheet and
// exposes the whole-range operations the ledger is built from. Every
// operation is independently atomic on the Sheets side; nothing here adds
// cross-operation isolation.
type sheet struct {
	client        ValuesClient
	spreadsheetID string
	name          string
}

func (s *sheet) getAll(ctx context.Context, majorDimension string) ([][]any, error) {
	return s.client.Get(ctx, s.spreadsheetID, s.name, majorDimension)
}

// append writes a single row into the first free row at or after anchor and
// returns the range it occupied, with the sheet name stripped.
func (s *sheet) append(ctx context.Context, anchor string, row []any) (string, error) {
	rng, err := s.client.Append(ctx, s.spreadsheetID, s.rangeOf(anchor), [][]any{row})
	if err != nil {
		return "", err
	}
	return stripSheetName(rng), nil
}

func (s *sheet) update(ctx context.Context, rng string, values [][]any) error {
	return s.client.Update(ctx, s.spreadsheetID, s.rangeOf(rng), values)
}

func (s *sheet) clear(ctx context.Context, rng string) error {
	return s.client.Clear(ctx, s.spreadsheetID, s.rangeOf(rng))
}

func (s *sheet) rangeOf(rng string) string {
	return s.name + "!" + rng
}

// Cell decoding. Unformatted reads hand back float64 for numeric cells and
// string for everything else; blank cells are absent or empty strings.

func cellAt(cells []any, index int) any {
	if index < 0 || index >= len(cells) {
		return nil
	}
	return cells[index]
}

func cellString(v any) string {
	switch c := v.(type) {
	case string:
		return c
	case float64:
		return strconv.FormatFloat(c, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(c)
	default:
		return ""
	}
}

func cellFloat(v any) float64 {
	switch c := v.(type) {
	case float64:
		return c
	case int:
		return float64(c)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(c), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

func cellInt(v any) int {
	return int(cellFloat(v))
}
