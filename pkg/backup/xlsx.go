package backup

import (
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/davecgh/go-spew/spew"
	"github.com/tealeg/xlsx"

	"github.com/Dineshd5/BudgetSMS/pkg/inbox"
)

// column headers accepted in SMS backup exports; different backup apps label
// the same columns differently
var (
	idHeaders      = []string{"id", "message id"}
	dateHeaders    = []string{"date", "timestamp", "received"}
	addressHeaders = []string{"address", "sender", "from"}
	bodyHeaders    = []string{"body", "message", "text"}
)

// ParseExport reads an exported SMS backup spreadsheet into raw messages.
// The first sheet is used; the first row must be a header row.
func ParseExport(data []byte) ([]inbox.SMS, error) {
	file, err := xlsx.OpenBinary(data)
	if err != nil {
		return nil, err
	}

	if len(file.Sheets) == 0 {
		return nil, errors.New("no sheets found")
	}

	sheet := file.Sheets[0]
	if len(sheet.Rows) < 2 {
		return nil, errors.New("no rows found")
	}

	idIdx := columnIndex(sheet.Rows[0].Cells, idHeaders)
	dateIdx := columnIndex(sheet.Rows[0].Cells, dateHeaders)
	addressIdx := columnIndex(sheet.Rows[0].Cells, addressHeaders)
	bodyIdx := columnIndex(sheet.Rows[0].Cells, bodyHeaders)

	if dateIdx < 0 || bodyIdx < 0 {
		return nil, errors.Newf("export is missing a date or body column, got %v",
			spew.Sdump(headerValues(sheet.Rows[0].Cells)))
	}

	var messages []inbox.SMS

	for i := 1; i < len(sheet.Rows); i++ {
		cells := sheet.Rows[i].Cells

		body := cellValue(cells, bodyIdx)
		if body == "" {
			continue
		}

		receivedAt, dateErr := parseCellDate(cellValue(cells, dateIdx))
		if dateErr != nil {
			return nil, errors.Wrapf(dateErr, "row %d", i)
		}

		id := cellValue(cells, idIdx)
		if id == "" {
			// backups without an id column still need a stable per-row key
			id = strconv.FormatInt(receivedAt.UnixMilli(), 10)
		}

		messages = append(messages, inbox.SMS{
			ID:         id,
			Address:    cellValue(cells, addressIdx),
			Body:       body,
			ReceivedAt: receivedAt,
		})
	}

	return messages, nil
}

func headerValues(headerCells []*xlsx.Cell) []string {
	headers := make([]string, 0, len(headerCells))
	for _, cell := range headerCells {
		headers = append(headers, cell.String())
	}

	return headers
}

func columnIndex(headerCells []*xlsx.Cell, names []string) int {
	for i, cell := range headerCells {
		header := strings.ToLower(strings.TrimSpace(cell.String()))

		for _, name := range names {
			if header == name {
				return i
			}
		}
	}

	return -1
}

func cellValue(cells []*xlsx.Cell, idx int) string {
	if idx < 0 || idx >= len(cells) {
		return ""
	}

	return strings.TrimSpace(cells[idx].String())
}

func parseCellDate(value string) (time.Time, error) {
	if millis, err := strconv.ParseInt(value, 10, 64); err == nil {
		return time.UnixMilli(millis), nil
	}

	for _, layout := range []string{time.DateTime, time.DateOnly, time.RFC3339} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}

	return time.Time{}, errors.Newf("can not parse date: %s", value)
}
