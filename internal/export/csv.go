package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/settleup/internal/models"
)

// participantSeparator joins participants inside the single participants column.
const participantSeparator = "|"

var csvHeader = []string{"payer", "amount", "participants"}

// ErrBadCSV is returned for rows that cannot be read back as expenses.
var ErrBadCSV = errors.New("malformed expense csv")

// WriteCSV writes expenses as payer,amount,participants rows under a header.
func WriteCSV(w io.Writer, expenses []models.Expense) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, e := range expenses {
		row := []string{
			e.Payer,
			e.Amount.String(),
			strings.Join(e.Participants, participantSeparator),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV reads expenses written by WriteCSV. The header row is optional.
// Values are trimmed and empty participant names are skipped.
func ReadCSV(r io.Reader) ([]models.Expense, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var expenses []models.Expense
	for line := 1; ; line++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv: %w", err)
		}
		if line == 1 && isHeader(record) {
			continue
		}
		if len(record) < 2 || len(record) > 3 {
			return nil, fmt.Errorf("%w: line %d has %d fields", ErrBadCSV, line, len(record))
		}

		amount, err := decimal.NewFromString(strings.TrimSpace(record[1]))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: invalid amount %q", ErrBadCSV, line, record[1])
		}

		e := models.Expense{
			Payer:  strings.TrimSpace(record[0]),
			Amount: amount,
		}
		if len(record) == 3 {
			for _, p := range strings.Split(record[2], participantSeparator) {
				if p = strings.TrimSpace(p); p != "" {
					e.Participants = append(e.Participants, p)
				}
			}
		}
		expenses = append(expenses, e)
	}
	return expenses, nil
}

func isHeader(record []string) bool {
	return len(record) > 0 && strings.EqualFold(strings.TrimSpace(record[0]), csvHeader[0])
}
