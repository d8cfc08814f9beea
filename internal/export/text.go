// Package export renders settlements and expenses for people and spreadsheets.
package export

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/mmynk/settleup/internal/models"
)

// AllSettled is the text shown when nobody owes anything.
const AllSettled = "All settled."

// RenderText renders one "<from> -> <amount> -> <to>" line per settlement.
func RenderText(settlements []models.Settlement) string {
	if len(settlements) == 0 {
		return AllSettled
	}
	lines := lo.Map(settlements, func(s models.Settlement, _ int) string {
		return fmt.Sprintf("%s -> %s -> %s", s.From, s.Amount.StringFixed(2), s.To)
	})
	return strings.Join(lines, "\n")
}

// FormatExpense renders an expense for the expense list, e.g.
// "Alice paid 12.50 for Alice, Bob".
func FormatExpense(e models.Expense) string {
	line := fmt.Sprintf("%s paid %s", e.Payer, e.Amount.StringFixed(2))
	if len(e.Participants) > 0 {
		line += " for " + strings.Join(e.Participants, ", ")
	}
	return line
}
