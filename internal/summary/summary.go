// Package summary asks a language model for a plain-language summary of a
// settlement. The settlement itself is computed elsewhere; the model only sees
// it as text.
package summary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mmynk/settleup/internal/models"
)

// ErrEmptyInput is returned when there is nothing to summarize.
var ErrEmptyInput = errors.New("no settlements or expenses to summarize")

// Request is what the summarizer sees.
type Request struct {
	// Settlements is the rendered settlement text, one payment per line.
	Settlements string
	// Expenses is the raw expense list the settlements came from.
	Expenses []models.Expense
}

// Result is a summary with optional bullet-point insights.
type Result struct {
	Summary  string   `json:"summary"`
	Insights []string `json:"insights"`
}

// Summarizer produces a natural-language summary of a settlement.
type Summarizer interface {
	Summarize(ctx context.Context, req Request) (*Result, error)
}

// BuildPrompt renders the model prompt for req.
func BuildPrompt(req Request) (string, error) {
	if strings.TrimSpace(req.Settlements) == "" && len(req.Expenses) == 0 {
		return "", ErrEmptyInput
	}

	expenses := req.Expenses
	if expenses == nil {
		expenses = []models.Expense{}
	}
	expensesJSON, err := json.MarshalIndent(expenses, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode expenses: %w", err)
	}

	var b strings.Builder
	b.WriteString("You are a helpful assistant that summarizes expense settlements.\n\n")
	b.WriteString("SETTLEMENTS:\n")
	b.WriteString(req.Settlements)
	b.WriteString("\n\nEXPENSES (JSON):\n")
	b.Write(expensesJSON)
	b.WriteString("\n\nPlease return:\n")
	b.WriteString("1. A 2-3 sentence plain-language summary of who pays whom and the total money moved.\n")
	b.WriteString("2. A short bullet list (max 4 bullets) with helpful insights (e.g., who paid most, if there's imbalance, suggestions).\n")
	b.WriteString(`Return JSON with keys: "summary" (string) and "insights" (array of strings).`)
	b.WriteString("\n")
	return b.String(), nil
}

// ParseReply turns the model reply into a Result. Replies that are not the
// requested JSON object become the summary as-is.
func ParseReply(text string) *Result {
	text = strings.TrimSpace(text)
	body := stripCodeFence(text)

	var parsed struct {
		Summary  *string  `json:"summary"`
		Insights []string `json:"insights"`
	}
	if err := json.Unmarshal([]byte(body), &parsed); err != nil {
		return &Result{Summary: text, Insights: []string{}}
	}

	result := &Result{Insights: parsed.Insights}
	if parsed.Summary != nil {
		result.Summary = *parsed.Summary
	} else {
		result.Summary = body
	}
	if result.Insights == nil {
		result.Insights = []string{}
	}
	return result
}

// stripCodeFence removes a surrounding ```json ... ``` block if present.
func stripCodeFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[i+1:]
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
