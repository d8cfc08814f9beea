// Command settle prints balances and settlement payments for a list of
// expenses read from a CSV or JSON file.
//
// Usage:
//
//	settle -f trip.csv
//	settle -format json < expenses.json
//
// CSV rows are payer,amount,participants with participants separated by "|".
// JSON is either an array of expenses or {"expenses": [...]}.
package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"

	"github.com/mmynk/settleup/internal/calculator"
	"github.com/mmynk/settleup/internal/export"
	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/service"
)

const (
	exitOK      = 0
	exitRuntime = 1
	exitUsage   = 2
)

func main() {
	code, err := run(os.Args[1:], os.Stdin, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "settle: %v\n", err)
	}
	os.Exit(code)
}

func run(args []string, stdin io.Reader, stdout io.Writer) (int, error) {
	fs := flag.NewFlagSet("settle", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	file := fs.String("f", "-", "expense file, - for stdin")
	format := fs.String("format", "", "input format: csv or json (default: from file extension, else detected)")
	noColor := fs.Bool("no-color", false, "disable coloured headers")
	if err := fs.Parse(args); err != nil {
		return exitUsage, err
	}

	in := stdin
	if *file != "-" {
		f, err := os.Open(*file)
		if err != nil {
			return exitRuntime, err
		}
		defer f.Close()
		in = f
		if *format == "" {
			*format = strings.TrimPrefix(filepath.Ext(*file), ".")
		}
	}

	expenses, err := readExpenses(in, *format)
	if err != nil {
		return exitRuntime, err
	}
	if err := service.ValidateExpenses(expenses); err != nil {
		return exitRuntime, fmt.Errorf("invalid expenses: %w", err)
	}

	report(stdout, expenses, !*noColor)
	return exitOK, nil
}

// readExpenses decodes CSV or JSON. An unknown format is detected from the
// first non-space byte.
func readExpenses(r io.Reader, format string) ([]models.Expense, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	format = strings.ToLower(format)
	if format != "csv" && format != "json" {
		trimmed := bytes.TrimSpace(data)
		if len(trimmed) > 0 && (trimmed[0] == '[' || trimmed[0] == '{') {
			format = "json"
		} else {
			format = "csv"
		}
	}

	if format == "csv" {
		return export.ReadCSV(bytes.NewReader(data))
	}

	var list []models.Expense
	if err := json.Unmarshal(data, &list); err == nil {
		return list, nil
	}
	var wrapped struct {
		Expenses []models.Expense `json:"expenses"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, errors.New("input is neither an expense array nor {\"expenses\": [...]}")
	}
	return wrapped.Expenses, nil
}

func report(w io.Writer, expenses []models.Expense, colours bool) {
	heading := func(text string) {
		if colours {
			text = color.New(color.FgGreen, color.OpBold).Render(text)
		}
		fmt.Fprintln(w, text)
	}

	calcExpenses := lo.Map(expenses, func(e models.Expense, _ int) calculator.Expense {
		return calculator.Expense{Payer: e.Payer, Amount: e.Amount, Participants: e.Participants}
	})

	heading(fmt.Sprintf("Expenses (%d)", len(expenses)))
	for _, e := range expenses {
		fmt.Fprintln(w, "  "+export.FormatExpense(e))
	}
	fmt.Fprintln(w)

	heading("Balances")
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Member", "Paid", "Owed", "Net"})
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.SetBorder(false)
	for _, m := range calculator.ComputeMemberBalances(calcExpenses) {
		table.Append([]string{
			m.MemberName,
			m.TotalPaid.StringFixed(2),
			m.TotalOwed.StringFixed(2),
			m.NetBalance.StringFixed(2),
		})
	}
	table.Render()
	fmt.Fprintln(w)

	_, settlements := calculator.Settle(calcExpenses)
	heading("Settlements")
	fmt.Fprintln(w, export.RenderText(lo.Map(settlements, func(s calculator.Settlement, _ int) models.Settlement {
		return models.Settlement{From: s.From, To: s.To, Amount: s.Amount}
	})))
	if len(settlements) > 0 {
		fmt.Fprintf(w, "Total transferred: %s\n", calculator.TotalTransferred(settlements).StringFixed(2))
	}
}
