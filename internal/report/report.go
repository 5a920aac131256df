// Package report formats bill results for people: currency strings, balance
// status lines and a plain-text summary of a whole bill.
package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/mmynk/billsplitter/internal/calculator"
	"github.com/mmynk/billsplitter/internal/models"
	"github.com/mmynk/billsplitter/internal/money"
)

const (
	// EmptyMessage is shown instead of results for a bill with nothing in it.
	EmptyMessage = "Add participants and expenses to see results"

	// SettledMessage is shown when no payments are needed.
	SettledMessage = "Everything is settled! No payments needed."
)

var printer = message.NewPrinter(language.English)

// Currency formats the absolute value of d as dollars, e.g. "$1,234.50".
// The sign is carried by the surrounding wording, not the number.
func Currency(d decimal.Decimal) string {
	rounded := money.Round(d.Abs())
	fixed := money.Format(rounded)
	cents := fixed[strings.LastIndexByte(fixed, '.')+1:]
	return printer.Sprintf("$%d", rounded.IntPart()) + "." + cents
}

// BalanceStatus describes a net balance from the participant's side.
func BalanceStatus(balance decimal.Decimal) string {
	rounded := money.Round(balance)
	switch {
	case rounded.IsPositive():
		return "Gets back " + Currency(rounded)
	case rounded.IsNegative():
		return "Owes " + Currency(rounded)
	default:
		return Currency(decimal.Zero) + " (settled)"
	}
}

// SettlementLine renders one payment, e.g. "Bob pays Alice $50.00".
func SettlementLine(bill *models.BillData, s models.Settlement) string {
	return fmt.Sprintf("%s pays %s %s", bill.ParticipantName(s.From), bill.ParticipantName(s.To), Currency(s.Amount))
}

// Render writes a plain-text report of bill: header, total, one status line per
// participant and the settlement plan.
func Render(w io.Writer, bill *models.BillData) error {
	out := bufio.NewWriter(w)
	fmt.Fprintf(out, "%s (%s)\n", bill.Title, bill.Date)

	if len(bill.Participants) == 0 || len(bill.Expenses) == 0 {
		fmt.Fprintln(out, EmptyMessage)
		return out.Flush()
	}

	sheet, err := calculator.CalculateBalances(bill.Participants, bill.Expenses)
	if err != nil {
		return fmt.Errorf("failed to calculate balances: %w", err)
	}
	settlements := calculator.PlanSettlements(sheet)

	fmt.Fprintf(out, "Total: %s\n\nBalances\n", Currency(calculator.TotalExpenses(bill.Expenses)))

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, b := range sheet.Entries() {
		fmt.Fprintf(tw, "  %s\t%s\n", bill.ParticipantName(b.ParticipantID), BalanceStatus(b.NetBalance))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(out, "\nSettlements")
	if len(settlements) == 0 {
		fmt.Fprintln(out, "  "+SettledMessage)
	}
	for _, s := range settlements {
		fmt.Fprintln(out, "  "+SettlementLine(bill, s))
	}

	// bufio keeps the first write error and reports it here
	return out.Flush()
}
