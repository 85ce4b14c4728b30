package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jask/moneylens/internal/config"
	"github.com/jask/moneylens/internal/ledger"
)

func newTestApp() *App {
	return New(context.Background(), config.Config{}, Repos{}, Services{}, time.UTC)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func testTx(date time.Time, note string) ledger.Transaction {
	return ledger.Transaction{
		ID:     uuid.New(),
		Amount: decimal.NewFromInt(10),
		Type:   ledger.TypeExpense,
		Date:   date,
		Note:   note,
	}
}

func TestDeleteAfterPeriodShrinksVisibleList(t *testing.T) {
	app := newTestApp()

	// Six old transactions only visible in the all-time period, one recent
	// one visible everywhere.
	now := time.Now()
	txns := []ledger.Transaction{testTx(now.Add(-time.Minute), "recent")}
	for i := 0; i < 6; i++ {
		txns = append(txns, testTx(now.AddDate(-2, 0, -i), "old"))
	}
	app.Update(transactionsMsg(txns))
	app.Update(key("t"))

	// Month -> year -> all, then walk the cursor to the end of the list.
	app.Update(key("p"))
	app.Update(key("p"))
	for i := 0; i < len(txns); i++ {
		app.Update(key("down"))
	}
	if app.txCursor != len(txns)-1 {
		t.Fatalf("cursor = %d, want %d", app.txCursor, len(txns)-1)
	}

	// All -> week leaves a single visible transaction.
	app.Update(key("p"))
	if got := len(app.visibleTransactions()); got != 1 {
		t.Fatalf("visible in week view = %d, want 1", got)
	}
	if app.txCursor != 0 {
		t.Fatalf("cursor after period change = %d, want 0", app.txCursor)
	}

	_, cmd := app.Update(key("backspace"))
	if cmd == nil {
		t.Fatal("expected a delete command")
	}
}

func TestTransactionsReloadClampsCursor(t *testing.T) {
	app := newTestApp()
	now := time.Now()

	app.Update(transactionsMsg([]ledger.Transaction{
		testTx(now.Add(-time.Minute), "a"),
		testTx(now.Add(-2*time.Minute), "b"),
		testTx(now.Add(-3*time.Minute), "c"),
	}))
	app.Update(key("t"))
	app.Update(key("down"))
	app.Update(key("down"))

	app.Update(transactionsMsg([]ledger.Transaction{testTx(now.Add(-time.Minute), "a")}))
	if app.txCursor != 0 {
		t.Fatalf("cursor after reload = %d, want 0", app.txCursor)
	}

	// An empty reload must leave the cursor at zero, not -1.
	app.Update(transactionsMsg(nil))
	if app.txCursor != 0 {
		t.Fatalf("cursor after empty reload = %d, want 0", app.txCursor)
	}
}

func TestResetDoneClearsCursorsInUpdate(t *testing.T) {
	app := newTestApp()
	app.txCursor, app.budgetCursor, app.goalCursor, app.dupCursor = 3, 2, 1, 4

	app.Update(resetDoneMsg{})

	if app.txCursor != 0 || app.budgetCursor != 0 || app.goalCursor != 0 || app.dupCursor != 0 {
		t.Fatalf("cursors = %d/%d/%d/%d, want all 0",
			app.txCursor, app.budgetCursor, app.goalCursor, app.dupCursor)
	}
	if app.status != "database reset" {
		t.Fatalf("status = %q", app.status)
	}
}
