package analytics

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jask/moneylens/internal/ledger"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decEq(t *testing.T, got decimal.Decimal, want string, label string) {
	t.Helper()
	if !got.Equal(dec(want)) {
		t.Fatalf("%s = %s, want %s", label, got, want)
	}
}

type txOpt func(*ledger.Transaction)

func withNote(note string) txOpt {
	return func(t *ledger.Transaction) { t.Note = note }
}

func withAccount(id uuid.UUID) txOpt {
	return func(t *ledger.Transaction) { t.AccountID = &id }
}

func tx(amount string, tt ledger.TransactionType, date time.Time, catID uuid.UUID, catName string, opts ...txOpt) ledger.Transaction {
	t := ledger.Transaction{
		ID:           uuid.New(),
		Amount:       dec(amount),
		Type:         tt,
		Date:         date,
		CategoryID:   catID,
		CategoryName: catName,
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

// fixedNow is mid-month, mid-week (a Wednesday), so calendar windows have
// room on both sides.
var fixedNow = time.Date(2025, time.June, 18, 12, 0, 0, 0, time.UTC)

var (
	foodID      = uuid.NewSHA1(uuid.NameSpaceOID, []byte("test:food"))
	transportID = uuid.NewSHA1(uuid.NameSpaceOID, []byte("test:transport"))
	salaryID    = uuid.NewSHA1(uuid.NameSpaceOID, []byte("test:salary"))
)
