package analytics

import (
	"testing"

	"github.com/jask/moneylens/internal/ledger"
)

func TestSuggestCategoryKeywordScore(t *testing.T) {
	// "Lunch at Starbucks" hits two Food keywords and nothing else.
	got, ok := SuggestCategory("Lunch at Starbucks", ledger.TypeExpense)
	if !ok || got != "Food" {
		t.Fatalf("suggestion = %q ok=%v, want Food", got, ok)
	}
}

func TestSuggestCategoryCaseInsensitive(t *testing.T) {
	got, ok := SuggestCategory("UBER TO AIRPORT", ledger.TypeExpense)
	if !ok || got != "Transport" {
		t.Fatalf("suggestion = %q ok=%v, want Transport", got, ok)
	}
}

func TestSuggestCategoryNoMatch(t *testing.T) {
	if got, ok := SuggestCategory("zzzz", ledger.TypeExpense); ok {
		t.Fatalf("suggestion = %q, want no match", got)
	}
	if _, ok := SuggestCategory("", ledger.TypeExpense); ok {
		t.Fatal("empty note must yield no match")
	}
}

func TestSuggestCategoryTieBreaksByTableOrder(t *testing.T) {
	// "payment" votes for both Bills and Salary with one point each; Bills
	// comes first in the table and must win.
	got, ok := SuggestCategory("payment", ledger.TypeExpense)
	if !ok || got != "Bills" {
		t.Fatalf("suggestion = %q ok=%v, want Bills on a tie", got, ok)
	}
}

func TestSuggestCategoryHigherScoreBeatsEarlier(t *testing.T) {
	// One Transport keyword against two Food keywords.
	got, ok := SuggestCategory("coffee and pizza near the bus stop", ledger.TypeExpense)
	if !ok || got != "Food" {
		t.Fatalf("suggestion = %q ok=%v, want Food to outscore Transport", got, ok)
	}
}

func TestSuggestCategorySubstringMatch(t *testing.T) {
	// Keywords match as substrings of the note, not whole words.
	got, ok := SuggestCategory("monthly netflix subscription", ledger.TypeExpense)
	if !ok || got != "Entertainment" {
		t.Fatalf("suggestion = %q ok=%v, want Entertainment", got, ok)
	}
}
