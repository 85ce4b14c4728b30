package analytics

import (
	"strings"

	"github.com/jask/moneylens/internal/ledger"
)

// keywordCategory pairs a category name with the lowercase keywords that vote
// for it. The table is a slice, not a map: scoring ties break by position, so
// ordering must be stable across runs.
type keywordCategory struct {
	name     string
	keywords []string
}

var categoryKeywords = []keywordCategory{
	{"Food", []string{"restaurant", "cafe", "food", "grocery", "supermarket", "meal", "lunch", "dinner", "breakfast", "pizza", "burger", "coffee", "starbucks", "mcdonald"}},
	{"Transport", []string{"uber", "taxi", "gas", "fuel", "parking", "metro", "bus", "train", "flight", "airport", "car", "transport"}},
	{"Shopping", []string{"amazon", "store", "shop", "mall", "clothing", "clothes", "shoes", "online", "purchase"}},
	{"Entertainment", []string{"movie", "cinema", "netflix", "spotify", "game", "concert", "theater", "entertainment"}},
	{"Bills", []string{"electricity", "water", "gas bill", "internet", "phone", "utility", "bill", "payment"}},
	{"Health", []string{"pharmacy", "doctor", "hospital", "medicine", "medical", "health", "dentist"}},
	{"Education", []string{"school", "university", "course", "book", "education", "tuition"}},
	{"Salary", []string{"salary", "paycheck", "income", "wage", "payment"}},
	{"Investment", []string{"investment", "stock", "dividend", "profit", "return"}},
}

// SuggestCategory scores the note against every category's keyword set and
// returns the best-scoring category name. Each keyword occurring as a
// substring of the lowercased note counts one point; the first category to
// reach the maximum wins. Returns false when nothing matches. The transaction
// type is accepted for interface symmetry but does not influence scoring.
func SuggestCategory(note string, _ ledger.TransactionType) (string, bool) {
	lowered := strings.ToLower(note)

	best := ""
	bestScore := 0
	for _, kc := range categoryKeywords {
		score := 0
		for _, kw := range kc.keywords {
			if strings.Contains(lowered, kw) {
				score++
			}
		}
		if score > bestScore {
			best = kc.name
			bestScore = score
		}
	}
	if bestScore == 0 {
		return "", false
	}
	return best, true
}
