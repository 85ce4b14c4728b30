package service

import (
	"context"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"

	"github.com/jask/moneylens/internal/database/repository"
	"github.com/jask/moneylens/internal/ledger"
)

// fuzzyNoteRatio is the normalized edit-distance ceiling below which two
// notes are considered the same purchase.
const fuzzyNoteRatio = 0.4

// maxDuplicateDaysApart bounds how far apart two occurrences of the same
// purchase can plausibly land.
const maxDuplicateDaysApart = 7

// DuplicatePair is a likely double entry, surfaced for user review. Nothing
// is merged automatically.
type DuplicatePair struct {
	A          ledger.Transaction
	B          ledger.Transaction
	Similarity float64
}

// DuplicateService flags probable double-entered transactions.
type DuplicateService struct {
	Transactions *repository.TransactionRepo
}

// Detect scans all transactions pairwise and returns fuzzy candidates:
// same amount and type, dates within a week, notes within the edit-distance
// ceiling.
func (s *DuplicateService) Detect(ctx context.Context) ([]DuplicatePair, error) {
	txns, err := s.Transactions.List(ctx, repository.TransactionFilters{})
	if err != nil {
		return nil, err
	}
	return DetectDuplicates(txns), nil
}

// DetectDuplicates is the pure pairing pass, split out for reuse over an
// already loaded snapshot.
func DetectDuplicates(txns []ledger.Transaction) []DuplicatePair {
	var out []DuplicatePair
	for i := 0; i < len(txns); i++ {
		for j := i + 1; j < len(txns); j++ {
			a, b := txns[i], txns[j]
			if !matchFuzzyCandidate(a, b) {
				continue
			}
			out = append(out, DuplicatePair{A: a, B: b, Similarity: similarity(a, b)})
		}
	}
	return out
}

func matchFuzzyCandidate(a, b ledger.Transaction) bool {
	if a.Type != b.Type || !a.Amount.Equal(b.Amount) {
		return false
	}
	if daysApart(a.Date, b.Date) > maxDuplicateDaysApart {
		return false
	}
	if a.Note == "" && b.Note == "" {
		return true
	}
	dist := levenshtein.ComputeDistance(strings.ToUpper(a.Note), strings.ToUpper(b.Note))
	maxlen := len(a.Note)
	if len(b.Note) > maxlen {
		maxlen = len(b.Note)
	}
	if maxlen == 0 {
		return false
	}
	return float64(dist)/float64(maxlen) < fuzzyNoteRatio
}

func similarity(a, b ledger.Transaction) float64 {
	if a.Note == "" && b.Note == "" {
		return 1
	}
	maxlen := len(a.Note)
	if len(b.Note) > maxlen {
		maxlen = len(b.Note)
	}
	if maxlen == 0 {
		return 0
	}
	return 1 - float64(levenshtein.ComputeDistance(a.Note, b.Note))/float64(maxlen)
}

func daysApart(a, b time.Time) int {
	d := a.Sub(b)
	if d < 0 {
		d = -d
	}
	return int(d.Hours() / 24)
}
