// Package repository maps sqlite rows to ledger entities. All validation of
// stored raw values happens here; callers above this package only ever see
// the closed ledger types.
package repository

import "errors"

var (
	// ErrNotFound is returned when a lookup by id matches nothing.
	ErrNotFound = errors.New("not found")

	// ErrCategoryTypeMismatch is returned when a transaction references a
	// category whose type differs from the transaction's.
	ErrCategoryTypeMismatch = errors.New("transaction type does not match category type")

	// ErrCategoryInUse is returned when deleting a category that is still
	// referenced by transactions or budgets.
	ErrCategoryInUse = errors.New("category is referenced by existing records")
)

type scanner interface {
	Scan(dest ...interface{}) error
}
