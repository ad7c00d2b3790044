// Package bag implements the shopping bag coding shared with the storefront
// API: a compact string holding product/quantity pairs that callers persist in
// a cookie or session between requests. All functions are pure and perform no
// I/O.
package bag

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidEncoding indicates a serialized bag string that does not match
	// the bag grammar.
	ErrInvalidEncoding = errors.New("bag: invalid encoding")
	// ErrInvalidEntry indicates a bag entry with a negative product id or a
	// non-positive quantity after normalization.
	ErrInvalidEntry = errors.New("bag: invalid entry")
	// ErrInvalidQuantity indicates an operation-level quantity constraint
	// violation.
	ErrInvalidQuantity = errors.New("bag: invalid quantity")
	// ErrInvalidProduct indicates a product reference that cannot be resolved
	// to a usable product id.
	ErrInvalidProduct = errors.New("bag: invalid product reference")
)

// Entry is a single product/quantity pair inside a bag.
type Entry struct {
	ProductID int
	Quantity  int
}

// Bag is an ordered sequence of entries. Semantically it is a multiset keyed
// by product id: order is insertion order and carries no meaning for equality.
// A normalized bag has unique product ids and strictly positive quantities.
type Bag []Entry

// Normalize merges duplicate products and prunes non-positive quantities.
// Merging happens first: the earliest entry for a product id accumulates the
// quantities of every later entry for the same id. Only once all merges are
// resolved are entries with quantity <= 0 dropped, so an entry that dips to
// zero mid-merge but recovers later survives. The input is not mutated.
func Normalize(b Bag) Bag {
	if len(b) == 0 {
		return Bag{}
	}

	merged := make(Bag, 0, len(b))
	position := make(map[int]int, len(b))
	for _, entry := range b {
		if at, seen := position[entry.ProductID]; seen {
			merged[at].Quantity += entry.Quantity
			continue
		}
		position[entry.ProductID] = len(merged)
		merged = append(merged, entry)
	}

	result := make(Bag, 0, len(merged))
	for _, entry := range merged {
		if entry.Quantity > 0 {
			result = append(result, entry)
		}
	}
	return result
}

// Validate reports whether every entry carries a non-negative product id and a
// positive quantity. Decode applies it after normalization; callers holding a
// hand-built bag can use it before Encode.
func Validate(b Bag) error {
	for _, entry := range b {
		if entry.ProductID < 0 {
			return fmt.Errorf("%w: negative product id %d", ErrInvalidEntry, entry.ProductID)
		}
		if entry.Quantity <= 0 {
			return fmt.Errorf("%w: non-positive quantity %d for product %d", ErrInvalidEntry, entry.Quantity, entry.ProductID)
		}
	}
	return nil
}
