package bag

import "fmt"

// RemoveAll is the sentinel quantity instructing Remove to delete the matching
// entry outright instead of decrementing it.
const RemoveAll = -1

// ProductRef identifies a product for bag operations. Plain ids use the ID
// type; richer values (for example a product fetched from the catalog) satisfy
// the interface directly.
type ProductRef interface {
	BagProductID() int
}

// ID is a bare numeric product reference.
type ID int

// BagProductID implements ProductRef.
func (id ID) BagProductID() int { return int(id) }

func resolveProductID(ref ProductRef) (int, error) {
	if ref == nil {
		return 0, fmt.Errorf("%w: nil reference", ErrInvalidProduct)
	}
	id := ref.BagProductID()
	if id < 0 {
		return 0, fmt.Errorf("%w: negative id %d", ErrInvalidProduct, id)
	}
	return id, nil
}

// Add returns a new coding with the given quantity of the product added to the
// bag: the quantity accumulates onto an existing entry for the product or
// starts a new one. The quantity must be positive, otherwise Add fails with
// ErrInvalidQuantity.
func Add(coding string, ref ProductRef, quantity int) (string, error) {
	productID, err := resolveProductID(ref)
	if err != nil {
		return "", err
	}
	if quantity <= 0 {
		return "", fmt.Errorf("%w: add requires a positive quantity, got %d", ErrInvalidQuantity, quantity)
	}

	decoded, err := Decode(coding)
	if err != nil {
		return "", err
	}
	decoded = append(decoded, Entry{ProductID: productID, Quantity: quantity})
	return Encode(Normalize(decoded)), nil
}

// Remove returns a new coding with the product partially or fully removed.
// A quantity of RemoveAll deletes the entry for the product outright; removing
// a product that is not in the bag is a no-op. A positive quantity subtracts,
// pruning the entry when it reaches zero or below. Zero and values below
// RemoveAll fail with ErrInvalidQuantity.
func Remove(coding string, ref ProductRef, quantity int) (string, error) {
	productID, err := resolveProductID(ref)
	if err != nil {
		return "", err
	}
	switch {
	case quantity == RemoveAll:
	case quantity > 0:
	default:
		return "", fmt.Errorf("%w: remove requires %d or a positive quantity, got %d", ErrInvalidQuantity, RemoveAll, quantity)
	}

	decoded, err := Decode(coding)
	if err != nil {
		return "", err
	}

	if quantity == RemoveAll {
		// Product ids are unique after Decode's normalization, so deleting
		// the first match deletes the only match.
		for i, entry := range decoded {
			if entry.ProductID == productID {
				decoded = append(decoded[:i], decoded[i+1:]...)
				break
			}
		}
		return Encode(decoded), nil
	}

	decoded = append(decoded, Entry{ProductID: productID, Quantity: -quantity})
	return Encode(Normalize(decoded)), nil
}
