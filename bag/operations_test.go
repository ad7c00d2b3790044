package bag

import (
	"errors"
	"testing"
)

type catalogItem struct {
	id   int
	name string
}

func (p catalogItem) BagProductID() int { return p.id }

func TestAddToEmptyBag(t *testing.T) {
	coding, err := Add("", ID(5), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if coding != "5=2" {
		t.Fatalf("expected 5=2, got %q", coding)
	}
}

func TestAddAccumulatesExistingEntry(t *testing.T) {
	coding, err := Add("5=2", ID(5), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if coding != "5=5" {
		t.Fatalf("expected 5=5, got %q", coding)
	}
}

func TestAddAppendsNewEntry(t *testing.T) {
	coding, err := Add("5=2", ID(3), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if coding != "5=2~3=1" {
		t.Fatalf("expected 5=2~3=1, got %q", coding)
	}
}

func TestAddAcceptsProductRefValues(t *testing.T) {
	coding, err := Add("", catalogItem{id: 9, name: "mug"}, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if coding != "9=1" {
		t.Fatalf("expected 9=1, got %q", coding)
	}
}

func TestAddRejectsNonPositiveQuantities(t *testing.T) {
	for _, quantity := range []int{0, -1, -7} {
		if _, err := Add("", ID(1), quantity); !errors.Is(err, ErrInvalidQuantity) {
			t.Fatalf("Add quantity %d: expected ErrInvalidQuantity, got %v", quantity, err)
		}
	}
}

func TestAddRejectsInvalidProductRefs(t *testing.T) {
	if _, err := Add("", nil, 1); !errors.Is(err, ErrInvalidProduct) {
		t.Fatalf("expected ErrInvalidProduct for nil ref, got %v", err)
	}
	if _, err := Add("", ID(-4), 1); !errors.Is(err, ErrInvalidProduct) {
		t.Fatalf("expected ErrInvalidProduct for negative id, got %v", err)
	}
}

func TestAddRejectsMalformedCoding(t *testing.T) {
	if _, err := Add("nonsense", ID(1), 1); !errors.Is(err, ErrInvalidEncoding) {
		t.Fatalf("expected ErrInvalidEncoding, got %v", err)
	}
}

func TestRemoveAllDeletesEntry(t *testing.T) {
	coding, err := Remove("5=2~3=1", ID(5), RemoveAll)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if coding != "3=1" {
		t.Fatalf("expected 3=1, got %q", coding)
	}
}

func TestRemoveAllAbsentProductIsNoOp(t *testing.T) {
	coding, err := Remove("5=2~3=1", ID(7), RemoveAll)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if coding != "5=2~3=1" {
		t.Fatalf("expected unchanged coding, got %q", coding)
	}
}

func TestRemovePartialQuantity(t *testing.T) {
	coding, err := Remove("5=5", ID(5), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if coding != "5=3" {
		t.Fatalf("expected 5=3, got %q", coding)
	}
}

func TestRemovePrunesWhenQuantityExhausted(t *testing.T) {
	coding, err := Remove("5=2", ID(5), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if coding != "" {
		t.Fatalf("expected empty coding, got %q", coding)
	}
}

func TestRemoveRejectsInvalidQuantities(t *testing.T) {
	for _, quantity := range []int{0, -2, -10} {
		if _, err := Remove("", ID(1), quantity); !errors.Is(err, ErrInvalidQuantity) {
			t.Fatalf("Remove quantity %d: expected ErrInvalidQuantity, got %v", quantity, err)
		}
	}
}
