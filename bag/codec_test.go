package bag

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDecodeEmptyString(t *testing.T) {
	decoded, err := Decode("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(decoded) != 0 {
		t.Fatalf("expected empty bag, got %v", decoded)
	}
}

func TestDecodeRejectsMalformedCodings(t *testing.T) {
	cases := []string{
		"abc",
		"1=2~",
		"1=2=3",
		"~1=2",
		"1=2~3",
		"1=",
		"=2",
		"-1=2",
		"1=-2",
		"1 = 2",
	}
	for _, coding := range cases {
		if _, err := Decode(coding); !errors.Is(err, ErrInvalidEncoding) {
			t.Fatalf("Decode(%q): expected ErrInvalidEncoding, got %v", coding, err)
		}
	}
}

func TestDecodeNormalizes(t *testing.T) {
	decoded, err := Decode("5=2~3=1~5=3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Bag{{ProductID: 5, Quantity: 5}, {ProductID: 3, Quantity: 1}}
	if diff := cmp.Diff(want, decoded); diff != "" {
		t.Fatalf("unexpected bag (-want +got):\n%s", diff)
	}
}

func TestDecodeDropsZeroQuantityPairs(t *testing.T) {
	decoded, err := Decode("5=0~3=1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Bag{{ProductID: 3, Quantity: 1}}
	if diff := cmp.Diff(want, decoded); diff != "" {
		t.Fatalf("unexpected bag (-want +got):\n%s", diff)
	}
}

func TestEncodeEmptyBag(t *testing.T) {
	if coding := Encode(nil); coding != "" {
		t.Fatalf("expected empty coding, got %q", coding)
	}
	if coding := Encode(Bag{}); coding != "" {
		t.Fatalf("expected empty coding, got %q", coding)
	}
}

func TestEncodeJoinsPairs(t *testing.T) {
	coding := Encode(Bag{{ProductID: 5, Quantity: 2}, {ProductID: 3, Quantity: 1}})
	if coding != "5=2~3=1" {
		t.Fatalf("expected 5=2~3=1, got %q", coding)
	}
}

func TestRoundTripNormalizedBags(t *testing.T) {
	bags := []Bag{
		{},
		{{ProductID: 0, Quantity: 1}},
		{{ProductID: 5, Quantity: 2}},
		{{ProductID: 5, Quantity: 2}, {ProductID: 3, Quantity: 1}},
		{{ProductID: 9, Quantity: 7}, {ProductID: 1, Quantity: 1}, {ProductID: 42, Quantity: 13}},
	}
	for _, want := range bags {
		got, err := Decode(Encode(want))
		if err != nil {
			t.Fatalf("round trip of %v: %v", want, err)
		}
		if diff := cmp.Diff(want, got, cmp.Transformer("multiset", asMultiset)); diff != "" {
			t.Fatalf("round trip of %v (-want +got):\n%s", want, diff)
		}
	}
}

func asMultiset(b Bag) map[int]int {
	set := make(map[int]int, len(b))
	for _, entry := range b {
		set[entry.ProductID] += entry.Quantity
	}
	return set
}
