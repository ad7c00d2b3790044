package storefront

import (
	"errors"
	"strings"
	"testing"
)

func TestTrailKeepsBodyOnlyForMostRecentRequest(t *testing.T) {
	trail := &Trail{}
	trail.begin(TrailEntry{RequestID: "a", Method: "GET", URL: "https://api.example.com/categories"})
	trail.finish(200, `{"data":[]}`)
	trail.begin(TrailEntry{RequestID: "b", Method: "POST", URL: "https://api.example.com/transactions"})
	trail.finish(502, "bad gateway")

	entries := trail.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Status != 0 || entries[0].Body != "" {
		t.Fatalf("expected older entry to be stripped, got %+v", entries[0])
	}
	if entries[0].URL == "" {
		t.Fatalf("expected older entry to keep its URL")
	}
	if entries[1].Status != 502 || entries[1].Body != "bad gateway" {
		t.Fatalf("unexpected last entry %+v", entries[1])
	}

	last, ok := trail.Last()
	if !ok || last.RequestID != "b" {
		t.Fatalf("unexpected last %+v ok=%v", last, ok)
	}
}

func TestFailureErrorMentionsLastRequest(t *testing.T) {
	trail := &Trail{}
	trail.begin(TrailEntry{RequestID: "a", Method: "POST", URL: "https://api.example.com/transactions"})
	trail.finish(500, "boom")

	err := wrapFailure(ErrRemote, trail)
	if !errors.Is(err, ErrRemote) {
		t.Fatalf("expected ErrRemote, got %v", err)
	}
	if !strings.Contains(err.Error(), "POST https://api.example.com/transactions -> 500") {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestWrapFailureNilIsNil(t *testing.T) {
	if err := wrapFailure(nil, &Trail{}); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestFailureTrailOnForeignError(t *testing.T) {
	if _, ok := FailureTrail(errors.New("plain")); ok {
		t.Fatalf("expected no trail on a plain error")
	}
}
