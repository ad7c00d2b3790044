package storefront

// TrailEntry records one attempted request against the remote API. Status and
// Body are only retained for the most recent request of a call; earlier
// entries keep their URL for attribution but have Status zeroed and Body
// cleared.
type TrailEntry struct {
	RequestID string
	Method    string
	URL       string
	Status    int
	Body      string
}

// Trail is the diagnostic context accumulated during a single client call.
// A fresh trail is built per call and attached to the failure, so inspecting
// an error always reveals what was attempted without any shared client state.
type Trail struct {
	entries []TrailEntry
}

func (t *Trail) begin(entry TrailEntry) {
	for i := range t.entries {
		t.entries[i].Status = 0
		t.entries[i].Body = ""
	}
	t.entries = append(t.entries, entry)
}

func (t *Trail) finish(status int, body string) {
	if len(t.entries) == 0 {
		return
	}
	last := &t.entries[len(t.entries)-1]
	last.Status = status
	last.Body = body
}

// Entries returns a copy of the recorded requests, oldest first.
func (t *Trail) Entries() []TrailEntry {
	if t == nil || len(t.entries) == 0 {
		return nil
	}
	out := make([]TrailEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Last returns the most recent recorded request.
func (t *Trail) Last() (TrailEntry, bool) {
	if t == nil || len(t.entries) == 0 {
		return TrailEntry{}, false
	}
	return t.entries[len(t.entries)-1], true
}
