package storefront

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/quayside/storefront-go/bag"
)

// Status of a checkout transaction as interpreted from the remote response.
type Status string

const (
	// StatusPartial means the quote is incomplete: the server reported errors
	// or is still missing customer details.
	StatusPartial Status = "PARTIAL"
	// StatusFinal means the quote is complete and may be confirmed.
	StatusFinal Status = "FINAL"
	// StatusConfirmed means the transaction was confirmed and the server
	// issued a redirect target.
	StatusConfirmed Status = "CONFIRMED"
)

// TransactionResult is the uniform projection of a transaction response.
// Scalar fields are pointers: nil means the server did not send the field,
// which is distinct from sending it empty. Reference and Checksum are opaque
// tokens to be passed back verbatim on the next call; ShoppingBag, when
// present, is the server's renegotiated bag coding and replaces the caller's
// stored coding.
type TransactionResult struct {
	ShoppingBag            *string
	Reference              *string
	Checksum               *string
	MissingCustomerDetails []string
	Warnings               []string
	Errors                 []string
	Redirect               *string
	// Transaction holds the envelope's data object when non-empty.
	Transaction json.RawMessage
}

// Status derives the transaction's progression state. A redirect means the
// transaction is confirmed; outstanding errors or missing customer details
// keep it partial; otherwise the quote is final and ready for confirmation.
func (r TransactionResult) Status() Status {
	switch {
	case r.Redirect != nil:
		return StatusConfirmed
	case len(r.Errors) > 0 || len(r.MissingCustomerDetails) > 0:
		return StatusPartial
	}
	return StatusFinal
}

type transactionPayload struct {
	ShoppingBag     string            `json:"shopping_bag"`
	Reference       string            `json:"reference,omitempty"`
	Checksum        string            `json:"checksum,omitempty"`
	CustomerDetails map[string]string `json:"customer_details,omitempty"`
}

// CreateTransaction opens a checkout quote for the given bag coding. The
// coding is canonicalized through the bag codec before sending, which also
// validates it.
func (c *Client) CreateTransaction(ctx context.Context, coding string) (TransactionResult, error) {
	trail := &Trail{}
	canonical, err := canonicalCoding(coding)
	if err != nil {
		return TransactionResult{}, wrapFailure(err, trail)
	}

	env, err := c.send(ctx, http.MethodPost, "transactions", nil, transactionPayload{ShoppingBag: canonical}, trail)
	if err != nil {
		return TransactionResult{}, wrapFailure(err, trail)
	}
	return projectTransaction(env, trail)
}

// UpdateTransaction sends customer details for an open transaction. Details
// outside the allowed field set are dropped before transmission; any subset of
// allowed fields may be sent, the server reports what is still missing via
// MissingCustomerDetails. Reference and checksum are passed through verbatim.
func (c *Client) UpdateTransaction(ctx context.Context, coding, reference, checksum string, details CustomerDetails) (TransactionResult, error) {
	trail := &Trail{}
	canonical, err := canonicalCoding(coding)
	if err != nil {
		return TransactionResult{}, wrapFailure(err, trail)
	}

	payload := transactionPayload{
		ShoppingBag:     canonical,
		Reference:       reference,
		Checksum:        checksum,
		CustomerDetails: filterCustomerDetails(details),
	}
	env, err := c.send(ctx, http.MethodPut, "transactions", nil, payload, trail)
	if err != nil {
		return TransactionResult{}, wrapFailure(err, trail)
	}
	return projectTransaction(env, trail)
}

// ConfirmTransaction finalizes the transaction. Callers must only invoke it
// after a prior result reported StatusFinal and the customer gave explicit
// consent; this layer does not enforce that contract.
func (c *Client) ConfirmTransaction(ctx context.Context, coding, reference, checksum string) (TransactionResult, error) {
	trail := &Trail{}
	canonical, err := canonicalCoding(coding)
	if err != nil {
		return TransactionResult{}, wrapFailure(err, trail)
	}

	payload := transactionPayload{ShoppingBag: canonical, Reference: reference, Checksum: checksum}
	env, err := c.send(ctx, http.MethodPost, "transactions/confirm", nil, payload, trail)
	if err != nil {
		return TransactionResult{}, wrapFailure(err, trail)
	}
	return projectTransaction(env, trail)
}

// canonicalCoding round-trips a coding through the bag codec, validating the
// grammar and normalizing the contents in one step.
func canonicalCoding(coding string) (string, error) {
	decoded, err := bag.Decode(coding)
	if err != nil {
		return "", err
	}
	return bag.Encode(decoded), nil
}

// projectTransaction assembles a TransactionResult by copying each known meta
// field that is present, plus a non-empty data object. An envelope yielding
// zero fields fails with ErrNoResult.
func projectTransaction(env envelope, trail *Trail) (TransactionResult, error) {
	var result TransactionResult
	fields := 0

	stringFields := []struct {
		key  string
		dest **string
	}{
		{"shopping_bag", &result.ShoppingBag},
		{"reference", &result.Reference},
		{"checksum", &result.Checksum},
		{"redirect", &result.Redirect},
	}
	for _, field := range stringFields {
		value, present, err := env.metaString(field.key)
		if err != nil {
			return TransactionResult{}, wrapFailure(err, trail)
		}
		if present {
			*field.dest = value
			fields++
		}
	}

	listFields := []struct {
		key  string
		dest *[]string
	}{
		{"missing_customer_details", &result.MissingCustomerDetails},
		{"warnings", &result.Warnings},
		{"errors", &result.Errors},
	}
	for _, field := range listFields {
		values, present, err := env.metaStrings(field.key)
		if err != nil {
			return TransactionResult{}, wrapFailure(err, trail)
		}
		if present {
			*field.dest = values
			fields++
		}
	}

	if dataPresent(env.Data) {
		result.Transaction = append(json.RawMessage(nil), env.Data...)
		fields++
	}

	if fields == 0 {
		return TransactionResult{}, wrapFailure(ErrNoResult, trail)
	}
	return result, nil
}
