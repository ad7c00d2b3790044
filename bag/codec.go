package bag

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// codingPattern is the bag grammar: product=quantity pairs joined by "~".
// The empty string (empty bag) is handled separately.
var codingPattern = regexp.MustCompile(`^\d+=\d+(~\d+=\d+)*$`)

// Decode parses a serialized bag string, normalizes it, and validates the
// result. Any string that does not match the bag grammar fails with
// ErrInvalidEncoding; the empty string decodes to the empty bag.
func Decode(coding string) (Bag, error) {
	if coding == "" {
		return Bag{}, nil
	}
	if !codingPattern.MatchString(coding) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEncoding, coding)
	}

	segments := strings.Split(coding, "~")
	parsed := make(Bag, 0, len(segments))
	for _, segment := range segments {
		product, quantity, _ := strings.Cut(segment, "=")
		productID, err := strconv.Atoi(product)
		if err != nil {
			return nil, fmt.Errorf("%w: product id %q: %v", ErrInvalidEncoding, product, err)
		}
		qty, err := strconv.Atoi(quantity)
		if err != nil {
			return nil, fmt.Errorf("%w: quantity %q: %v", ErrInvalidEncoding, quantity, err)
		}
		parsed = append(parsed, Entry{ProductID: productID, Quantity: qty})
	}

	normalized := Normalize(parsed)
	if err := Validate(normalized); err != nil {
		return nil, err
	}
	return normalized, nil
}

// Encode serializes a bag, joining product=quantity pairs with "~". The empty
// bag encodes to the empty string. Encode does not normalize; callers must
// pass an already-normalized bag for the encoding to round-trip through
// Decode unchanged.
func Encode(b Bag) string {
	if len(b) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, entry := range b {
		if i > 0 {
			sb.WriteByte('~')
		}
		sb.WriteString(strconv.Itoa(entry.ProductID))
		sb.WriteByte('=')
		sb.WriteString(strconv.Itoa(entry.Quantity))
	}
	return sb.String()
}
