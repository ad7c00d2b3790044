package storefront

import (
	"sort"
	"strings"
)

// CustomerDetails carries checkout contact and address fields keyed by API
// field name. Keys outside the allowed set are silently dropped before
// transmission; every allowed field is individually optional.
type CustomerDetails map[string]string

var allowedCustomerFields = map[string]struct{}{
	"first_name": {},
	"last_name":  {},
	"email":      {},
	"telephone":  {},

	"shipping_address_1": {},
	"shipping_address_2": {},
	"shipping_city":      {},
	"shipping_postcode":  {},
	"shipping_country":   {},

	"billing_address_1": {},
	"billing_address_2": {},
	"billing_city":      {},
	"billing_postcode":  {},
	"billing_country":   {},
}

// CustomerFields lists the field names accepted by UpdateTransaction, sorted.
func CustomerFields() []string {
	fields := make([]string, 0, len(allowedCustomerFields))
	for field := range allowedCustomerFields {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// filterCustomerDetails trims keys and values and keeps only allowed fields.
// Returns nil when nothing survives so the payload omits the map entirely.
func filterCustomerDetails(details CustomerDetails) map[string]string {
	if len(details) == 0 {
		return nil
	}
	filtered := make(map[string]string, len(details))
	for key, value := range details {
		key = strings.TrimSpace(key)
		if _, ok := allowedCustomerFields[key]; !ok {
			continue
		}
		filtered[key] = strings.TrimSpace(value)
	}
	if len(filtered) == 0 {
		return nil
	}
	return filtered
}
