package deliveryconfig

import (
	"slices"
	"strings"
)

// Table maps a product name to the delivery methods it may ship with, in
// configured order.
type Table map[string][]string

// Methods returns a copy of the delivery methods configured for product.
// The boolean is false when the product is not part of the table.
func (t Table) Methods(product string) ([]string, bool) {
	methods, ok := t[product]
	if !ok {
		return nil, false
	}
	return slices.Clone(methods), true
}

// Len returns the number of configured products.
func (t Table) Len() int {
	return len(t)
}

// Products returns the configured product names in lexical order.
func (t Table) Products() []string {
	out := make([]string, 0, len(t))
	for product := range t {
		out = append(out, product)
	}
	slices.Sort(out)
	return out
}

// DeliveryMethods returns every distinct delivery method in lexical order.
func (t Table) DeliveryMethods() []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, methods := range t {
		for _, method := range methods {
			if _, ok := seen[method]; ok {
				continue
			}
			seen[method] = struct{}{}
			out = append(out, method)
		}
	}
	slices.Sort(out)
	return out
}

// Clone returns a deep copy of the table.
func (t Table) Clone() Table {
	if t == nil {
		return Table{}
	}
	out := make(Table, len(t))
	for product, methods := range t {
		out[product] = slices.Clone(methods)
	}
	return out
}

// Validate rejects blank product or method names.
func (t Table) Validate() error {
	for product, methods := range t {
		if strings.TrimSpace(product) == "" {
			return ErrInvalidTable
		}
		for _, method := range methods {
			if strings.TrimSpace(method) == "" {
				return ErrInvalidTable
			}
		}
	}
	return nil
}
