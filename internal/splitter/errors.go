package splitter

import (
	"errors"
	"fmt"
)

var (
	// ErrProductNotConfigured is returned when a basket contains a product the
	// delivery table does not know about.
	ErrProductNotConfigured = errors.New("product is not present in delivery config")
	// ErrNoDeliveryMethods is returned when a product is configured with an
	// empty delivery method list.
	ErrNoDeliveryMethods = errors.New("product has no delivery methods configured")
)

// ProductError ties a split failure to the offending product.
type ProductError struct {
	Product string
	Err     error
}

func (e *ProductError) Error() string {
	return fmt.Sprintf("%v: %q", e.Err, e.Product)
}

func (e *ProductError) Unwrap() error {
	return e.Err
}
