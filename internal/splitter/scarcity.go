package splitter

import (
	"cmp"
	"slices"

	"github.com/eugenenazirov/basket-splitter/internal/deliveryconfig"
)

// SortByScarcity returns a copy of basket ordered by ascending number of
// configured delivery methods. Ties keep basket order. Unknown products count
// as having no methods. The input slice is never reordered.
func SortByScarcity(basket []string, table deliveryconfig.Table) []string {
	out := make([]string, len(basket))
	copy(out, basket)
	if len(out) < 2 {
		return out
	}

	slices.SortStableFunc(out, func(a, b string) int {
		return cmp.Compare(len(table[a]), len(table[b]))
	})
	return out
}
