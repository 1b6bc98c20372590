package splitter

import "slices"

// GroupView is a read-only view of the groups opened so far.
type GroupView interface {
	Has(method string) bool
}

// ChooseMethod picks the delivery method for a product allowed to use
// productMethods.
//
// A single option is returned as is. Otherwise tiers are scanned from the most
// common down. The tier's candidate is its first member, replaced by the last
// member that already has an open group. The first candidate the product may
// use wins. When no tier yields one, the product's first method is used.
// An empty productMethods yields "".
func ChooseMethod(productMethods []string, tiers []Tier, open GroupView) string {
	switch len(productMethods) {
	case 0:
		return ""
	case 1:
		return productMethods[0]
	}

	for _, tier := range tiers {
		if len(tier.Methods) == 0 {
			continue
		}
		candidate := tier.Methods[0]
		if len(tier.Methods) > 1 && open != nil {
			for _, method := range tier.Methods {
				if open.Has(method) {
					candidate = method
				}
			}
		}
		if slices.Contains(productMethods, candidate) {
			return candidate
		}
	}

	return productMethods[0]
}
