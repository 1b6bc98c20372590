package splitter

import (
	"bytes"
	"encoding/json"
	"slices"
)

// Group is a delivery method together with the products assigned to it.
type Group struct {
	DeliveryMethod string   `json:"deliveryMethod"`
	Products       []string `json:"products"`
}

// Groups maps delivery methods to the products assigned to them. Methods are
// kept in the order their first product was assigned.
type Groups struct {
	order   []string
	members map[string][]string
}

func newGroups() *Groups {
	return &Groups{members: make(map[string][]string)}
}

// Has reports whether a group for method has been opened.
func (g *Groups) Has(method string) bool {
	if g == nil {
		return false
	}
	_, ok := g.members[method]
	return ok
}

func (g *Groups) add(method, product string) {
	if _, ok := g.members[method]; !ok {
		g.order = append(g.order, method)
	}
	g.members[method] = append(g.members[method], product)
}

// Len returns the number of groups.
func (g *Groups) Len() int {
	if g == nil {
		return 0
	}
	return len(g.order)
}

// TotalProducts returns the number of assigned products across all groups.
func (g *Groups) TotalProducts() int {
	if g == nil {
		return 0
	}
	total := 0
	for _, products := range g.members {
		total += len(products)
	}
	return total
}

// Methods returns the delivery methods in group order.
func (g *Groups) Methods() []string {
	if g == nil {
		return []string{}
	}
	return slices.Clone(g.order)
}

// Products returns a copy of the products assigned to method.
func (g *Groups) Products(method string) []string {
	if g == nil {
		return nil
	}
	return slices.Clone(g.members[method])
}

// All returns every group in order.
func (g *Groups) All() []Group {
	out := make([]Group, 0, g.Len())
	for _, method := range g.Methods() {
		out = append(out, Group{DeliveryMethod: method, Products: g.Products(method)})
	}
	return out
}

// Map returns the grouping as a plain map.
func (g *Groups) Map() map[string][]string {
	out := make(map[string][]string, g.Len())
	for _, method := range g.Methods() {
		out[method] = g.Products(method)
	}
	return out
}

// MarshalJSON encodes the groups as a JSON object keyed by delivery method,
// preserving group order.
func (g *Groups) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, method := range g.Methods() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(method)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(g.Products(method))
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
