package splitter

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/eugenenazirov/basket-splitter/internal/deliveryconfig"
)

// Splitter assigns basket products to delivery groups using a fixed delivery
// table. It is safe for concurrent use: the table is never modified after
// construction and every Split builds its own result.
type Splitter struct {
	table  deliveryconfig.Table
	logger *zap.Logger
}

// Option configures a Splitter.
type Option func(*Splitter)

// WithLogger sets the logger used for per-split debug output.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Splitter) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New loads the delivery table at path and returns a Splitter over it.
// Load failures match deliveryconfig.ErrConfigLoad.
func New(path string, opts ...Option) (*Splitter, error) {
	table, err := deliveryconfig.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load delivery config: %w", err)
	}
	return NewFromTable(table, opts...), nil
}

// NewFromTable returns a Splitter over a private copy of table.
func NewFromTable(table deliveryconfig.Table, opts ...Option) *Splitter {
	s := &Splitter{
		table:  table.Clone(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Config returns a copy of the delivery table.
func (s *Splitter) Config() deliveryconfig.Table {
	return s.table.Clone()
}

// Split assigns every product to a delivery method. The whole basket is
// rejected with a *ProductError when a product is unknown or has no methods.
// An empty basket yields empty Groups.
func (s *Splitter) Split(products []string) (*Groups, error) {
	groups := newGroups()
	if len(products) == 0 {
		return groups, nil
	}

	for _, product := range products {
		methods, ok := s.table[product]
		if !ok {
			return nil, &ProductError{Product: product, Err: ErrProductNotConfigured}
		}
		if len(methods) == 0 {
			return nil, &ProductError{Product: product, Err: ErrNoDeliveryMethods}
		}
	}

	tiers := Rank(products, s.table)
	for _, product := range SortByScarcity(products, s.table) {
		method := ChooseMethod(s.table[product], tiers, groups)
		groups.add(method, product)
	}

	s.logger.Debug("basket split",
		zap.Int("products", len(products)),
		zap.Int("tiers", len(tiers)),
		zap.Int("groups", groups.Len()),
	)

	return groups, nil
}
