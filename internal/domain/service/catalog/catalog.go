package catalog

import (
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"pos_catalog/internal/domain/entity"
)

// Sanitizer strips unsafe markup from store-authored text. Must be
// idempotent.
type Sanitizer interface {
	Sanitize(raw string) string
}

// Formatter renders an amount in a currency for display.
type Formatter interface {
	Currency(amount decimal.Decimal, currencyCode string) string
}

// Service is the catalog template engine: it parses the store-authored YAML
// template into items and serializes items back into the canonical template.
// Both operations are pure; collaborators are injected, never global.
type Service struct {
	sanitizer Sanitizer
	formatter Formatter
}

func NewService(sanitizer Sanitizer, formatter Formatter) *Service {
	return &Service{
		sanitizer: sanitizer,
		formatter: formatter,
	}
}

// POSItems returns the items a buyer can see: parsed and with disabled
// entries filtered out.
func (s *Service) POSItems(template, currency string) ([]entity.Item, error) {
	items, err := s.Parse(template, currency)
	if err != nil {
		return nil, err
	}

	return lo.Filter(items, func(item entity.Item, _ int) bool {
		return !item.Disabled
	}), nil
}
