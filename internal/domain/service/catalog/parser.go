package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"pos_catalog/internal/domain"
	"pos_catalog/internal/domain/entity"
	"pos_catalog/pkg/errcodes"
)

// Parse turns a catalog template into items, preserving source order.
// The whole template is rejected on the first bad item block: checkout must
// never run against a partially parsed catalog.
//
// Duplicate item keys: the last occurrence wins, the position of the first
// occurrence is kept.
func (s *Service) Parse(template, currency string) ([]entity.Item, error) {
	if strings.TrimSpace(template) == "" {
		return []entity.Item{}, nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(template), &doc); err != nil {
		return nil, domain.WrapError(err, errcodes.MalformedCatalog, "catalog is not valid YAML")
	}

	if len(doc.Content) == 0 {
		return []entity.Item{}, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, domain.NewError(errcodes.MalformedCatalog, "catalog root must be a mapping of item blocks")
	}

	items := make([]entity.Item, 0, len(root.Content)/2)
	position := make(map[string]int, len(root.Content)/2)

	for i := 0; i+1 < len(root.Content); i += 2 {
		keyNode, valueNode := root.Content[i], root.Content[i+1]

		if keyNode.Kind != yaml.ScalarNode {
			return nil, domain.NewError(errcodes.MalformedCatalog, "item key must be a scalar string")
		}
		if valueNode.Kind != yaml.MappingNode {
			return nil, domain.NewError(errcodes.MalformedCatalog,
				fmt.Sprintf("item %q must be a mapping", keyNode.Value))
		}

		id := s.sanitizer.Sanitize(keyNode.Value)

		item, err := s.parseItem(id, itemBlock{node: valueNode}, currency)
		if err != nil {
			return nil, err
		}

		if pos, seen := position[id]; seen {
			items[pos] = item
		} else {
			position[id] = len(items)
			items = append(items, item)
		}
	}

	return items, nil
}

func (s *Service) parseItem(id string, block itemBlock, currency string) (entity.Item, error) {
	price, err := s.parsePrice(id, block, currency)
	if err != nil {
		return entity.Item{}, err
	}

	inventory, err := parseInventory(id, block)
	if err != nil {
		return entity.Item{}, err
	}

	title := id
	if raw, ok := block.scalar("title"); ok {
		title = s.sanitizer.Sanitize(raw)
	}

	item := entity.Item{
		ID:             id,
		Title:          title,
		Description:    s.sanitizedScalar(block, "description"),
		Image:          s.sanitizedScalar(block, "image"),
		BuyButtonText:  s.sanitizedScalar(block, "buyButtonText"),
		Price:          price,
		Inventory:      inventory,
		PaymentMethods: s.sanitizedList(block, "payment_methods"),
		Disabled:       s.sanitizedScalar(block, "disabled") == "true",
	}

	return item, nil
}

// parsePrice resolves the price type from the legacy "custom" field (checked
// first) or "price_type", combined with the presence of a "price" value.
func (s *Service) parsePrice(id string, block itemBlock, currency string) (entity.ItemPrice, error) {
	rawPrice, hasPrice := block.scalar("price")

	token, hasToken := block.scalar("custom")
	if !hasToken {
		token, hasToken = block.scalar("price_type")
	}
	token = strings.ToLower(token)

	var price entity.ItemPrice

	switch {
	case token == "topup" || (!hasToken && !hasPrice):
		price.Type = entity.PriceTypeTopup

	case token == "true" || token == "minimum":
		price.Type = entity.PriceTypeMinimum
		if err := s.parseAmount(&price, id, rawPrice, hasPrice, currency); err != nil {
			return price, err
		}

	case token == "fixed" || token == "false" || !hasToken:
		price.Type = entity.PriceTypeFixed
		if err := s.parseAmount(&price, id, rawPrice, hasPrice, currency); err != nil {
			return price, err
		}

	default:
		return price, domain.NewError(errcodes.UnknownPriceType,
			fmt.Sprintf("item %q has unknown price type %q", id, token))
	}

	return price, nil
}

func (s *Service) parseAmount(price *entity.ItemPrice, id, rawPrice string, hasPrice bool, currency string) error {
	if !hasPrice || rawPrice == "" {
		return nil
	}

	amount, err := decimal.NewFromString(rawPrice)
	if err != nil {
		return domain.WrapError(err, errcodes.InvalidPrice,
			fmt.Sprintf("item %q has non-decimal price %q", id, rawPrice))
	}

	price.Amount = &amount
	price.Formatted = s.formatter.Currency(amount, currency)

	return nil
}

func parseInventory(id string, block itemBlock) (*int, error) {
	raw, ok := block.scalar("inventory")
	if !ok || raw == "" {
		return nil, nil
	}

	inventory, err := strconv.Atoi(raw)
	if err != nil || inventory < 0 {
		return nil, domain.NewError(errcodes.InvalidInventory,
			fmt.Sprintf("item %q has invalid inventory %q", id, raw))
	}

	return &inventory, nil
}

func (s *Service) sanitizedScalar(block itemBlock, field string) string {
	raw, ok := block.scalar(field)
	if !ok {
		return ""
	}

	return s.sanitizer.Sanitize(raw)
}

func (s *Service) sanitizedList(block itemBlock, field string) []string {
	raw := block.stringList(field)
	if raw == nil {
		return nil
	}

	sanitized := make([]string, 0, len(raw))
	for _, v := range raw {
		sanitized = append(sanitized, s.sanitizer.Sanitize(v))
	}

	return sanitized
}

// itemBlock wraps one item's mapping node. Unknown fields are simply never
// looked up, which keeps old templates working against newer schemas.
type itemBlock struct {
	node *yaml.Node
}

// scalar returns the raw scalar value of a field; the second result is false
// when the field is absent or not a scalar.
func (b itemBlock) scalar(field string) (string, bool) {
	value, ok := b.field(field)
	if !ok || value.Kind != yaml.ScalarNode {
		return "", false
	}

	return value.Value, true
}

// stringList returns the scalar elements of a sequence field; anything but a
// sequence is treated as absent.
func (b itemBlock) stringList(field string) []string {
	value, ok := b.field(field)
	if !ok || value.Kind != yaml.SequenceNode {
		return nil
	}

	list := make([]string, 0, len(value.Content))
	for _, element := range value.Content {
		if element.Kind == yaml.ScalarNode {
			list = append(list, element.Value)
		}
	}

	return list
}

func (b itemBlock) field(name string) (*yaml.Node, bool) {
	for i := 0; i+1 < len(b.node.Content); i += 2 {
		if b.node.Content[i].Kind == yaml.ScalarNode && b.node.Content[i].Value == name {
			return b.node.Content[i+1], true
		}
	}

	return nil, false
}
