package catalog

import (
	"bytes"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"pos_catalog/internal/domain/entity"
)

// Serialize renders items back into the canonical template form. The output
// is not byte-identical to the source (optional fields are dropped, quoting
// may differ), but parsing it reproduces the same items.
func (s *Service) Serialize(items []entity.Item) (string, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}

	for _, item := range items {
		block := &yaml.Node{Kind: yaml.MappingNode}

		appendScalar(block, "title", item.Title)

		// Pure top-up items have no price to write back.
		if item.Price.Type != entity.PriceTypeTopup && item.Price.Amount != nil {
			appendScalar(block, "price", item.Price.Amount.String())
		}

		if item.Description != "" {
			appendNode(block, "description", &yaml.Node{
				Kind:  yaml.ScalarNode,
				Style: yaml.DoubleQuotedStyle,
				Value: item.Description,
			})
		}

		if item.Image != "" {
			appendScalar(block, "image", item.Image)
		}

		appendScalar(block, "price_type", item.Price.Type.String())
		appendScalar(block, "disabled", strconv.FormatBool(item.Disabled))

		if item.Inventory != nil {
			appendScalar(block, "inventory", strconv.Itoa(*item.Inventory))
		}

		if item.BuyButtonText != "" {
			appendScalar(block, "buyButtonText", item.BuyButtonText)
		}

		if len(item.PaymentMethods) > 0 {
			methods := &yaml.Node{Kind: yaml.SequenceNode}
			for _, method := range item.PaymentMethods {
				methods.Content = append(methods.Content, scalarNode(method))
			}
			appendNode(block, "payment_methods", methods)
		}

		appendNode(root, item.ID, block)
	}

	var buf bytes.Buffer

	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)

	if err := encoder.Encode(root); err != nil {
		return "", fmt.Errorf("yaml.Encode: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return "", fmt.Errorf("yaml encoder close: %w", err)
	}

	return buf.String(), nil
}

func scalarNode(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: value}
}

func appendScalar(mapping *yaml.Node, key, value string) {
	appendNode(mapping, key, scalarNode(value))
}

func appendNode(mapping *yaml.Node, key string, value *yaml.Node) {
	mapping.Content = append(mapping.Content, scalarNode(key), value)
}
