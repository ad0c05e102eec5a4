package catalog_test

import (
	"fmt"
	"regexp"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"pos_catalog/internal/domain/service/catalog"
)

// tagStripper is a stand-in for the HTML sanitizer: it drops anything that
// looks like a tag. Idempotent, like the real adapter.
type tagStripper struct{}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

func (tagStripper) Sanitize(raw string) string {
	return tagPattern.ReplaceAllString(raw, "")
}

// codeFormatter renders "CODE amount", deterministic and locale-free.
type codeFormatter struct{}

func (codeFormatter) Currency(amount decimal.Decimal, currencyCode string) string {
	return fmt.Sprintf("%s %s", currencyCode, amount.StringFixed(2))
}

func newTestService() *catalog.Service {
	return catalog.NewService(tagStripper{}, codeFormatter{})
}

func decimalFromString(t *testing.T, raw string) decimal.Decimal {
	t.Helper()

	value, err := decimal.NewFromString(raw)
	require.NoError(t, err)

	return value
}
