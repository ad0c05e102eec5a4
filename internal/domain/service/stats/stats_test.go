package stats_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"pos_catalog/internal/domain"
	"pos_catalog/internal/domain/entity"
	"pos_catalog/internal/domain/service/stats"
	"pos_catalog/pkg/errcodes"
)

type codeFormatter struct{}

func (codeFormatter) Currency(amount decimal.Decimal, currencyCode string) string {
	return fmt.Sprintf("%s %s", currencyCode, amount.StringFixed(2))
}

var testToday = time.Date(2024, time.March, 15, 13, 45, 0, 0, time.UTC) //nolint:gochecknoglobals

func newTestService() *stats.Service {
	return stats.NewService(codeFormatter{}).WithClock(func() time.Time {
		return testToday
	})
}

func dec(t *testing.T, raw string) decimal.Decimal {
	t.Helper()

	value, err := decimal.NewFromString(raw)
	require.NoError(t, err)

	return value
}

func catalogItems(t *testing.T) []entity.Item {
	t.Helper()

	coffee := dec(t, "3.50")
	tea := dec(t, "2.00")

	return []entity.Item{
		{ID: "coffee", Title: "Coffee", Price: entity.ItemPrice{Type: entity.PriceTypeFixed, Amount: &coffee}},
		{ID: "tea", Title: "Green Tea", Price: entity.ItemPrice{Type: entity.PriceTypeFixed, Amount: &tea}},
	}
}

func TestSalesStatsGapFilling(t *testing.T) {
	rq := require.New(t)

	result, err := newTestService().SalesStats(nil, 7)
	rq.NoError(err)

	rq.Zero(result.SalesCount)
	rq.Len(result.Series, 7)

	for i, day := range result.Series {
		rq.Zero(day.SalesCount)
		rq.Equal(day.Date.Format("Jan 02"), day.Label)

		if i > 0 {
			rq.True(day.Date.After(result.Series[i-1].Date), "series must ascend by date")
		}
	}

	rq.Equal(time.Date(2024, time.March, 9, 0, 0, 0, 0, time.UTC), result.Series[0].Date)
	rq.Equal(time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), result.Series[6].Date)
}

func TestSalesStatsNoDoubleCounting(t *testing.T) {
	rq := require.New(t)

	lines := []entity.InvoiceLine{
		{ItemCode: "coffee", FiatAmount: dec(t, "3.50"), Date: testToday},
		{ItemCode: "tea", FiatAmount: dec(t, "2.00"), Date: testToday.Add(-2 * time.Hour)},
	}

	result, err := newTestService().SalesStats(lines, 1)
	rq.NoError(err)

	rq.Len(result.Series, 1)
	rq.Equal(2, result.Series[0].SalesCount)
	rq.Equal(2, result.SalesCount)
}

func TestSalesStatsMixedObservedAndGapDays(t *testing.T) {
	rq := require.New(t)

	lines := []entity.InvoiceLine{
		{ItemCode: "coffee", Date: testToday},
		{ItemCode: "coffee", Date: testToday.AddDate(0, 0, -3)},
		{ItemCode: "tea", Date: testToday.AddDate(0, 0, -3)},
		// Outside the window, must not appear.
		{ItemCode: "tea", Date: testToday.AddDate(0, 0, -9)},
	}

	result, err := newTestService().SalesStats(lines, 7)
	rq.NoError(err)

	rq.Equal(3, result.SalesCount)
	rq.Len(result.Series, 7)

	counts := make(map[string]int)
	for _, day := range result.Series {
		counts[day.Date.Format("2006-01-02")] = day.SalesCount
	}

	rq.Equal(1, counts["2024-03-15"])
	rq.Equal(2, counts["2024-03-12"])
	rq.Equal(0, counts["2024-03-14"])
}

func TestSalesStatsInvalidWindow(t *testing.T) {
	rq := require.New(t)

	for _, days := range []int{0, -3} {
		_, err := newTestService().SalesStats(nil, days)
		rq.Error(err)

		code, ok := domain.GetCode(err)
		rq.True(ok)
		rq.Equal(errcodes.InvalidSalesWindow, code)
	}
}

func TestItemStatsGroupsAndFormats(t *testing.T) {
	rq := require.New(t)

	lines := []entity.InvoiceLine{
		{ItemCode: "coffee", FiatAmount: dec(t, "3.50"), Date: testToday},
		{ItemCode: "coffee", FiatAmount: dec(t, "3.50"), Date: testToday},
		{ItemCode: "retired", FiatAmount: dec(t, "9.99"), Date: testToday},
	}

	result := newTestService().ItemStats(catalogItems(t), lines, "USD")
	rq.Len(result, 2)

	// Sorted by sales count, best seller first.
	rq.Equal("coffee", result[0].ItemCode)
	rq.Equal("Coffee", result[0].Title)
	rq.Equal(2, result[0].SalesCount)
	rq.True(result[0].Total.Equal(dec(t, "7.00")))
	rq.Equal("USD 7.00", result[0].TotalFormatted)

	// Codes no longer in the catalog still show up, titled by the code.
	rq.Equal("retired", result[1].ItemCode)
	rq.Equal("retired", result[1].Title)
	rq.Equal(1, result[1].SalesCount)
}

func TestItemStatsEmptyInputs(t *testing.T) {
	rq := require.New(t)

	rq.Empty(newTestService().ItemStats(nil, nil, "USD"))
	rq.Empty(newTestService().ItemStats(catalogItems(t), nil, "USD"))
}

func TestFlattenOrdersCart(t *testing.T) {
	rq := require.New(t)

	orders := []entity.Order{{
		ID:        "o1",
		Status:    entity.OrderStatusPaid,
		SettledAt: testToday,
		Cart: []entity.CartLine{
			{ItemID: "coffee", Count: 2, UnitPrice: dec(t, "3.50")},
			{ItemID: "ghost", Count: 5, UnitPrice: dec(t, "1.00")},
		},
	}}

	lines := newTestService().FlattenOrders(catalogItems(t), orders)

	// One line per unit; the unknown cart entry is dropped, not an error.
	rq.Len(lines, 2)
	for _, line := range lines {
		rq.Equal("coffee", line.ItemCode)
		rq.True(line.FiatAmount.Equal(dec(t, "3.50")))
		rq.Equal(time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), line.Date)
	}
}

func TestFlattenOrdersSingleItem(t *testing.T) {
	rq := require.New(t)

	orders := []entity.Order{{
		ID:        "o2",
		Status:    entity.OrderStatusComplete,
		ItemCode:  "tea",
		SettledAt: testToday.Add(-26 * time.Hour),
		Payments: []entity.Payment{
			{Method: "BTC", Paid: dec(t, "0.00010"), NetworkFee: dec(t, "0.00001"), Rate: dec(t, "50000")},
			{Method: "LTC", Paid: dec(t, "0.5"), NetworkFee: dec(t, "0"), Rate: dec(t, "3")},
		},
	}}

	lines := newTestService().FlattenOrders(catalogItems(t), orders)
	rq.Len(lines, 1)

	rq.Equal("tea", lines[0].ItemCode)
	// (0.00010-0.00001)*50000 + 0.5*3 = 4.5 + 1.5
	rq.True(lines[0].FiatAmount.Equal(dec(t, "6")))
	rq.Equal(time.Date(2024, time.March, 14, 0, 0, 0, 0, time.UTC), lines[0].Date)
}
