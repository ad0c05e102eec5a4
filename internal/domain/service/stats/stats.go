package stats

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"pos_catalog/internal/domain"
	"pos_catalog/internal/domain/entity"
	"pos_catalog/pkg/errcodes"
	"pos_catalog/pkg/lox"
)

// Label rendering of a series day, locale-invariant.
const dayLabelFormat = "Jan 02"

// Formatter renders an amount in a currency for display.
type Formatter interface {
	Currency(amount decimal.Decimal, currencyCode string) string
}

// Service aggregates paid orders into per-item and per-day sales statistics.
// All methods are pure computations over materialized inputs.
type Service struct {
	formatter Formatter
	now       func() time.Time
}

func NewService(formatter Formatter) *Service {
	return &Service{
		formatter: formatter,
		now:       time.Now,
	}
}

// WithClock overrides the source of "today" for the sales window.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// FlattenOrders turns paid orders into invoice lines. A cart order yields one
// line per unit of each cart entry matching a catalog item; entries
// referencing unknown items are dropped. A single-item order yields exactly
// one line valued at the net settled fiat amount.
func (s *Service) FlattenOrders(items []entity.Item, orders []entity.Order) []entity.InvoiceLine {
	known := lox.FilterAssociate(items, func(item entity.Item) (string, bool) {
		return item.ID, true
	})

	var lines []entity.InvoiceLine

	for _, order := range orders {
		day := dayOf(order.SettledAt)

		if len(order.Cart) > 0 {
			for _, cartLine := range order.Cart {
				if _, ok := known[cartLine.ItemID]; !ok {
					continue
				}
				for i := 0; i < cartLine.Count; i++ {
					lines = append(lines, entity.InvoiceLine{
						ItemCode:   cartLine.ItemID,
						FiatAmount: cartLine.UnitPrice,
						Date:       day,
					})
				}
			}
			continue
		}

		lines = append(lines, entity.InvoiceLine{
			ItemCode:   order.ItemCode,
			FiatAmount: settledFiat(order),
			Date:       day,
		})
	}

	return lines
}

// ItemStats groups invoice lines by item code. Codes no longer present in the
// catalog still get a row, titled by the code itself.
func (s *Service) ItemStats(items []entity.Item, lines []entity.InvoiceLine, currency string) []entity.ItemStats {
	titles := lox.FilterAssociate(items, func(item entity.Item) (string, bool) {
		return item.ID, true
	})

	grouped := make(map[string]*entity.ItemStats)
	order := make([]string, 0)

	for _, line := range lines {
		group, ok := grouped[line.ItemCode]
		if !ok {
			title := line.ItemCode
			if item, found := titles[line.ItemCode]; found {
				title = item.Title
			}

			group = &entity.ItemStats{
				ItemCode: line.ItemCode,
				Title:    title,
				Total:    decimal.Zero,
			}
			grouped[line.ItemCode] = group
			order = append(order, line.ItemCode)
		}

		group.SalesCount++
		group.Total = group.Total.Add(line.FiatAmount)
	}

	result := make([]entity.ItemStats, 0, len(order))
	for _, code := range order {
		group := grouped[code]
		group.TotalFormatted = s.formatter.Currency(group.Total, currency)
		result = append(result, *group)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].SalesCount > result[j].SalesCount
	})

	return result
}

// SalesStats builds the daily series over the trailing window of days ending
// today, ascending, with zero-count entries for days without sales. Observed
// counts are collected into a lookup first; the window is then generated
// against that lookup, so a day can never be emitted twice.
func (s *Service) SalesStats(lines []entity.InvoiceLine, days int) (entity.SalesStats, error) {
	if days < 1 {
		return entity.SalesStats{}, domain.NewError(errcodes.InvalidSalesWindow, "sales window must cover at least one day")
	}

	observed := make(map[time.Time]int, len(lines))
	for _, line := range lines {
		observed[dayOf(line.Date)]++
	}

	today := dayOf(s.now().UTC())

	series := make([]entity.SalesStatsItem, 0, days)
	total := 0

	for i := days - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		count := observed[day]
		total += count

		series = append(series, entity.SalesStatsItem{
			Date:       day,
			Label:      day.Format(dayLabelFormat),
			SalesCount: count,
		})
	}

	return entity.SalesStats{
		SalesCount: total,
		Series:     series,
	}, nil
}

// settledFiat sums (paid - network fee) x locked rate over the order's
// payments.
func settledFiat(order entity.Order) decimal.Decimal {
	fiat := decimal.Zero
	for _, payment := range order.Payments {
		fiat = fiat.Add(payment.Paid.Sub(payment.NetworkFee).Mul(payment.Rate))
	}

	return fiat
}

// dayOf truncates a timestamp to its UTC calendar day.
func dayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
