package stores

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/domain"
	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/ports"
)

// SaleStore is the counter sale collection
type SaleStore struct {
	*Store[domain.Sale, string]
}

// NewSales creates an empty sale store
func NewSales(table ports.Table[domain.Sale, string]) *SaleStore {
	return &SaleStore{
		Store: New[domain.Sale, string]("sales", table, Options[domain.Sale]{
			Defaults: func(s domain.Sale) domain.Sale {
				if s.PaymentMethod == "" {
					s.PaymentMethod = domain.DefaultPaymentMethod
				}
				if s.Date.IsZero() {
					s.Date = time.Now()
				}
				return s
			},
		}),
	}
}

// ByCustomer returns the sales made to one customer
func (s *SaleStore) ByCustomer(customerID int64) []domain.Sale {
	return s.Filter(func(sale domain.Sale) bool {
		return sale.CustomerID != nil && *sale.CustomerID == customerID
	})
}

// TodayTotal sums the sales made on the calendar day of now
func (s *SaleStore) TodayTotal(now time.Time) float64 {
	y, m, d := now.Date()
	return s.total(func(t time.Time) bool {
		ty, tm, td := t.In(now.Location()).Date()
		return ty == y && tm == m && td == d
	})
}

// MonthTotal sums the sales made in the calendar month of now
func (s *SaleStore) MonthTotal(now time.Time) float64 {
	y, m, _ := now.Date()
	return s.total(func(t time.Time) bool {
		ty, tm, _ := t.In(now.Location()).Date()
		return ty == y && tm == m
	})
}

// UniqueCustomerCount returns how many distinct customers bought something
func (s *SaleStore) UniqueCustomerCount() int {
	seen := make(map[int64]struct{})
	for _, sale := range s.All() {
		if sale.CustomerID != nil {
			seen[*sale.CustomerID] = struct{}{}
		}
	}
	return len(seen)
}

func (s *SaleStore) total(match func(time.Time) bool) float64 {
	sum := decimal.Zero
	for _, sale := range s.All() {
		if match(sale.Date) {
			sum = sum.Add(decimal.NewFromFloat(sale.TotalAmount))
		}
	}
	return sum.Round(2).InexactFloat64()
}
