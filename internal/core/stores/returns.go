package stores

import (
	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/domain"
	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/ports"
)

// ReturnStore is the customer return collection
type ReturnStore struct {
	*Store[domain.Return, string]
}

// NewReturns creates an empty return store
func NewReturns(table ports.Table[domain.Return, string]) *ReturnStore {
	return &ReturnStore{
		Store: New[domain.Return, string]("returns", table, Options[domain.Return]{
			Defaults: func(r domain.Return) domain.Return {
				if r.Status == "" {
					r.Status = domain.StatusPending
				}
				if r.Date.IsZero() {
					r.Date = domain.Today()
				}
				return r
			},
		}),
	}
}

// ByCustomer returns the returns filed under a customer name
func (s *ReturnStore) ByCustomer(customer string) []domain.Return {
	return s.Filter(func(r domain.Return) bool { return r.Customer == customer })
}

// PendingCount returns the number of returns awaiting a decision
func (s *ReturnStore) PendingCount() int {
	return len(s.Filter(func(r domain.Return) bool { return r.Status == domain.StatusPending }))
}
