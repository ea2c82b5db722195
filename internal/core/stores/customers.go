package stores

import (
	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/domain"
	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/ports"
)

// CustomerStore is the customer collection
type CustomerStore struct {
	*Store[domain.Customer, int64]
}

// NewCustomers creates an empty customer store
func NewCustomers(table ports.Table[domain.Customer, int64]) *CustomerStore {
	return &CustomerStore{
		Store: New[domain.Customer, int64]("customers", table, Options[domain.Customer]{
			Defaults: func(c domain.Customer) domain.Customer {
				if c.DateRegistered.IsZero() {
					c.DateRegistered = domain.Today()
				}
				if c.LastVisit.IsZero() {
					c.LastVisit = domain.Today()
				}
				return c
			},
		}),
	}
}
