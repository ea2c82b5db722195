package stores

import (
	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/domain"
	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/ports"
)

// PurchaseStore is the purchase order collection
type PurchaseStore struct {
	*Store[domain.PurchaseOrder, string]
}

// NewPurchases creates an empty purchase order store
func NewPurchases(table ports.Table[domain.PurchaseOrder, string]) *PurchaseStore {
	return &PurchaseStore{
		Store: New[domain.PurchaseOrder, string]("purchases", table, Options[domain.PurchaseOrder]{
			Defaults: func(p domain.PurchaseOrder) domain.PurchaseOrder {
				if p.Status == "" {
					p.Status = domain.StatusPending
				}
				if p.Date.IsZero() {
					p.Date = domain.Today()
				}
				return p
			},
		}),
	}
}

// ByStatus returns the orders in status
func (s *PurchaseStore) ByStatus(status string) []domain.PurchaseOrder {
	return s.Filter(func(p domain.PurchaseOrder) bool { return p.Status == status })
}
