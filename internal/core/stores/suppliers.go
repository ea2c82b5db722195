package stores

import (
	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/domain"
	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/ports"
)

// SupplierStore is the supplier collection. It is kept in the local snapshot
// between runs.
type SupplierStore struct {
	*Store[domain.Supplier, int64]
}

// NewSuppliers restores the supplier snapshot, falling back to the default
// distributors
func NewSuppliers(table ports.Table[domain.Supplier, int64], snaps ports.SnapshotStore) *SupplierStore {
	seed := DefaultSuppliers()
	restore(snaps, ports.SnapshotSuppliers, &seed)

	s := &SupplierStore{
		Store: New[domain.Supplier, int64]("suppliers", table, Options[domain.Supplier]{}, seed...),
	}
	s.Observe(func(items []domain.Supplier) {
		persist(snaps, ports.SnapshotSuppliers, items)
	})
	return s
}

// DefaultSuppliers are the distributors known before the first fetch
func DefaultSuppliers() []domain.Supplier {
	return []domain.Supplier{
		{ID: 1, Name: "Sunshine Pharma Distributors", Contact: "M. Shakeel", Email: "contact@sunshine.com", Phone: "1234567890", Address: "Srinagar, J&K"},
		{ID: 2, Name: "Healthcare Distributors", Contact: "Aasif", Email: "contact@healthcare.com", Phone: "9876543210", Address: "Sopore, J&K"},
		{ID: 3, Name: "MD Pharma", Contact: "Mudasir", Email: "contact@mdpharma.com", Phone: "8956741230", Address: "Srinagar, J&K"},
	}
}
