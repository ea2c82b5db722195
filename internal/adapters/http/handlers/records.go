package handlers

import (
	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/domain"
	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/stores"
)

// InventoryRecords serves CRUD for inventory items
func InventoryRecords(s *stores.InventoryStore) *StoreHandler[domain.InventoryItem, int64] {
	return NewStoreHandler[domain.InventoryItem, int64](s, "Inventory item", ParseInt64ID,
		func(r domain.InventoryItem, id int64) domain.InventoryItem { r.ID = id; return r },
		func(r domain.InventoryItem, q string) bool { return containsFold(q, r.Name, r.Category, r.SKU) },
	)
}

// CustomerRecords serves CRUD for customers
func CustomerRecords(s *stores.CustomerStore) *StoreHandler[domain.Customer, int64] {
	return NewStoreHandler[domain.Customer, int64](s, "Customer", ParseInt64ID,
		func(r domain.Customer, id int64) domain.Customer { r.ID = id; return r },
		func(r domain.Customer, q string) bool { return containsFold(q, r.Name, r.Email, r.Phone) },
	)
}

// SupplierRecords serves CRUD for suppliers
func SupplierRecords(s *stores.SupplierStore) *StoreHandler[domain.Supplier, int64] {
	return NewStoreHandler[domain.Supplier, int64](s, "Supplier", ParseInt64ID,
		func(r domain.Supplier, id int64) domain.Supplier { r.ID = id; return r },
		func(r domain.Supplier, q string) bool { return containsFold(q, r.Name, r.Contact, r.Email) },
	)
}

// PrescriptionRecords serves CRUD for prescriptions
func PrescriptionRecords(s *stores.PrescriptionStore) *StoreHandler[domain.Prescription, string] {
	return NewStoreHandler[domain.Prescription, string](s, "Prescription", ParseStringID,
		func(r domain.Prescription, id string) domain.Prescription { r.ID = id; return r },
		func(r domain.Prescription, q string) bool { return containsFold(q, r.PatientName, r.DoctorName, r.Status) },
	)
}

// EPrescriptionRecords serves CRUD for e-prescriptions
func EPrescriptionRecords(s *stores.EPrescriptionStore) *StoreHandler[domain.EPrescription, string] {
	return NewStoreHandler[domain.EPrescription, string](s, "E-prescription", ParseStringID,
		func(r domain.EPrescription, id string) domain.EPrescription { r.ID = id; return r },
		func(r domain.EPrescription, q string) bool {
			return containsFold(q, r.PatientName, r.DoctorName, r.HospitalName, r.Status)
		},
	)
}

// ReturnRecords serves CRUD for returns
func ReturnRecords(s *stores.ReturnStore) *StoreHandler[domain.Return, string] {
	return NewStoreHandler[domain.Return, string](s, "Return", ParseStringID,
		func(r domain.Return, id string) domain.Return { r.ID = id; return r },
		func(r domain.Return, q string) bool { return containsFold(q, r.Product, r.Customer, r.Status) },
	)
}

// SaleRecords serves CRUD for sales
func SaleRecords(s *stores.SaleStore) *StoreHandler[domain.Sale, string] {
	return NewStoreHandler[domain.Sale, string](s, "Sale", ParseStringID,
		func(r domain.Sale, id string) domain.Sale { r.ID = id; return r },
		func(r domain.Sale, q string) bool { return containsFold(q, r.ID, r.PaymentMethod) },
	)
}

// PurchaseRecords serves CRUD for purchase orders
func PurchaseRecords(s *stores.PurchaseStore) *StoreHandler[domain.PurchaseOrder, string] {
	return NewStoreHandler[domain.PurchaseOrder, string](s, "Purchase order", ParseStringID,
		func(r domain.PurchaseOrder, id string) domain.PurchaseOrder { r.ID = id; return r },
		func(r domain.PurchaseOrder, q string) bool { return containsFold(q, r.SupplierName, r.Status) },
	)
}

// UserRecords serves CRUD for staff profiles
func UserRecords(s *stores.UserStore) *StoreHandler[domain.User, string] {
	return NewStoreHandler[domain.User, string](s, "User", ParseStringID,
		func(r domain.User, id string) domain.User { r.ID = id; return r },
		func(r domain.User, q string) bool { return containsFold(q, r.Name, r.Email, string(r.Role)) },
	)
}
