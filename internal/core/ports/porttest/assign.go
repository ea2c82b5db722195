package porttest

import (
	"fmt"
	"time"

	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/domain"
)

// Now is the timestamp stamped on every generated row
var Now = time.Date(2025, 4, 10, 9, 30, 0, 0, time.UTC)

func AssignInventory(rec domain.InventoryItem, seq int64) domain.InventoryItem {
	rec.ID = seq
	rec.CreatedAt = Now
	rec.UpdatedAt = Now
	return rec
}

func AssignCustomer(rec domain.Customer, seq int64) domain.Customer {
	rec.ID = seq
	rec.CreatedAt = Now
	if rec.DateRegistered.IsZero() {
		rec.DateRegistered = domain.NewDate(Now)
	}
	if rec.LastVisit.IsZero() {
		rec.LastVisit = domain.NewDate(Now)
	}
	return rec
}

func AssignSupplier(rec domain.Supplier, seq int64) domain.Supplier {
	rec.ID = seq
	rec.CreatedAt = Now
	return rec
}

func AssignPrescription(rec domain.Prescription, seq int64) domain.Prescription {
	rec.ID = fmt.Sprintf("rx-%d", seq)
	rec.CreatedAt = Now
	return rec
}

func AssignEPrescription(rec domain.EPrescription, seq int64) domain.EPrescription {
	rec.ID = fmt.Sprintf("erx-%d", seq)
	rec.CreatedAt = Now
	return rec
}

func AssignReturn(rec domain.Return, seq int64) domain.Return {
	rec.ID = fmt.Sprintf("rtn-%d", seq)
	rec.CreatedAt = Now
	return rec
}

func AssignSale(rec domain.Sale, seq int64) domain.Sale {
	rec.ID = fmt.Sprintf("sale-%d", seq)
	rec.CreatedAt = Now
	return rec
}

func AssignPurchaseOrder(rec domain.PurchaseOrder, seq int64) domain.PurchaseOrder {
	rec.ID = fmt.Sprintf("po-%d", seq)
	rec.CreatedAt = Now
	return rec
}

func AssignUser(rec domain.User, seq int64) domain.User {
	rec.ID = fmt.Sprintf("user-%d", seq)
	rec.Password = ""
	return rec
}
