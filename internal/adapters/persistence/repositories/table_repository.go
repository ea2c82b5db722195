package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/adapters/persistence/models"
	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/domain"
	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/ports"
)

// Row is a GORM model that converts to the domain record T
type Row[M any, T any] interface {
	*M
	ToDomain() T
}

// TableRepository implements ports.Table over one GORM model.
// M is the model, PM its pointer type and T the domain record.
type TableRepository[M any, PM Row[M, T], T interface{ Key() K }, K comparable] struct {
	db         *gorm.DB
	fromDomain func(T) *M
	omit       []string
}

// NewTableRepository creates a table repository. omit names columns that
// Update never writes; created_at is always omitted.
func NewTableRepository[M any, PM Row[M, T], T interface{ Key() K }, K comparable](
	db *gorm.DB,
	fromDomain func(T) *M,
	omit ...string,
) *TableRepository[M, PM, T, K] {
	return &TableRepository[M, PM, T, K]{
		db:         db,
		fromDomain: fromDomain,
		omit:       append([]string{"created_at"}, omit...),
	}
}

// SelectAll returns every row newest first
func (r *TableRepository[M, PM, T, K]) SelectAll(ctx context.Context) ([]T, error) {
	var rows []M
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, translate("select", r.table(), err)
	}

	out := make([]T, 0, len(rows))
	for i := range rows {
		out = append(out, PM(&rows[i]).ToDomain())
	}
	return out, nil
}

// Insert creates a row and returns it as stored
func (r *TableRepository[M, PM, T, K]) Insert(ctx context.Context, record T) (T, error) {
	row := r.fromDomain(record)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		var zero T
		return zero, translate("insert", r.table(), err)
	}
	return PM(row).ToDomain(), nil
}

// Update overwrites every column of an existing row and returns the row as
// stored
func (r *TableRepository[M, PM, T, K]) Update(ctx context.Context, record T) (T, error) {
	var zero T
	id := record.Key()
	db := r.db.WithContext(ctx)

	// 1. Row must exist; MySQL reports zero affected rows for no-op updates
	var count int64
	if err := db.Model(new(M)).Where("id = ?", id).Count(&count).Error; err != nil {
		return zero, translate("update", r.table(), err)
	}
	if count == 0 {
		return zero, fmt.Errorf("update %s %v: %w", r.table(), id, domain.ErrNotFound)
	}

	// 2. Write all columns, including zero values
	row := r.fromDomain(record)
	if err := db.Model(row).Select("*").Omit(r.omit...).Updates(row).Error; err != nil {
		return zero, translate("update", r.table(), err)
	}

	// 3. Reload to pick up server-side columns
	var stored M
	if err := db.Where("id = ?", id).First(&stored).Error; err != nil {
		return zero, translate("update", r.table(), err)
	}
	return PM(&stored).ToDomain(), nil
}

// Delete removes the row with the given key
func (r *TableRepository[M, PM, T, K]) Delete(ctx context.Context, id K) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(new(M))
	if result.Error != nil {
		return translate("delete", r.table(), result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("delete %s %v: %w", r.table(), id, domain.ErrNotFound)
	}
	return nil
}

func (r *TableRepository[M, PM, T, K]) table() string {
	if t, ok := any(new(M)).(interface{ TableName() string }); ok {
		return t.TableName()
	}
	return fmt.Sprintf("%T", *new(M))
}

// translate maps GORM errors to domain errors
func translate(op, table string, err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s %s: %w", op, table, domain.ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s %s: %w", op, table, domain.ErrDuplicateEntry)
	}
	return fmt.Errorf("%s %s: %w", op, table, err)
}

// Tables bundles one repository per remote table
type Tables struct {
	Inventory      ports.Table[domain.InventoryItem, int64]
	Customers      ports.Table[domain.Customer, int64]
	Suppliers      ports.Table[domain.Supplier, int64]
	Prescriptions  ports.Table[domain.Prescription, string]
	EPrescriptions ports.Table[domain.EPrescription, string]
	Returns        ports.Table[domain.Return, string]
	Sales          ports.Table[domain.Sale, string]
	Purchases      ports.Table[domain.PurchaseOrder, string]
	Users          ports.Table[domain.User, string]
}

// NewTables creates every table repository over db
func NewTables(db *gorm.DB) *Tables {
	return &Tables{
		Inventory:      NewTableRepository[models.InventoryItem, *models.InventoryItem, domain.InventoryItem, int64](db, models.InventoryItemFromDomain),
		Customers:      NewTableRepository[models.Customer, *models.Customer, domain.Customer, int64](db, models.CustomerFromDomain),
		Suppliers:      NewTableRepository[models.Supplier, *models.Supplier, domain.Supplier, int64](db, models.SupplierFromDomain),
		Prescriptions:  NewTableRepository[models.Prescription, *models.Prescription, domain.Prescription, string](db, models.PrescriptionFromDomain),
		EPrescriptions: NewTableRepository[models.EPrescription, *models.EPrescription, domain.EPrescription, string](db, models.EPrescriptionFromDomain),
		Returns:        NewTableRepository[models.Return, *models.Return, domain.Return, string](db, models.ReturnFromDomain),
		Sales:          NewTableRepository[models.Sale, *models.Sale, domain.Sale, string](db, models.SaleFromDomain),
		Purchases:      NewTableRepository[models.PurchaseOrder, *models.PurchaseOrder, domain.PurchaseOrder, string](db, models.PurchaseOrderFromDomain),
		Users:          NewProfileRepository(db),
	}
}
