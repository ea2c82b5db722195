package stores

import (
	"context"
	"errors"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/domain"
	"github.com/hananmuzaffar/rx-nexus-pharmacy-hub/internal/core/ports"
)

// DefaultCategories are offered when adding a medicine
var DefaultCategories = []string{
	"Antibiotics",
	"Analgesics",
	"Antacids",
	"Antihypertensives",
	"Antipyretics",
	"Antihistamines",
	"Vitamins",
	"Antiseptics",
	"OTC",
	"Tablets",
	"Syrup",
	"Injection",
	"Capsules",
	"Topical",
	"Drops",
	"Inhaler",
}

// DefaultManufacturers are offered when adding a medicine
var DefaultManufacturers = []string{
	"Sun Pharma",
	"Cipla",
	"Dr. Reddy's",
	"Lupin",
	"Zydus Cadila",
	"Aurobindo Pharma",
	"Alkem Laboratories",
	"Torrent Pharmaceuticals",
	"Mankind Pharma",
	"Glenmark Pharmaceuticals",
	"Other",
}

type inventorySnapshot struct {
	Items         []domain.InventoryItem `json:"items"`
	Categories    []string               `json:"categories"`
	Manufacturers []string               `json:"manufacturers"`
}

// InventoryStore is the inventory collection plus the category and
// manufacturer pick lists
type InventoryStore struct {
	*Store[domain.InventoryItem, int64]

	snaps ports.SnapshotStore

	listMu        sync.RWMutex
	categories    []string
	manufacturers []string
}

// NewInventory creates the inventory store. The last snapshot is restored if
// one exists, otherwise the store starts from the bootstrap catalogue.
func NewInventory(table ports.Table[domain.InventoryItem, int64], snaps ports.SnapshotStore) *InventoryStore {
	snap := inventorySnapshot{
		Items:         BootstrapInventory(),
		Categories:    append([]string(nil), DefaultCategories...),
		Manufacturers: append([]string(nil), DefaultManufacturers...),
	}
	restore(snaps, ports.SnapshotInventory, &snap)

	s := &InventoryStore{
		Store: New[domain.InventoryItem, int64]("inventory", table, Options[domain.InventoryItem]{
			Prepare:          PrepareInventoryItem,
			KeepOnEmptyFetch: true,
		}, snap.Items...),
		snaps:         snaps,
		categories:    snap.Categories,
		manufacturers: snap.Manufacturers,
	}
	s.Observe(func(items []domain.InventoryItem) { s.save(items) })
	return s
}

// PrepareInventoryItem recomputes the strip price: unit price times tablets
// per strip for strip medicines, zero for everything else.
func PrepareInventoryItem(item domain.InventoryItem) domain.InventoryItem {
	if item.MedicineType != domain.MedicineTypeStrip {
		item.StripPrice = 0
		return item
	}
	if item.TabletsPerStrip < 1 {
		item.TabletsPerStrip = 1
	}
	item.StripPrice = decimal.NewFromFloat(item.UnitPrice).
		Mul(decimal.NewFromInt(int64(item.TabletsPerStrip))).
		Round(2).
		InexactFloat64()
	return item
}

// BootstrapInventory is the catalogue shown before the first fetch
func BootstrapInventory() []domain.InventoryItem {
	date := func(s string) *domain.Date {
		d, _ := domain.ParseDate(s)
		return &d
	}
	items := []domain.InventoryItem{
		{ID: 1, Name: "Paracetamol 500mg", SKU: "PCM-500", Category: "Analgesics", Stock: 165, ReorderLevel: 50, UnitPrice: 4.99, ExpiryDate: date("2026-01-15")},
		{ID: 2, Name: "Amoxicillin 250mg", SKU: "AMX-250", Category: "Antibiotics", Stock: 42, ReorderLevel: 30, UnitPrice: 8.50, ExpiryDate: date("2025-11-20")},
		{ID: 3, Name: "Cetirizine 10mg", SKU: "CET-10", Category: "Antihistamines", Stock: 87, ReorderLevel: 40, UnitPrice: 3.25, ExpiryDate: date("2025-08-30")},
		{ID: 4, Name: "Omeprazole 20mg", SKU: "OMP-20", Category: "Gastrointestinal", Stock: 15, ReorderLevel: 25, UnitPrice: 7.99, ExpiryDate: date("2025-09-25")},
		{ID: 5, Name: "Ibuprofen 400mg", SKU: "IBU-400", Category: "Anti-inflammatory", Stock: 120, ReorderLevel: 40, UnitPrice: 5.49, ExpiryDate: date("2026-03-10")},
	}
	for i := range items {
		if items[i].Category == "Tablets" {
			items[i].MedicineType = domain.MedicineTypeStrip
			items[i].TabletsPerStrip = 10
		} else {
			items[i].MedicineType = domain.MedicineTypeSyrup
		}
		items[i] = PrepareInventoryItem(items[i])
	}
	return items
}

// Search matches term against name, category and SKU, case-insensitively
func (s *InventoryStore) Search(term string) []domain.InventoryItem {
	term = strings.ToLower(strings.TrimSpace(term))
	return s.Filter(func(item domain.InventoryItem) bool {
		return strings.Contains(strings.ToLower(item.Name), term) ||
			strings.Contains(strings.ToLower(item.Category), term) ||
			strings.Contains(strings.ToLower(item.SKU), term)
	})
}

// LowStock returns items at or below their reorder level
func (s *InventoryStore) LowStock() []domain.InventoryItem {
	return s.Filter(domain.InventoryItem.IsLowStock)
}

// Expiring is an item together with the days left before it expires
type Expiring struct {
	domain.InventoryItem
	DaysRemaining int `json:"days_remaining"`
}

// ExpiringWithin returns items expiring between today and days from now,
// soonest first. Already expired items are excluded.
func (s *InventoryStore) ExpiringWithin(days int, now time.Time) []Expiring {
	today := domain.NewDate(now)
	out := make([]Expiring, 0)
	for _, item := range s.All() {
		if item.ExpiryDate == nil || item.ExpiryDate.IsZero() {
			continue
		}
		left := int(math.Ceil(item.ExpiryDate.Sub(today.Time).Hours() / 24))
		if left < 0 || left > days {
			continue
		}
		out = append(out, Expiring{InventoryItem: item, DaysRemaining: left})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DaysRemaining < out[j].DaysRemaining
	})
	return out
}

// ApplySale decrements stock for every item named in lines. Selling loose
// tablets of a strip medicine consumes whole strips, rounded up. Stock never
// drops below zero. Each change is written through; a failed update does not
// stop the remaining lines and all failures are joined into the error.
func (s *InventoryStore) ApplySale(ctx context.Context, lines []domain.SaleLine) ([]domain.InventoryItem, error) {
	sold := make(map[string]domain.SaleLine, len(lines))
	for _, line := range lines {
		if _, ok := sold[line.Product]; !ok {
			sold[line.Product] = line
		}
	}

	var (
		updated []domain.InventoryItem
		errs    []error
	)
	for _, item := range s.All() {
		line, ok := sold[item.Name]
		if !ok {
			continue
		}
		used := line.Quantity
		if line.SellByTablet && item.MedicineType == domain.MedicineTypeStrip {
			per := item.TabletsPerStrip
			if per < 1 {
				per = 1
			}
			used = int(math.Ceil(float64(line.TabletsCount) / float64(per)))
		}
		item.Stock -= used
		if item.Stock < 0 {
			item.Stock = 0
		}
		saved, err := s.Update(ctx, item)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		updated = append(updated, saved)
	}
	return updated, errors.Join(errs...)
}

// Categories returns the category pick list
func (s *InventoryStore) Categories() []string {
	s.listMu.RLock()
	defer s.listMu.RUnlock()
	return append([]string(nil), s.categories...)
}

// AddCategory appends name to the pick list. It reports false for blanks and
// duplicates.
func (s *InventoryStore) AddCategory(name string) bool {
	s.listMu.Lock()
	next, ok := appendUnique(s.categories, name)
	s.categories = next
	s.listMu.Unlock()
	if ok {
		s.save(s.All())
	}
	return ok
}

// Manufacturers returns the manufacturer pick list
func (s *InventoryStore) Manufacturers() []string {
	s.listMu.RLock()
	defer s.listMu.RUnlock()
	return append([]string(nil), s.manufacturers...)
}

// AddManufacturer appends name to the pick list. It reports false for blanks
// and duplicates.
func (s *InventoryStore) AddManufacturer(name string) bool {
	s.listMu.Lock()
	next, ok := appendUnique(s.manufacturers, name)
	s.manufacturers = next
	s.listMu.Unlock()
	if ok {
		s.save(s.All())
	}
	return ok
}

func (s *InventoryStore) save(items []domain.InventoryItem) {
	persist(s.snaps, ports.SnapshotInventory, inventorySnapshot{
		Items:         items,
		Categories:    s.Categories(),
		Manufacturers: s.Manufacturers(),
	})
}

func appendUnique(list []string, name string) ([]string, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return list, false
	}
	for _, v := range list {
		if strings.EqualFold(v, name) {
			return list, false
		}
	}
	return append(list, name), true
}
