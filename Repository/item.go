package Repository

import (
	"strings"

	"gorm.io/gorm"

	"Guardias/Models"
)

type ItemRepo interface {
	// ReplaceForDates deletes every item of the employee on the given dates
	// and inserts the new batch, as one transaction. A failed insert rolls
	// the delete back so no half-applied month is ever visible.
	ReplaceForDates(legajo string, fechas []string, items []Models.Item) error
	// ListForPeriod returns the employee's items in [desde, hasta] ordered
	// by (fecha, tipo). The kind-alphabetical order within a date is what
	// makes the "first non-empty comment" grid rule deterministic.
	ListForPeriod(legajo, desdeISO, hastaISO string) ([]Models.Item, error)
}

type itemRepo struct {
	db *gorm.DB
}

func NewItemRepo(db *gorm.DB) ItemRepo {
	return &itemRepo{db: db}
}

func (r *itemRepo) ReplaceForDates(legajo string, fechas []string, items []Models.Item) error {
	if len(fechas) == 0 {
		return nil
	}
	legajo = strings.TrimSpace(legajo)
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("legajo = ? AND fecha IN ?", legajo, fechas).
			Delete(&Models.Item{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		return tx.CreateInBatches(items, 500).Error
	})
}

func (r *itemRepo) ListForPeriod(legajo, desdeISO, hastaISO string) ([]Models.Item, error) {
	var items []Models.Item
	err := r.db.Where("legajo = ? AND fecha >= ? AND fecha <= ?",
		strings.TrimSpace(legajo), desdeISO, hastaISO).
		Order("fecha").Order("tipo").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
