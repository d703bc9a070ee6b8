package Repository

import (
	"errors"
	"sort"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"Guardias/Models"
)

// PersonnelRepo is the master registry of employees and their leaders.
type PersonnelRepo interface {
	// Upsert reconciles the whole batch by legajo inside one transaction:
	// absent rows are inserted, present rows are overwritten wholesale
	// (extras included). Returns how many went down each branch.
	Upsert(people []Models.Person) (inserted int, updated int, err error)
	GetByLegajo(legajo string) (*Models.Person, error)
	// ListAll returns the directory ordered by nombre ascending.
	ListAll() ([]Models.Person, error)
	// DistinctLeaderLegajos returns every non-empty leader legajo in the
	// directory, sorted. Used as the leader set when LEADER_LEGAJOS is not
	// configured.
	DistinctLeaderLegajos() ([]string, error)
}

type personnelRepo struct {
	db *gorm.DB
}

func NewPersonnelRepo(db *gorm.DB) PersonnelRepo {
	return &personnelRepo{db: db}
}

func (r *personnelRepo) Upsert(people []Models.Person) (int, int, error) {
	inserted, updated := 0, 0
	err := r.db.Transaction(func(tx *gorm.DB) error {
		for i := range people {
			p := people[i]
			p.Legajo = strings.TrimSpace(p.Legajo)

			var count int64
			if err := tx.Model(&Models.Person{}).Where("legajo = ?", p.Legajo).Count(&count).Error; err != nil {
				return err
			}

			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "legajo"}},
				UpdateAll: true,
			}).Create(&p).Error; err != nil {
				return err
			}

			if count > 0 {
				updated++
			} else {
				inserted++
			}
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return inserted, updated, nil
}

func (r *personnelRepo) GetByLegajo(legajo string) (*Models.Person, error) {
	var person Models.Person
	err := r.db.Where("legajo = ?", strings.TrimSpace(legajo)).First(&person).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &person, nil
}

func (r *personnelRepo) ListAll() ([]Models.Person, error) {
	var people []Models.Person
	if err := r.db.Order("nombre").Find(&people).Error; err != nil {
		return nil, err
	}
	return people, nil
}

func (r *personnelRepo) DistinctLeaderLegajos() ([]string, error) {
	var leaders []string
	err := r.db.Model(&Models.Person{}).
		Distinct("leader_legajo").
		Where("leader_legajo IS NOT NULL AND leader_legajo <> ''").
		Pluck("leader_legajo", &leaders).Error
	if err != nil {
		return nil, err
	}
	for i := range leaders {
		leaders[i] = strings.TrimSpace(leaders[i])
	}
	sort.Strings(leaders)
	return leaders, nil
}
