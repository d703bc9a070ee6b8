package Workflow

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"Guardias/Grid"
	"Guardias/Models"
	"Guardias/Repository"
)

// ErrStateConflict is returned when a transition is attempted against a
// parte whose current state forbids it. The workflow re-validates even
// though callers are expected to gate edits themselves.
var ErrStateConflict = errors.New("parte state does not allow this operation")

// ErrEmptyComment is returned when a rejection carries no comment.
var ErrEmptyComment = errors.New("rejection comment is required")

// Service drives a parte through BORRADOR -> ENVIADO -> APROBADO/RECHAZADO.
// Item replacement and the state write happen inside one transaction.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// GetOrCreate returns the parte for the period, creating it lazily in
// BORRADOR on first access.
func (s *Service) GetOrCreate(legajo, periodo string) (*Models.Parte, error) {
	return Repository.NewParteRepo(s.db).GetOrCreate(legajo, periodo)
}

// LoadGrid reads the month's stored items and projects them onto the grid.
func (s *Service) LoadGrid(legajo, periodo string) (Grid.Grid, error) {
	year, month, err := Grid.ParsePeriodo(periodo)
	if err != nil {
		return Grid.Grid{}, err
	}
	desde, hasta := Grid.MonthBounds(year, month)
	items, err := Repository.NewItemRepo(s.db).ListForPeriod(legajo, desde, hasta)
	if err != nil {
		return Grid.Grid{}, err
	}
	return Grid.FromItems(items, year, month), nil
}

// SaveDraft replaces the month's items and returns the parte to BORRADOR,
// clearing any rejection comment. Valid from BORRADOR or RECHAZADO.
func (s *Service) SaveDraft(legajo, periodo string, grid Grid.Grid) error {
	return s.replaceAndTransition(legajo, periodo, grid, Models.EstadoBorrador, Repository.EstadoUpdate{})
}

// Submit replaces the month's items and moves the parte to ENVIADO, stamping
// the submission time. Valid from BORRADOR or RECHAZADO.
func (s *Service) Submit(legajo, periodo string, grid Grid.Grid) error {
	now := Models.UTCNowString()
	return s.replaceAndTransition(legajo, periodo, grid, Models.EstadoEnviado,
		Repository.EstadoUpdate{SubmittedAt: &now})
}

func (s *Service) replaceAndTransition(legajo, periodo string, grid Grid.Grid, estado string, upd Repository.EstadoUpdate) error {
	if Grid.PeriodoFromYearMonth(grid.Year, grid.Month) != strings.TrimSpace(periodo) {
		return fmt.Errorf("grid is for %04d%02d, not periodo %s", grid.Year, grid.Month, periodo)
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		parteRepo := Repository.NewParteRepo(tx)
		parte, err := parteRepo.GetOrCreate(legajo, periodo)
		if err != nil {
			return err
		}
		if !Models.EstadoEditable(parte.Estado) {
			return ErrStateConflict
		}
		items := Grid.ToItems(grid, parte.Legajo)
		if err := Repository.NewItemRepo(tx).ReplaceForDates(parte.Legajo, Grid.Fechas(grid), items); err != nil {
			return err
		}
		return parteRepo.UpdateEstado(parte.Legajo, parte.Periodo, estado, upd)
	})
}

// Decide approves or rejects a submitted parte. Rejection requires a
// non-empty comment and records it along with the deciding leader; approval
// stamps the approval time. Only valid from ENVIADO.
func (s *Service) Decide(legajo, periodo string, approve bool, leaderLegajo, comment string) error {
	comment = strings.TrimSpace(comment)
	if !approve && comment == "" {
		return ErrEmptyComment
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		parteRepo := Repository.NewParteRepo(tx)
		parte, err := parteRepo.Get(legajo, periodo)
		if err != nil {
			return err
		}
		if parte == nil || parte.Estado != Models.EstadoEnviado {
			return ErrStateConflict
		}

		leader := strings.TrimSpace(leaderLegajo)
		if approve {
			now := Models.UTCNowString()
			return parteRepo.UpdateEstado(parte.Legajo, parte.Periodo, Models.EstadoAprobado,
				Repository.EstadoUpdate{ApprovedAt: &now, ApprovedByLegajo: &leader})
		}
		return parteRepo.UpdateEstado(parte.Legajo, parte.Periodo, Models.EstadoRechazado,
			Repository.EstadoUpdate{ApprovedByLegajo: &leader, RejectionComment: &comment})
	})
}

// PendingForLeader lists the leader's approval inbox.
func (s *Service) PendingForLeader(leaderLegajo string) ([]Repository.PendingParte, error) {
	return Repository.NewParteRepo(s.db).PendingForLeader(leaderLegajo)
}
