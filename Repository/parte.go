package Repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"Guardias/Models"
)

// EstadoUpdate carries the optional fields of a state transition. Timestamp
// and approver fields are only written when non-nil; RejectionComment is
// always written so a transition can clear it.
type EstadoUpdate struct {
	SubmittedAt      *string
	ApprovedAt       *string
	ApprovedByLegajo *string
	RejectionComment *string
}

// PendingParte is one row of a leader's approval inbox.
type PendingParte struct {
	ID          uint    `json:"id"`
	Legajo      string  `json:"legajo"`
	Nombre      string  `json:"nombre"`
	Periodo     string  `json:"periodo"`
	Estado      string  `json:"estado"`
	SubmittedAt *string `json:"submitted_at"`
}

type ParteRepo interface {
	// GetOrCreate returns the parte for (legajo, periodo), creating it in
	// BORRADOR when absent. A concurrent create racing on the unique key is
	// absorbed by the conflict-do-nothing insert plus re-read.
	GetOrCreate(legajo, periodo string) (*Models.Parte, error)
	Get(legajo, periodo string) (*Models.Parte, error)
	UpdateEstado(legajo, periodo, estado string, upd EstadoUpdate) error
	// PendingForLeader lists ENVIADO partes of employees reporting to the
	// leader, newest submission first, then by employee name.
	PendingForLeader(leaderLegajo string) ([]PendingParte, error)
}

type parteRepo struct {
	db *gorm.DB
}

func NewParteRepo(db *gorm.DB) ParteRepo {
	return &parteRepo{db: db}
}

func (r *parteRepo) GetOrCreate(legajo, periodo string) (*Models.Parte, error) {
	legajo = strings.TrimSpace(legajo)
	periodo = strings.TrimSpace(periodo)

	parte := Models.Parte{Legajo: legajo, Periodo: periodo, Estado: Models.EstadoBorrador}
	if err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "legajo"}, {Name: "periodo_yyyymm"}},
		DoNothing: true,
	}).Create(&parte).Error; err != nil {
		return nil, err
	}
	return r.Get(legajo, periodo)
}

func (r *parteRepo) Get(legajo, periodo string) (*Models.Parte, error) {
	var parte Models.Parte
	err := r.db.Where("legajo = ? AND periodo_yyyymm = ?",
		strings.TrimSpace(legajo), strings.TrimSpace(periodo)).First(&parte).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &parte, nil
}

func (r *parteRepo) UpdateEstado(legajo, periodo, estado string, upd EstadoUpdate) error {
	updates := map[string]interface{}{
		"estado":            estado,
		"rejection_comment": upd.RejectionComment,
	}
	if upd.SubmittedAt != nil {
		updates["submitted_at"] = *upd.SubmittedAt
	}
	if upd.ApprovedAt != nil {
		updates["approved_at"] = *upd.ApprovedAt
	}
	if upd.ApprovedByLegajo != nil {
		updates["approved_by_legajo"] = *upd.ApprovedByLegajo
	}
	return r.db.Model(&Models.Parte{}).
		Where("legajo = ? AND periodo_yyyymm = ?", strings.TrimSpace(legajo), strings.TrimSpace(periodo)).
		Updates(updates).Error
}

func (r *parteRepo) PendingForLeader(leaderLegajo string) ([]PendingParte, error) {
	var pending []PendingParte
	err := r.db.Model(&Models.Parte{}).
		Select("partes.id, partes.legajo, personal.nombre, partes.periodo_yyyymm AS periodo, partes.estado, partes.submitted_at").
		Joins("JOIN personal ON personal.legajo = partes.legajo").
		Where("partes.estado = ? AND personal.leader_legajo = ?", Models.EstadoEnviado, strings.TrimSpace(leaderLegajo)).
		Order("partes.submitted_at DESC").
		Order("personal.nombre").
		Scan(&pending).Error
	if err != nil {
		return nil, err
	}
	return pending, nil
}
