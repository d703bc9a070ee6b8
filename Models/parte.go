package Models

// Parte states. A parte is editable by its employee only while in
// BORRADOR or RECHAZADO.
const (
	EstadoBorrador  = "BORRADOR"
	EstadoEnviado   = "ENVIADO"
	EstadoAprobado  = "APROBADO"
	EstadoRechazado = "RECHAZADO"
)

func EstadoEditable(estado string) bool {
	return estado == EstadoBorrador || estado == EstadoRechazado
}

// Parte is one employee's timesheet for one YYYYMM period. Exactly one row
// exists per (legajo, periodo); it is created lazily in BORRADOR and never
// deleted.
type Parte struct {
	ID               uint    `json:"id" gorm:"primaryKey"`
	Legajo           string  `json:"legajo" gorm:"column:legajo;not null;uniqueIndex:idx_partes_legajo_periodo"`
	Periodo          string  `json:"periodo" gorm:"column:periodo_yyyymm;not null;uniqueIndex:idx_partes_legajo_periodo"`
	Estado           string  `json:"estado" gorm:"column:estado;not null;index"`
	SubmittedAt      *string `json:"submitted_at" gorm:"column:submitted_at"`
	ApprovedAt       *string `json:"approved_at" gorm:"column:approved_at"`
	ApprovedByLegajo *string `json:"approved_by_legajo" gorm:"column:approved_by_legajo"`
	RejectionComment *string `json:"rejection_comment" gorm:"column:rejection_comment"`
}

func (Parte) TableName() string {
	return "partes"
}
