package Models

import (
	"gorm.io/datatypes"
)

// Person is one row of the personnel master ("maestro"). The master import
// overwrites every mutable field on each run, keyed by legajo.
type Person struct {
	Legajo       string `json:"legajo" gorm:"primaryKey;column:legajo"`
	Cuil         string `json:"cuil" gorm:"column:cuil;not null"`
	Nombre       string `json:"nombre" gorm:"column:nombre;not null"`
	LeaderLegajo string `json:"leader_legajo" gorm:"column:leader_legajo;not null"`
	Funcion      string `json:"funcion,omitempty" gorm:"column:funcion"`
	Origen       string `json:"origen,omitempty" gorm:"column:origen"`
	LugarTrabajo string `json:"lugar_trabajo,omitempty" gorm:"column:lugar_trabajo"`

	// Columns of the source workbook that map to no known field, kept
	// verbatim keyed by their original header text.
	Extra datatypes.JSON `json:"extra,omitempty" gorm:"column:extra_json"`
}

func (Person) TableName() string {
	return "personal"
}
