package Models

// Day item kinds. The first four are boolean flags (one item present means
// the flag is set), HV and HE accumulate hours as a single numeric row per
// date.
const (
	TipoGuardia    = "G"
	TipoFranco     = "F"
	TipoDesarraigo = "D"
	TipoHomeOffice = "HO"
	TipoHorasViaje = "HV"
	TipoHorasExtra = "HE"
)

// FlagTipos in grid column order.
var FlagTipos = []string{TipoGuardia, TipoFranco, TipoDesarraigo, TipoHomeOffice}

// Item is one normalized fact about one employee on one date. Items for a
// month are replaced wholesale (delete then insert) on every save.
type Item struct {
	ID         uint     `json:"id" gorm:"primaryKey"`
	Legajo     string   `json:"legajo" gorm:"column:legajo;not null;index:idx_items_legajo_fecha"`
	Fecha      string   `json:"fecha" gorm:"column:fecha;not null;index:idx_items_legajo_fecha"`
	Tipo       string   `json:"tipo" gorm:"column:tipo;not null"`
	ValorText  *string  `json:"valor_text" gorm:"column:valor_text"`
	ValorNum   *float64 `json:"valor_num" gorm:"column:valor_num"`
	Comentario *string  `json:"comentario" gorm:"column:comentario"`
}

func (Item) TableName() string {
	return "items"
}
