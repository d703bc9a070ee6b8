package Grid

import (
	"fmt"
	"strings"
	"time"

	"Guardias/Models"
)

// Row is one calendar day of the editable month grid: four day-type flags,
// two hour accumulators and a free comment.
type Row struct {
	Fecha      string  `json:"fecha"`
	G          bool    `json:"g"`
	F          bool    `json:"f"`
	D          bool    `json:"d"`
	HO         bool    `json:"ho"`
	HV         float64 `json:"hv"`
	HE         float64 `json:"he"`
	Comentario string  `json:"comentario"`
}

// Grid is the dense per-day projection of one employee's month.
type Grid struct {
	Year  int   `json:"year"`
	Month int   `json:"month"`
	Rows  []Row `json:"rows"`
}

type Totals struct {
	G  int     `json:"g"`
	F  int     `json:"f"`
	D  int     `json:"d"`
	HO int     `json:"ho"`
	HV float64 `json:"hv"`
	HE float64 `json:"he"`
}

func PeriodoFromYearMonth(year, month int) string {
	return fmt.Sprintf("%04d%02d", year, month)
}

// ParsePeriodo splits a YYYYMM period string. Exactly six digits are
// required.
func ParsePeriodo(periodo string) (year, month int, err error) {
	if len(periodo) != 6 {
		return 0, 0, fmt.Errorf("invalid periodo %q, expected YYYYMM", periodo)
	}
	for _, c := range periodo {
		if c < '0' || c > '9' {
			return 0, 0, fmt.Errorf("invalid periodo %q, expected YYYYMM", periodo)
		}
	}
	if _, err := fmt.Sscanf(periodo, "%4d%2d", &year, &month); err != nil {
		return 0, 0, fmt.Errorf("invalid periodo %q, expected YYYYMM", periodo)
	}
	if month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("invalid periodo %q, month out of range", periodo)
	}
	return year, month, nil
}

func DaysInMonth(year, month int) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthBounds returns the first and last date of the month as ISO strings.
func MonthBounds(year, month int) (string, string) {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC)
	return first.Format("2006-01-02"), last.Format("2006-01-02")
}

// BuildEmpty returns a grid with one zeroed row per calendar day of the
// month, leap years included.
func BuildEmpty(year, month int) Grid {
	days := DaysInMonth(year, month)
	rows := make([]Row, days)
	for d := 1; d <= days; d++ {
		rows[d-1] = Row{
			Fecha: time.Date(year, time.Month(month), d, 0, 0, 0, 0, time.UTC).Format("2006-01-02"),
		}
	}
	return Grid{Year: year, Month: month, Rows: rows}
}

// FromItems projects stored items onto the month grid. A flag is set when
// any item of its kind exists on the date; hour kinds are summed. The day
// comment is the first non-empty comment in the order the items arrive,
// which the repository keeps stable at (fecha, tipo).
func FromItems(items []Models.Item, year, month int) Grid {
	grid := BuildEmpty(year, month)
	if len(items) == 0 {
		return grid
	}

	byDate := make(map[string][]Models.Item)
	for _, it := range items {
		byDate[it.Fecha] = append(byDate[it.Fecha], it)
	}

	for i := range grid.Rows {
		row := &grid.Rows[i]
		for _, it := range byDate[row.Fecha] {
			switch it.Tipo {
			case Models.TipoGuardia:
				row.G = true
			case Models.TipoFranco:
				row.F = true
			case Models.TipoDesarraigo:
				row.D = true
			case Models.TipoHomeOffice:
				row.HO = true
			case Models.TipoHorasViaje:
				if it.ValorNum != nil {
					row.HV += *it.ValorNum
				}
			case Models.TipoHorasExtra:
				if it.ValorNum != nil {
					row.HE += *it.ValorNum
				}
			}
			if row.Comentario == "" && it.Comentario != nil && *it.Comentario != "" {
				row.Comentario = *it.Comentario
			}
		}
	}
	return grid
}

// ToItems converts the grid back to normalized items for the employee. Flag
// items carry valor_text "1"; hour items are only emitted when strictly
// positive, so a zeroed cell never round-trips as a row. The trimmed row
// comment, when present, is copied onto every item of that day.
func ToItems(grid Grid, legajo string) []Models.Item {
	one := "1"
	var items []Models.Item
	for _, row := range grid.Rows {
		var comentario *string
		if c := strings.TrimSpace(row.Comentario); c != "" {
			comentario = &c
		}

		flags := []struct {
			set  bool
			tipo string
		}{
			{row.G, Models.TipoGuardia},
			{row.F, Models.TipoFranco},
			{row.D, Models.TipoDesarraigo},
			{row.HO, Models.TipoHomeOffice},
		}
		for _, f := range flags {
			if f.set {
				items = append(items, Models.Item{
					Legajo:     legajo,
					Fecha:      row.Fecha,
					Tipo:       f.tipo,
					ValorText:  &one,
					Comentario: comentario,
				})
			}
		}

		if row.HV > 0 {
			hv := row.HV
			items = append(items, Models.Item{
				Legajo: legajo, Fecha: row.Fecha, Tipo: Models.TipoHorasViaje,
				ValorNum: &hv, Comentario: comentario,
			})
		}
		if row.HE > 0 {
			he := row.HE
			items = append(items, Models.Item{
				Legajo: legajo, Fecha: row.Fecha, Tipo: Models.TipoHorasExtra,
				ValorNum: &he, Comentario: comentario,
			})
		}
	}
	return items
}

// ComputeTotals counts flagged days and sums hours across the grid.
func ComputeTotals(grid Grid) Totals {
	var t Totals
	for _, row := range grid.Rows {
		if row.G {
			t.G++
		}
		if row.F {
			t.F++
		}
		if row.D {
			t.D++
		}
		if row.HO {
			t.HO++
		}
		t.HV += row.HV
		t.HE += row.HE
	}
	return t
}

// Fechas returns every date of the grid, used to scope the replace-on-save.
func Fechas(grid Grid) []string {
	fechas := make([]string, len(grid.Rows))
	for i, row := range grid.Rows {
		fechas[i] = row.Fecha
	}
	return fechas
}
