package ExcelIO

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"Guardias/Models"
)

// MissingSheetError reports that the workbook has no sheet matching the
// requested name (case/whitespace-insensitive).
type MissingSheetError struct {
	Sheet string
}

func (e *MissingSheetError) Error() string {
	return fmt.Sprintf("no se encontró la pestaña '%s' en el Excel", e.Sheet)
}

// MissingColumnsError names every mandatory logical field with no matching
// header, not just the first.
type MissingColumnsError struct {
	Missing []string
}

func (e *MissingColumnsError) Error() string {
	return "faltan columnas requeridas en 'General': " + strings.Join(e.Missing, ", ")
}

// Header aliases per logical field, matched case/whitespace-insensitively in
// order; the first header present in the sheet wins.
var (
	aliasesLegajo  = []string{"Legajo", "Legajo Clear", "LegajoClear"}
	aliasesCuil    = []string{"CUIL"}
	aliasesNombre  = []string{"Nombre y Apellido", "Nombre", "Apellido y Nombre"}
	aliasesLeader  = []string{"leader_legajo", "Lider", "Líder", "Jefe", "leader"}
	aliasesFuncion = []string{"FUNCIÓN", "Función", "Funcion"}
	aliasesOrigen  = []string{"Origen"}
	aliasesLugar   = []string{"Lugar de trabajo", "Lugar de Trabajo", "LugarTrabajo", "Lugar"}
)

func normHeader(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// resolveColumn returns the index of the first alias present in the header
// row, or -1.
func resolveColumn(headers []string, aliases []string) int {
	norm := make(map[string]int, len(headers))
	for i, h := range headers {
		key := normHeader(h)
		if _, seen := norm[key]; !seen {
			norm[key] = i
		}
	}
	for _, alias := range aliases {
		if i, ok := norm[normHeader(alias)]; ok {
			return i
		}
	}
	return -1
}

func cellAt(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

// cellValue keeps workbook numbers numeric in the extras bag.
func cellValue(raw string) interface{} {
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return n
	}
	return raw
}

// ImportMaestroGeneral parses the "General" sheet of the master workbook
// into candidate personnel records. Rows with a blank legajo are spacer rows
// and are skipped silently; rows missing CUIL, nombre or leader produce a
// warning but are still emitted. Unrecognized columns go verbatim into the
// extras bag. Leader legitimacy is validated separately by ValidateLeaders.
func ImportMaestroGeneral(excelBytes []byte) ([]Models.Person, []string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(excelBytes))
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	const wanted = "General"
	sheet := ""
	for _, s := range f.GetSheetList() {
		if strings.EqualFold(strings.TrimSpace(s), wanted) {
			sheet = s
			break
		}
	}
	if sheet == "" {
		return nil, nil, &MissingSheetError{Sheet: wanted}
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 {
		return nil, nil, nil
	}
	headers := rows[0]

	colLegajo := resolveColumn(headers, aliasesLegajo)
	colCuil := resolveColumn(headers, aliasesCuil)
	colNombre := resolveColumn(headers, aliasesNombre)
	colLeader := resolveColumn(headers, aliasesLeader)

	var missing []string
	if colLegajo < 0 {
		missing = append(missing, "Legajo (o Legajo Clear)")
	}
	if colCuil < 0 {
		missing = append(missing, "CUIL")
	}
	if colNombre < 0 {
		missing = append(missing, "Nombre y Apellido (o Nombre)")
	}
	if colLeader < 0 {
		missing = append(missing, "leader_legajo (o Lider/Líder/Jefe)")
	}
	if len(missing) > 0 {
		return nil, nil, &MissingColumnsError{Missing: missing}
	}

	colFuncion := resolveColumn(headers, aliasesFuncion)
	colOrigen := resolveColumn(headers, aliasesOrigen)
	colLugar := resolveColumn(headers, aliasesLugar)

	known := map[int]bool{
		colLegajo: true, colCuil: true, colNombre: true, colLeader: true,
	}
	for _, c := range []int{colFuncion, colOrigen, colLugar} {
		if c >= 0 {
			known[c] = true
		}
	}

	var (
		people   []Models.Person
		warnings []string
	)
	for _, row := range rows[1:] {
		legajo := cellAt(row, colLegajo)
		if legajo == "" {
			continue
		}

		cuil := cellAt(row, colCuil)
		nombre := cellAt(row, colNombre)
		leader := cellAt(row, colLeader)
		if cuil == "" || nombre == "" || leader == "" {
			warnings = append(warnings, fmt.Sprintf("Legajo %s: faltan datos (CUIL/NOMBRE/LÍDER).", legajo))
		}

		extra := map[string]interface{}{}
		for col, header := range headers {
			if known[col] {
				continue
			}
			if raw := cellAt(row, col); raw != "" {
				extra[strings.TrimSpace(header)] = cellValue(raw)
			}
		}

		person := Models.Person{
			Legajo:       legajo,
			Cuil:         cuil,
			Nombre:       nombre,
			LeaderLegajo: leader,
			Funcion:      cellAt(row, colFuncion),
			Origen:       cellAt(row, colOrigen),
			LugarTrabajo: cellAt(row, colLugar),
		}
		if len(extra) > 0 {
			blob, err := json.Marshal(extra)
			if err != nil {
				return nil, nil, err
			}
			person.Extra = blob
		}
		people = append(people, person)
	}

	return people, warnings, nil
}
