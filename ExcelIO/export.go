package ExcelIO

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"Guardias/Grid"
)

// DetalleHeaders mirrors the grid column set exactly, so a re-imported
// export reproduces the grid.
var DetalleHeaders = []string{
	"Legajo", "Empleado", "Periodo", "Fecha",
	"G", "F", "D", "HO", "HV", "HE", "Comentario",
}

// ExportParte renders one parte as a workbook: a "Detalle" sheet with the
// full month grid and a "Resumen" sheet with the six totals.
func ExportParte(nombre, legajo, periodo string, grid Grid.Grid, totals Grid.Totals) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const detalle = "Detalle"
	if err := f.SetSheetName("Sheet1", detalle); err != nil {
		return nil, err
	}

	for i, header := range DetalleHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		f.SetCellValue(detalle, cell, header)
	}
	for rowIndex, row := range grid.Rows {
		values := []interface{}{
			legajo, nombre, periodo, row.Fecha,
			row.G, row.F, row.D, row.HO,
			row.HV, row.HE, row.Comentario,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIndex+2)
			if err != nil {
				return nil, err
			}
			f.SetCellValue(detalle, cell, value)
		}
	}

	const resumen = "Resumen"
	if _, err := f.NewSheet(resumen); err != nil {
		return nil, err
	}
	f.SetCellValue(resumen, "A1", "Métrica")
	f.SetCellValue(resumen, "B1", "Valor")
	metrics := []struct {
		label string
		value interface{}
	}{
		{"Días Guardia (G)", totals.G},
		{"Días Franco (F)", totals.F},
		{"Días Desarraigo (D)", totals.D},
		{"Días HomeOffice (HO)", totals.HO},
		{"Total Hs Viaje (HV)", totals.HV},
		{"Total Hs Extra (HE)", totals.HE},
	}
	for i, m := range metrics {
		f.SetCellValue(resumen, fmt.Sprintf("A%d", i+2), m.label)
		f.SetCellValue(resumen, fmt.Sprintf("B%d", i+2), m.value)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err == nil {
		for _, sheet := range []string{detalle, resumen} {
			f.SetRowStyle(sheet, 1, 1, headerStyle)
			f.SetPanes(sheet, &excelize.Panes{
				Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft",
			})
		}
	}

	f.SetColWidth(detalle, "A", "A", 10)
	f.SetColWidth(detalle, "B", "B", 28)
	f.SetColWidth(detalle, "C", "D", 12)
	f.SetColWidth(detalle, "E", "H", 6)
	f.SetColWidth(detalle, "I", "J", 10)
	f.SetColWidth(detalle, "K", "K", 30)
	f.SetColWidth(resumen, "A", "A", 24)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("error writing Excel file to buffer: %v", err)
	}
	return buf.Bytes(), nil
}
