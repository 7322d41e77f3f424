package employee

import (
	"github.com/xuri/excelize/v2"
)

const rosterSheet = "Trabajadores"

var rosterHeader = []string{
	"Número",
	"RUT",
	"Nombres",
	"Apellidos",
	"Empresa",
	"Cargo",
	"Departamento",
	"Fecha ingreso",
	"Sueldo base",
	"Jornada semanal",
	"Activo",
}

// buildRoster renders employees as a single-sheet workbook, one row per
// employee in the given order.
func buildRoster(empls []Employee) ([]byte, error) {
	xl := excelize.NewFile()
	defer func() { _ = xl.Close() }()

	if err := xl.SetSheetName(xl.GetSheetName(0), rosterSheet); err != nil {
		return nil, err
	}

	header := make([]interface{}, len(rosterHeader))
	for i, h := range rosterHeader {
		header[i] = h
	}
	if err := xl.SetSheetRow(rosterSheet, "A1", &header); err != nil {
		return nil, err
	}

	bold, err := xl.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	lastCol, _ := excelize.ColumnNumberToName(len(rosterHeader))
	if err := xl.SetCellStyle(rosterSheet, "A1", lastCol+"1", bold); err != nil {
		return nil, err
	}

	for ri, e := range empls {
		company := ""
		if e.Company != nil {
			company = e.Company.LegalName
		}
		weekly := ""
		if e.Contract != nil {
			weekly = e.Contract.WeeklyHours.StringFixed(1)
		}
		active := "No"
		if e.IsActive {
			active = "Sí"
		}

		record := []interface{}{
			e.EmployeeNumber,
			e.TaxID,
			e.FirstNames,
			e.LastNames,
			company,
			e.Role,
			e.Department,
			e.HireDate.Format(dateLayout),
			e.BaseSalary,
			weekly,
			active,
		}
		cellRef, err := excelize.CoordinatesToCellName(1, ri+2)
		if err != nil {
			return nil, err
		}
		if err := xl.SetSheetRow(rosterSheet, cellRef, &record); err != nil {
			return nil, err
		}
	}

	buf, err := xl.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
