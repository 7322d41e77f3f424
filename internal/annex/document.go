package annex

import (
	"fmt"
	"jornada40/internal/contract"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const displayDate = "02-01-2006"

var printer = message.NewPrinter(language.Spanish)

// Document is the filled annex, shared by every renderer.
type Document struct {
	CompanyName      string
	CompanyTaxID     string
	CompanyAddress   string
	EmployeeName     string
	EmployeeTaxID    string
	EmployeeRole     string
	ScheduleLabel    string
	WeeklyHours      string
	WorkingDays      int
	MealBreak        string
	BaseSalary       string
	StartDate        string
	EndDate          string
	LegalWeeklyLimit string
}

func newDocument(c *contract.Contract) Document {
	doc := Document{
		ScheduleLabel:    c.ScheduleType.Label(),
		WeeklyHours:      printer.Sprintf("%.1f", c.WeeklyHours.InexactFloat64()),
		WorkingDays:      c.WorkingDays,
		MealBreak:        "No imputable a la jornada",
		BaseSalary:       printer.Sprintf("$%d", c.BaseSalary),
		StartDate:        c.StartDate.Format(displayDate),
		EndDate:          "Indefinido",
		LegalWeeklyLimit: contract.LegalWeeklyLimit(c.StartDate).String(),
	}
	if c.MealBreakCountsAsWork {
		doc.MealBreak = "Imputable a la jornada"
	}
	if c.EndDate != nil {
		doc.EndDate = c.EndDate.Format(displayDate)
	}

	if e := c.Employee; e != nil {
		doc.EmployeeName = e.FullName()
		doc.EmployeeTaxID = e.TaxID
		doc.EmployeeRole = e.Role
		if co := e.Company; co != nil {
			doc.CompanyName = co.LegalName
			doc.CompanyTaxID = co.TaxID
			doc.CompanyAddress = joinNonEmpty(co.Address, co.Commune, co.City)
		}
	}
	return doc
}

// Lines is the plain-text body used by the builtin PDF writer.
func (d Document) Lines() []string {
	lines := []string{
		"ANEXO DE CONTRATO DE TRABAJO",
		"Adecuación a la Ley N° 21.561 (Ley 40 horas)",
		"",
		fmt.Sprintf("Empleador: %s, RUT %s", d.CompanyName, d.CompanyTaxID),
	}
	if d.CompanyAddress != "" {
		lines = append(lines, "Domicilio: "+d.CompanyAddress)
	}
	lines = append(lines,
		fmt.Sprintf("Trabajador: %s, RUT %s", d.EmployeeName, d.EmployeeTaxID),
	)
	if d.EmployeeRole != "" {
		lines = append(lines, "Cargo: "+d.EmployeeRole)
	}
	return append(lines,
		"",
		"Tipo de jornada: "+d.ScheduleLabel,
		fmt.Sprintf("Jornada semanal: %s horas (máximo legal %s horas)", d.WeeklyHours, d.LegalWeeklyLimit),
		fmt.Sprintf("Distribución: %d días a la semana", d.WorkingDays),
		"Colación: "+d.MealBreak,
		"Sueldo base: "+d.BaseSalary,
		"Vigencia desde: "+d.StartDate,
		"Vigencia hasta: "+d.EndDate,
		"",
		"Las partes firman en señal de conformidad.",
		"",
		"______________________          ______________________",
		"      Empleador                       Trabajador",
	)
}

func joinNonEmpty(parts ...string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += ", "
		}
		out += p
	}
	return out
}

func formatFilename(taxID string) string {
	return fmt.Sprintf("Anexo_40h_%s.pdf", taxID)
}
