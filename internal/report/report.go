// Package report renders the summary of a migration run.
package report

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/xuri/excelize/v2"

	"github.com/BartekS5/barberia/internal/etl"
)

var headers = []string{"Tabla", "Destino", "Encontrados", "Migrados", "Duplicados", "Sin campo requerido", "Errores", "Estado"}

// Print writes the per-table summary and the notices for tables whose data
// is intentionally not migrated.
func Print(w io.Writer, s *etl.Summary) {
	fmt.Fprintf(w, "\nResumen de migracion (run %s, %s)\n", s.RunID, s.Duration.Round(time.Millisecond))

	table := tablewriter.NewWriter(w)
	table.SetHeader(headers)
	table.SetAutoWrapText(false)
	for _, t := range s.Tables {
		table.Append(row(t))
	}
	total := s.Totals()
	table.SetFooter([]string{"TOTAL", "",
		strconv.Itoa(total.Found), strconv.Itoa(total.Migrated),
		strconv.Itoa(total.SkippedDuplicate), strconv.Itoa(total.SkippedMissingField),
		strconv.Itoa(total.Errored), ""})
	table.Render()

	for _, t := range s.Tables {
		if t.NotMigrated() {
			fmt.Fprintf(w, "AVISO: %s (%d registros) no se migra: su estructura no es compatible con %s.\n",
				t.Mapping.SourceTable, t.Found, t.Mapping.TargetTable)
			if t.Archived > 0 {
				fmt.Fprintf(w, "       %d registros archivados en legacy_%s.\n", t.Archived, t.Mapping.SourceTable)
			}
		}
	}
	for _, t := range s.Tables {
		for _, msg := range t.RowErrors {
			fmt.Fprintf(w, "ERROR %s: %s\n", t.Mapping.SourceTable, msg)
		}
	}
}

// ExportXLSX writes the summary to a spreadsheet at path.
func ExportXLSX(path string, s *etl.Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Resumen"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	write := func(col, r int, v interface{}) {
		cell, _ := excelize.CoordinatesToCellName(col, r)
		_ = f.SetCellValue(sheet, cell, v)
	}

	write(1, 1, "Run")
	write(2, 1, s.RunID)
	write(1, 2, "Inicio")
	write(2, 2, s.StartedAt.Format(time.RFC3339))

	for i, h := range headers {
		write(i+1, 4, h)
	}
	for i, t := range s.Tables {
		r := 5 + i
		write(1, r, t.Mapping.SourceTable)
		write(2, r, t.Mapping.TargetTable)
		write(3, r, t.Found)
		write(4, r, t.Migrated)
		write(5, r, t.SkippedDuplicate)
		write(6, r, t.SkippedMissingField)
		write(7, r, t.Errored)
		write(8, r, status(t))
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save report %s: %w", path, err)
	}
	return nil
}

func row(t etl.TableStats) []string {
	return []string{
		t.Mapping.SourceTable,
		t.Mapping.TargetTable,
		strconv.Itoa(t.Found),
		strconv.Itoa(t.Migrated),
		strconv.Itoa(t.SkippedDuplicate),
		strconv.Itoa(t.SkippedMissingField),
		strconv.Itoa(t.Errored),
		status(t),
	}
}

func status(t etl.TableStats) string {
	switch {
	case errors.Is(t.Err, etl.ErrMissingTable):
		return "tabla no encontrada"
	case t.Err != nil:
		return "error: " + t.Err.Error()
	case t.NotMigrated():
		return "no migrada"
	case t.Errored > 0:
		return "con errores"
	default:
		return "ok"
	}
}
