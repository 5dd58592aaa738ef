package source

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/matzehuels/tlfs/pkg/errors"
)

// Workbook column order, one slice per sheet.
var (
	quantityColumns = []string{"id", "description", "unit", "display", "cell_content"}
	categoryColumns = []string{"id", "description", "groups", "missing", "total", "display", "cell_content"}
	itemsetColumns  = []string{"id", "description", "items", "contents", "cell_content"}
	tablesColumns   = []string{"section", "x", "y", "caption", "cell_content", "stack"}
)

// Sample returns a small structure that uses every table layout.
func Sample() *Structure {
	return &Structure{
		Title: "Clinical study report tables",
		Quantities: []QuantityDef{
			{ID: "age", Description: "Age", Unit: "years", Display: List{"median", "25pct", "75pct"}},
			{ID: "weight", Description: "Weight", Unit: "kg", Display: List{"mean", "sd"}},
		},
		Categories: []CategoryDef{
			{ID: "trt", Description: "Treatment", Groups: List{"Experimental", "Control"}},
			{ID: "sex", Description: "Sex", Groups: List{"Female", "Male"}, Missing: true, Total: true},
		},
		Itemsets: []ItemsetDef{
			{ID: "ae", Description: "Adverse events", Items: List{"Headache", "Nausea", "Fatigue"}, Contents: List{"n", "%"}},
		},
		Sections: []SectionDef{
			{Title: "Demographics", Tables: []TableDef{
				{X: "age"},
				{X: "age", Y: "trt"},
				{X: "sex", Y: "trt", Caption: "Sex distribution by treatment arm"},
				{Stack: List{"age", "weight"}, Y: "trt", Caption: "Baseline measurements by treatment"},
			}},
			{Title: "Safety", Tables: []TableDef{
				{X: "ae"},
				{X: "ae", Y: "trt"},
			}},
		},
	}
}

// WriteTemplate writes [Sample] to path as a workbook or a YAML file,
// depending on the extension. Existing files are not overwritten.
func WriteTemplate(path string) error {
	format, err := DetectFormat(path)
	if err != nil {
		return err
	}
	if err := errors.ValidateOutputPath(path); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "%s already exists", path)
		}
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}

	if format == FormatYAML {
		err = WriteYAML(f, Sample())
	} else {
		err = WriteWorkbook(f, Sample())
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
	}
	return err
}

// WriteWorkbook encodes a structure as a workbook that [ReadWorkbook] reads
// back. Stacked tables are written as one row per variable sharing a stack
// key.
func WriteWorkbook(w io.Writer, s *Structure) error {
	f := excelize.NewFile()
	defer f.Close()

	var quantities, categories, itemsets, tables [][]string
	for _, q := range s.Quantities {
		quantities = append(quantities, []string{q.ID, q.Description, q.Unit, joinList(q.Display), q.CellContent})
	}
	for _, c := range s.Categories {
		categories = append(categories, []string{c.ID, c.Description, joinList(c.Groups),
			yesNo(c.Missing), yesNo(c.Total), c.Display, c.CellContent})
	}
	for _, set := range s.Itemsets {
		itemsets = append(itemsets, []string{set.ID, set.Description, joinList(set.Items), joinList(set.Contents), set.CellContent})
	}
	stack := 0
	for _, sec := range s.Sections {
		for _, t := range sec.Tables {
			if len(t.Stack) == 0 {
				tables = append(tables, []string{sec.Title, t.X, t.Y, t.Caption, t.CellContent, ""})
				continue
			}
			stack++
			key := fmt.Sprintf("s%d", stack)
			for i, x := range t.Stack {
				caption, content := "", ""
				if i == 0 {
					caption, content = t.Caption, t.CellContent
				}
				tables = append(tables, []string{sec.Title, x, t.Y, caption, content, key})
			}
		}
	}

	sheets := []struct {
		name    string
		columns []string
		rows    [][]string
	}{
		{SheetQuantity, quantityColumns, quantities},
		{SheetCategory, categoryColumns, categories},
		{SheetItemset, itemsetColumns, itemsets},
		{SheetTables, tablesColumns, tables},
		{SheetDocument, []string{"key", "value"}, [][]string{{"title", s.Title}}},
	}
	for i, sh := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sh.name); err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "name sheet %q", sh.name)
			}
		} else if _, err := f.NewSheet(sh.name); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "add sheet %q", sh.name)
		}
		if err := setRow(f, sh.name, 1, sh.columns); err != nil {
			return err
		}
		for r, row := range sh.rows {
			if err := setRow(f, sh.name, r+2, row); err != nil {
				return err
			}
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write workbook")
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "sheet %q row %d", sheet, row)
	}
	vals := make([]any, len(values))
	for i, v := range values {
		vals[i] = v
	}
	if err := f.SetSheetRow(sheet, cell, &vals); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "sheet %q row %d", sheet, row)
	}
	return nil
}

func joinList(l List) string { return strings.Join(l, "; ") }

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
