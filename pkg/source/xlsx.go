package source

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/matzehuels/tlfs/pkg/errors"
)

// Sheet names. Matching is case-insensitive.
const (
	SheetQuantity = "quantity"
	SheetCategory = "category"
	SheetItemset  = "itemset"
	SheetTables   = "tables"
	SheetDocument = "document"
)

// ReadWorkbook decodes a structure workbook. The tables sheet is required,
// the definition sheets and the document sheet are optional.
func ReadWorkbook(r io.Reader) (*Structure, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "open workbook")
	}
	defer f.Close()

	sheets := make(map[string]string)
	for _, name := range f.GetSheetList() {
		sheets[strings.ToLower(strings.TrimSpace(name))] = name
	}
	read := func(key string) (*table, error) {
		name, ok := sheets[key]
		if !ok {
			return nil, nil
		}
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read sheet %q", name)
		}
		return newTable(key, rows), nil
	}

	var s Structure

	if t, err := read(SheetQuantity); err != nil {
		return nil, err
	} else if t != nil {
		if err := t.require("id", "description"); err != nil {
			return nil, err
		}
		for t.next() {
			s.Quantities = append(s.Quantities, QuantityDef{
				ID:          t.get("id"),
				Description: t.get("description"),
				Unit:        t.get("unit"),
				Display:     SplitList(t.raw("display")),
				CellContent: t.get("cell_content"),
				at:          t.at(),
			})
		}
	}

	if t, err := read(SheetCategory); err != nil {
		return nil, err
	} else if t != nil {
		if err := t.require("id", "description", "groups"); err != nil {
			return nil, err
		}
		for t.next() {
			missing, err := t.bool("missing")
			if err != nil {
				return nil, err
			}
			total, err := t.bool("total")
			if err != nil {
				return nil, err
			}
			s.Categories = append(s.Categories, CategoryDef{
				ID:          t.get("id"),
				Description: t.get("description"),
				Groups:      SplitList(t.raw("groups")),
				Missing:     missing,
				Total:       total,
				Display:     t.get("display"),
				CellContent: t.get("cell_content"),
				at:          t.at(),
			})
		}
	}

	if t, err := read(SheetItemset); err != nil {
		return nil, err
	} else if t != nil {
		if err := t.require("id", "description", "items", "contents"); err != nil {
			return nil, err
		}
		for t.next() {
			s.Itemsets = append(s.Itemsets, ItemsetDef{
				ID:          t.get("id"),
				Description: t.get("description"),
				Items:       SplitList(t.raw("items")),
				Contents:    SplitList(t.raw("contents")),
				CellContent: t.get("cell_content"),
				at:          t.at(),
			})
		}
	}

	t, err := read(SheetTables)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "workbook has no %q sheet", SheetTables)
	}
	if err := t.require("x"); err != nil {
		return nil, err
	}
	if s.Sections, err = readSections(t); err != nil {
		return nil, err
	}

	if t, err := read(SheetDocument); err != nil {
		return nil, err
	} else if t != nil {
		for t.next() {
			if strings.EqualFold(t.col(0), "title") {
				s.Title = t.col(1)
			}
		}
	}
	return &s, nil
}

// readSections groups table rows by section in order of first appearance.
// Rows of one section that share a stack key become a single stacked table.
func readSections(t *table) ([]SectionDef, error) {
	var sections []SectionDef
	index := make(map[string]int)
	stacks := make(map[[2]string]int)

	for t.next() {
		title := t.get("section")
		if title == "" {
			title = defaultSection
		}
		si, ok := index[title]
		if !ok {
			si = len(sections)
			index[title] = si
			sections = append(sections, SectionDef{Title: title})
		}
		sec := &sections[si]

		def := TableDef{
			X:           t.get("x"),
			Y:           t.get("y"),
			Caption:     t.get("caption"),
			CellContent: t.get("cell_content"),
			at:          t.at(),
		}
		key := t.get("stack")
		if key == "" {
			sec.Tables = append(sec.Tables, def)
			continue
		}
		if def.X == "" {
			return nil, errors.New(errors.ErrCodeInvalidSpec, "%s: table has no x", def.at)
		}

		k := [2]string{title, key}
		ti, ok := stacks[k]
		if !ok {
			stacks[k] = len(sec.Tables)
			def.Stack = List{def.X}
			def.X = ""
			sec.Tables = append(sec.Tables, def)
			continue
		}
		st := &sec.Tables[ti]
		if def.Y != st.Y {
			return nil, errors.New(errors.ErrCodeInvalidSpec,
				"%s: stack %q mixes y %q and %q", def.at, key, st.Y, def.Y)
		}
		st.Stack = append(st.Stack, def.X)
		if st.Caption == "" {
			st.Caption = def.Caption
		}
		if st.CellContent == "" {
			st.CellContent = def.CellContent
		}
	}
	return sections, nil
}

// table walks the data rows of one sheet, addressing cells by header name.
type table struct {
	sheet  string
	header map[string]int
	rows   [][]string
	cur    int
}

func newTable(sheet string, rows [][]string) *table {
	t := &table{sheet: sheet, header: make(map[string]int), cur: 0}
	if len(rows) == 0 {
		return t
	}
	for i, h := range rows[0] {
		key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(h)), " ", "_")
		if key == "" {
			continue
		}
		if _, dup := t.header[key]; !dup {
			t.header[key] = i
		}
	}
	t.rows = rows
	return t
}

func (t *table) require(cols ...string) error {
	for _, c := range cols {
		if _, ok := t.header[c]; !ok {
			return errors.New(errors.ErrCodeInvalidInput, "sheet %q has no %q column", t.sheet, c)
		}
	}
	return nil
}

// next advances to the next non-blank row.
func (t *table) next() bool {
	for t.cur++; t.cur < len(t.rows); t.cur++ {
		for _, v := range t.rows[t.cur] {
			if strings.TrimSpace(v) != "" {
				return true
			}
		}
	}
	return false
}

// at returns the sheet and 1-based row number of the current row.
func (t *table) at() string {
	return fmt.Sprintf("%s row %d", t.sheet, t.cur+1)
}

func (t *table) col(i int) string {
	row := t.rows[t.cur]
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func (t *table) raw(name string) string {
	i, ok := t.header[name]
	if !ok || i >= len(t.rows[t.cur]) {
		return ""
	}
	return t.rows[t.cur][i]
}

func (t *table) get(name string) string {
	return strings.TrimSpace(t.raw(name))
}

func (t *table) bool(name string) (bool, error) {
	b, err := ParseBool(t.get(name))
	if err != nil {
		return false, errors.At(err, "%s column %q", t.at(), name)
	}
	return b, nil
}

// ParseBool reads a yes/no cell: 1/0, true/false, yes/no, y/n and x, in any
// case. Blank is false.
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "0", "false", "no", "n":
		return false, nil
	case "1", "true", "yes", "y", "x":
		return true, nil
	default:
		return false, errors.New(errors.ErrCodeInvalidInput, "invalid yes/no value %q", s)
	}
}
