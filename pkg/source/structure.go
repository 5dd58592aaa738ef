// Package source loads report structures from workbooks and YAML files.
//
// Both formats decode into the same [Structure]: variable definitions keyed
// by id, followed by sections that reference those ids. [Structure.Document]
// builds the descriptors once, so every table that names an id shares the
// same descriptor, and returns a [report.Document] ready to resolve.
//
// Errors name the place in the file they come from ("tables row 7",
// "categories[2]") and keep the code of the underlying failure.
package source

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// Structure is the format-neutral content of a structure file.
type Structure struct {
	Title      string        `yaml:"title,omitempty"`
	Quantities []QuantityDef `yaml:"quantities,omitempty"`
	Categories []CategoryDef `yaml:"categories,omitempty"`
	Itemsets   []ItemsetDef  `yaml:"itemsets,omitempty"`
	Sections   []SectionDef  `yaml:"sections"`
}

// QuantityDef defines a numeric variable.
type QuantityDef struct {
	ID          string `yaml:"id"`
	Description string `yaml:"description"`
	Unit        string `yaml:"unit,omitempty"`
	Display     List   `yaml:"display,omitempty"`
	CellContent string `yaml:"cell_content,omitempty"`

	at string
}

// CategoryDef defines a categorical variable.
type CategoryDef struct {
	ID          string `yaml:"id"`
	Description string `yaml:"description"`
	Groups      List   `yaml:"groups"`
	Missing     bool   `yaml:"missing,omitempty"`
	Total       bool   `yaml:"total,omitempty"`
	Display     string `yaml:"display,omitempty"`
	CellContent string `yaml:"cell_content,omitempty"`

	at string
}

// ItemsetDef defines a listing.
type ItemsetDef struct {
	ID          string `yaml:"id"`
	Description string `yaml:"description"`
	Items       List   `yaml:"items"`
	Contents    List   `yaml:"contents"`
	CellContent string `yaml:"cell_content,omitempty"`

	at string
}

// SectionDef is a titled list of tables.
type SectionDef struct {
	Title  string     `yaml:"title,omitempty"`
	Tables []TableDef `yaml:"tables"`
}

// TableDef references variables by id. Either X or Stack is set; a stack
// holds the ids of every stacked variable in order.
type TableDef struct {
	X           string `yaml:"x,omitempty"`
	Stack       List   `yaml:"stack,omitempty"`
	Y           string `yaml:"y,omitempty"`
	Caption     string `yaml:"caption,omitempty"`
	CellContent string `yaml:"cell_content,omitempty"`

	at string
}

// List is a list of strings. In YAML it may be written as a sequence or as
// a single string; in a workbook cell, entries are separated by ";" or
// newlines.
type List []string

// UnmarshalYAML accepts a scalar or a sequence of scalars.
func (l *List) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*l = SplitList(node.Value)
		return nil
	default:
		var items []string
		if err := node.Decode(&items); err != nil {
			return err
		}
		*l = cleanList(items)
		return nil
	}
}

// SplitList splits a cell value on ";" and newlines, trimming entries and
// dropping blanks.
func SplitList(s string) List {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == ';' || r == '\n' || r == '\r' })
	return cleanList(parts)
}

func cleanList(in []string) List {
	out := make(List, 0, len(in))
	for _, p := range in {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
