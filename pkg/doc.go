// Package pkg provides the core libraries for tlfs, a generator of
// clinical-trial table shells.
//
// # Overview
//
// A statistical analysis plan lists the tables a study report will contain
// before any data exists: "Age by treatment", "Sex by treatment", a listing
// of adverse events. tlfs takes declarative definitions of the variables
// involved and computes the shape of every table: header rows, merged
// header cells, row labels and placeholder cell contents. The pkg directory
// is organized into four areas:
//
//  1. Core: [variable], [layout], [grid] and [report]
//  2. Input: [source] (xlsx workbooks and YAML files)
//  3. Output: [sink] (docx, xlsx, markdown, html, latex, csv, json, text)
//  4. Infrastructure: [pipeline], [cache], [config], [observability], [errors]
//
// # Architecture
//
// The data flow through tlfs:
//
//	structure.xlsx / structure.yaml
//	         ↓
//	    [source] package (variables + table definitions)
//	         ↓
//	    [report] package (document of sections, resolved in parallel)
//	         ↓
//	    [layout] package (one recipe per pair of variable kinds)
//	         ↓
//	    [grid] package (cells + merge spans)
//	         ↓
//	    [sink] package (docx, xlsx, md, html, tex, csv, json, txt)
//
// # Quick Start
//
//	age, _ := variable.NewQuantity("Age", variable.WithUnit("years"),
//	    variable.WithDisplay("median", "iqr"))
//	trt, _ := variable.NewCategory("Treatment", []string{"EXP", "CTRL"})
//
//	doc := &report.Document{Title: "Study 001", Sections: []report.Section{{
//	    Title:  "Demographics",
//	    Tables: []layout.Table{layout.TableSpec{X: age, Y: trt}},
//	}}}
//	rep, _ := doc.Resolve(ctx)
//	docx, _ := sink.RenderDOCX(rep)
//
// # Testing
//
//	go test ./...                 # All tests
//	go test ./pkg/layout/...      # Specific package
//	go test -run Example ./pkg/...
package pkg
