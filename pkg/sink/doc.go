// Package sink writes resolved reports into document formats.
//
// # Overview
//
// A "sink" turns a [report.Report] into the bytes of one output file. Every
// renderer has the same shape:
//
//	data, err := sink.RenderDOCX(rep, sink.WithNumbering(true))
//
// and [Render] dispatches on a format name:
//
//   - docx: Word document with merged header cells
//   - xlsx: one worksheet per section with merged header cells
//   - md: Markdown pipe tables
//   - html: a standalone page using colspan and rowspan
//   - tex: LaTeX tabular environments using multicolumn and multirow
//   - csv: plain rows, one blank line between tables
//   - json: the grid model, including merges
//   - txt: terminal tables for previews
//
// # Merged cells
//
// Formats that can express merges (docx, xlsx, html, tex) use the merge list
// of each grid. The others write the text of the merge origin in its own cell
// and leave absorbed cells blank, which is exactly what the grid stores.
//
// # Options
//
//   - [WithNumbering]: prefix captions with "Table N: " (default on)
//   - [WithSectionTitles]: emit a heading per section (default on)
package sink
