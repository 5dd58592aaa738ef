package sink

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"time"

	"github.com/matzehuels/tlfs/pkg/errors"
	"github.com/matzehuels/tlfs/pkg/grid"
	"github.com/matzehuels/tlfs/pkg/report"
)

// Paragraph style ids defined in word/styles.xml.
const (
	styleTitle   = "Title"
	styleHeading = "Heading1"
	styleCaption = "Caption"
	styleTable   = "TableGrid"
)

// RenderDOCX renders the report as a Word document. Horizontal merges become
// w:gridSpan, vertical merges w:vMerge; header rows repeat on every page.
// The report ID is stored as dc:identifier in the core properties.
func RenderDOCX(r *report.Report, opts ...Option) ([]byte, error) {
	o := buildOptions(opts)

	var body bytes.Buffer
	if r.Title != "" {
		writeParagraph(&body, styleTitle, r.Title)
	}
	var section func(string) error
	if o.sectionTitles {
		section = func(title string) error {
			writeParagraph(&body, styleHeading, title)
			return nil
		}
	}
	err := walk(r, section, func(n int, g *grid.Grid) error {
		writeParagraph(&body, styleCaption, o.caption(n, g))
		writeTable(&body, g)
		// Word merges adjacent tables without a paragraph between them.
		body.WriteString(`<w:p/>`)
		return nil
	})
	if err != nil {
		return nil, err
	}

	parts := []struct {
		name string
		data []byte
	}{
		{"[Content_Types].xml", []byte(docxContentTypes)},
		{"_rels/.rels", []byte(docxRels)},
		{"docProps/core.xml", docxCore(r)},
		{"word/styles.xml", []byte(docxStyles)},
		{"word/document.xml", docxDocument(body.Bytes())},
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, p := range parts {
		w, err := zw.CreateHeader(&zip.FileHeader{Name: p.name, Method: zip.Deflate, Modified: docxEpoch})
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "create %s", p.name)
		}
		if _, err := w.Write(p.data); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "write %s", p.name)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "close docx")
	}
	return buf.Bytes(), nil
}

// docxEpoch keeps archive timestamps fixed so equal reports give equal bytes.
var docxEpoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

func writeParagraph(w *bytes.Buffer, style, text string) {
	fmt.Fprintf(w, `<w:p><w:pPr><w:pStyle w:val="%s"/></w:pPr>`, style)
	writeRun(w, text)
	w.WriteString(`</w:p>`)
}

func writeRun(w *bytes.Buffer, text string) {
	if text == "" {
		return
	}
	w.WriteString(`<w:r><w:t xml:space="preserve">`)
	escape(w, text)
	w.WriteString(`</w:t></w:r>`)
}

func writeTable(w *bytes.Buffer, g *grid.Grid) {
	v := grid.NewView(g)
	cols := g.ColumnCount()

	fmt.Fprintf(w, `<w:tbl><w:tblPr><w:tblStyle w:val="%s"/><w:tblW w:w="5000" w:type="pct"/></w:tblPr><w:tblGrid>`, styleTable)
	for c := 0; c < cols; c++ {
		w.WriteString(`<w:gridCol/>`)
	}
	w.WriteString(`</w:tblGrid>`)

	for r, row := range v.Rows() {
		w.WriteString(`<w:tr>`)
		header := r < g.HeaderRowCount()
		if header {
			w.WriteString(`<w:trPr><w:tblHeader/></w:trPr>`)
		}
		for c := 0; c < cols; c++ {
			span, merged := v.SpanAt(r, c)
			if merged && c != span.Start.Col {
				continue
			}
			w.WriteString(`<w:tc><w:tcPr>`)
			if merged {
				if span.Width() > 1 {
					fmt.Fprintf(w, `<w:gridSpan w:val="%d"/>`, span.Width())
				}
				if span.Height() > 1 {
					if r == span.Start.Row {
						w.WriteString(`<w:vMerge w:val="restart"/>`)
					} else {
						w.WriteString(`<w:vMerge/>`)
					}
				}
			}
			w.WriteString(`<w:vAlign w:val="center"/></w:tcPr><w:p>`)
			if header || c > 0 {
				w.WriteString(`<w:pPr><w:jc w:val="center"/></w:pPr>`)
			}
			if header {
				if row[c] != "" {
					w.WriteString(`<w:r><w:rPr><w:b/></w:rPr><w:t xml:space="preserve">`)
					escape(w, row[c])
					w.WriteString(`</w:t></w:r>`)
				}
			} else {
				writeRun(w, row[c])
			}
			w.WriteString(`</w:p></w:tc>`)
		}
		w.WriteString(`</w:tr>`)
	}
	w.WriteString(`</w:tbl>`)
}

func escape(w io.Writer, s string) {
	_ = xml.EscapeText(w, []byte(s))
}

func docxDocument(body []byte) []byte {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	buf.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	buf.Write(body)
	buf.WriteString(`<w:sectPr><w:pgSz w:w="11906" w:h="16838"/>` +
		`<w:pgMar w:top="1417" w:right="1417" w:bottom="1134" w:left="1417" w:header="708" w:footer="708" w:gutter="0"/>` +
		`</w:sectPr></w:body></w:document>`)
	return buf.Bytes()
}

func docxCore(r *report.Report) []byte {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	buf.WriteString(`<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties"` +
		` xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/"` +
		` xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">`)
	buf.WriteString(`<dc:title>`)
	escape(&buf, r.Title)
	buf.WriteString(`</dc:title>`)
	fmt.Fprintf(&buf, `<dc:identifier>%s</dc:identifier>`, r.ID)
	buf.WriteString(`<dc:creator>tlfs</dc:creator></cp:coreProperties>`)
	return buf.Bytes()
}

const docxContentTypes = xml.Header + `<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
	`<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>` +
	`<Override PartName="/docProps/core.xml" ContentType="application/vnd.openxmlformats-package.core-properties+xml"/>` +
	`</Types>`

const docxRels = xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties" Target="docProps/core.xml"/>` +
	`</Relationships>`

const docxStyles = xml.Header + `<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
	`<w:docDefaults><w:rPrDefault><w:rPr><w:rFonts w:ascii="Calibri" w:hAnsi="Calibri"/><w:sz w:val="20"/></w:rPr></w:rPrDefault></w:docDefaults>` +
	`<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Title"><w:name w:val="Title"/><w:basedOn w:val="Normal"/>` +
	`<w:pPr><w:spacing w:after="240"/></w:pPr><w:rPr><w:b/><w:sz w:val="36"/></w:rPr></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Heading1"><w:name w:val="heading 1"/><w:basedOn w:val="Normal"/>` +
	`<w:pPr><w:keepNext/><w:spacing w:before="240" w:after="120"/><w:outlineLvl w:val="0"/></w:pPr><w:rPr><w:b/><w:sz w:val="28"/></w:rPr></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Caption"><w:name w:val="caption"/><w:basedOn w:val="Normal"/>` +
	`<w:pPr><w:keepNext/><w:spacing w:before="120" w:after="60"/></w:pPr><w:rPr><w:b/></w:rPr></w:style>` +
	`<w:style w:type="table" w:styleId="TableGrid"><w:name w:val="Table Grid"/><w:tblPr><w:tblBorders>` +
	`<w:top w:val="single" w:sz="4" w:space="0" w:color="000000"/><w:left w:val="single" w:sz="4" w:space="0" w:color="000000"/>` +
	`<w:bottom w:val="single" w:sz="4" w:space="0" w:color="000000"/><w:right w:val="single" w:sz="4" w:space="0" w:color="000000"/>` +
	`<w:insideH w:val="single" w:sz="4" w:space="0" w:color="000000"/><w:insideV w:val="single" w:sz="4" w:space="0" w:color="000000"/>` +
	`</w:tblBorders></w:tblPr></w:style>` +
	`</w:styles>`
