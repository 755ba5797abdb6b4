package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"

	"github.com/FocuswithJustin/Chapterhouse/core/encoding"
)

// Build constructs a minimal word-processing package from already-plain
// paragraphs. This is the reverse direction of Convert used when a chapter
// is exported; it carries no formatting beyond a bold title paragraph, so
// nothing here needs the parsing pipeline. The result is a complete,
// openable package: content types, package relationships, and the main
// document part.
func Build(title string, paragraphs []string, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	if err := addContentTypes(zw, opts); err != nil {
		return nil, err
	}
	if err := addRelationships(zw, opts); err != nil {
		return nil, err
	}
	if err := addDocument(zw, title, paragraphs, opts); err != nil {
		return nil, err
	}

	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func addContentTypes(zw *zip.Writer, opts Options) error {
	w, err := zw.Create("[Content_Types].xml")
	if err != nil {
		return err
	}

	types := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/` + opts.DocumentPath + `" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

	_, err = w.Write([]byte(types))
	return err
}

func addRelationships(zw *zip.Writer, opts Options) error {
	w, err := zw.Create("_rels/.rels")
	if err != nil {
		return err
	}

	rels := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="` + opts.DocumentPath + `"/>
</Relationships>`

	_, err = w.Write([]byte(rels))
	return err
}

func addDocument(zw *zip.Writer, title string, paragraphs []string, opts Options) error {
	w, err := zw.Create(opts.DocumentPath)
	if err != nil {
		return err
	}

	var body strings.Builder
	if title != "" {
		body.WriteString(`    <w:p><w:pPr><w:pStyle w:val="Heading1"/></w:pPr><w:r><w:rPr><w:b/></w:rPr><w:t xml:space="preserve">`)
		body.WriteString(encoding.EscapeXMLText(title))
		body.WriteString("</w:t></w:r></w:p>\n")
	}
	for _, para := range paragraphs {
		if para == "" {
			body.WriteString("    <w:p/>\n")
			continue
		}
		body.WriteString(`    <w:p><w:r><w:t xml:space="preserve">`)
		body.WriteString(encoding.EscapeXMLText(para))
		body.WriteString("</w:t></w:r></w:p>\n")
	}

	document := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="%s">
  <w:body>
%s  </w:body>
</w:document>`, encoding.EscapeXMLAttr(opts.Namespace), body.String())

	_, err = w.Write([]byte(document))
	return err
}
