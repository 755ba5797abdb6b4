// Package docx converts zipped Office Open XML word-processing packages
// into the rich-text document model. It reconstructs headings, alignment,
// first-line indent, emphasis, tabs, and explicit line breaks; every other
// feature of the format (tables, images, footnotes, comments, tracked
// changes) is dropped silently.
package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"

	"github.com/FocuswithJustin/Chapterhouse/core/richtext"
	"github.com/FocuswithJustin/Chapterhouse/core/xmltree"
)

// Options configures a conversion call. The zero value is not usable;
// start from DefaultOptions. Passing configuration explicitly keeps the
// converter free of module-level state.
type Options struct {
	// DocumentPath is the archive entry holding the main document part.
	DocumentPath string
	// Namespace is the wordprocessingML namespace URI used to qualify
	// element and attribute lookups.
	Namespace string
}

// DefaultOptions returns the standard Office Open XML locations.
func DefaultOptions() Options {
	return Options{
		DocumentPath: "word/document.xml",
		Namespace:    "http://schemas.openxmlformats.org/wordprocessingml/2006/main",
	}
}

// ReadDocumentPart extracts the main document entry from package bytes.
// It returns ErrCorruptArchive when the bytes cannot be opened as a zip
// container and ErrMissingDocumentPart when the entry is absent.
func ReadDocumentPart(data []byte, opts Options) ([]byte, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptArchive, err)
	}

	for _, f := range r.File {
		if f.Name != opts.DocumentPath {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: opening %s: %v", ErrCorruptArchive, f.Name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: reading %s: %v", ErrCorruptArchive, f.Name, err)
		}
		return content, nil
	}

	return nil, fmt.Errorf("%w: no entry %s", ErrMissingDocumentPart, opts.DocumentPath)
}

// Convert runs the full pipeline on one package: open the archive, parse
// the document part, and assemble every paragraph in document order. The
// returned document contains exactly one block per paragraph node; a
// failing package contributes zero blocks, never a truncated document.
func Convert(data []byte, opts Options) (*richtext.Document, error) {
	content, err := ReadDocumentPart(data, opts)
	if err != nil {
		return nil, err
	}

	tree, err := xmltree.Parse(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedXML, err)
	}

	body, err := tree.XPathFirst(fmt.Sprintf("//*[local-name()='body' and namespace-uri()=%q]", opts.Namespace))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedXML, err)
	}

	doc := &richtext.Document{}
	if body == nil {
		return doc, nil
	}

	for _, para := range body.ChildrenNS(opts.Namespace, "p") {
		doc.Append(assembleParagraph(para, opts.Namespace))
	}
	return doc, nil
}
