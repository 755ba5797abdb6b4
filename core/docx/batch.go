package docx

import (
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/zeebo/blake3"

	"github.com/FocuswithJustin/Chapterhouse/core/richtext"
)

// Package is one uploaded package: a display name and its raw bytes.
type Package struct {
	Name string
	Data []byte
}

// Result is a successfully converted package.
type Result struct {
	Name  string             // Originating package display name
	Title string             // Display name with its extension removed
	Hash  string             // BLAKE3 content hash of the package bytes
	Doc   *richtext.Document // Converted output document
}

// Failure records one package that could not be converted.
type Failure struct {
	Name string
	Err  error
}

// Kind returns the reportable classification of the failure.
func (f Failure) Kind() ErrorKind {
	return KindOf(f.Err)
}

// ConvertAll applies the conversion pipeline independently to each
// package. A failure in one package is recorded against that package's
// name and does not abort the rest; results and failures each preserve
// the relative input order. Panics inside a single conversion are
// recovered at the package boundary and recorded like any other failure.
func ConvertAll(packages []Package, opts Options) ([]Result, []Failure) {
	results := make([]Result, 0, len(packages))
	var failures []Failure

	for _, pkg := range packages {
		doc, err := convertOne(pkg, opts)
		if err != nil {
			failures = append(failures, Failure{Name: pkg.Name, Err: err})
			continue
		}

		sum := blake3.Sum256(pkg.Data)
		results = append(results, Result{
			Name:  pkg.Name,
			Title: TitleFromName(pkg.Name),
			Hash:  hex.EncodeToString(sum[:]),
			Doc:   doc,
		})
	}

	return results, failures
}

func convertOne(pkg Package, opts Options) (doc *richtext.Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = &ConvertError{Name: pkg.Name, Err: fmt.Errorf("conversion panic: %v", r)}
		}
	}()

	doc, err = Convert(pkg.Data, opts)
	if err != nil {
		return nil, &ConvertError{Name: pkg.Name, Err: err}
	}
	return doc, nil
}

// TitleFromName derives a chapter title from a package display name by
// trimming the extension suffix.
func TitleFromName(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
