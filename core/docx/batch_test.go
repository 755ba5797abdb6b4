package docx

import (
	"archive/zip"
	"bytes"
	"errors"
	"testing"
)

// TestConvertAllIsolatesFailures verifies the second of three packages
// failing does not affect the first and third, and that the failure is
// recorded with its kind.
func TestConvertAllIsolatesFailures(t *testing.T) {
	good1 := makePackage(t, wrapBody(`<w:p><w:r><w:t>one</w:t></w:r></w:p>`))
	good3 := makePackage(t, wrapBody(`<w:p><w:r><w:t>three</w:t></w:r></w:p>`))

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, _ := zw.Create("word/styles.xml")
	w.Write([]byte("<styles/>"))
	zw.Close()
	noPart := buf.Bytes()

	packages := []Package{
		{Name: "first.docx", Data: good1},
		{Name: "second.docx", Data: noPart},
		{Name: "third.docx", Data: good3},
	}

	results, failures := ConvertAll(packages, DefaultOptions())

	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Name != "first.docx" || results[1].Name != "third.docx" {
		t.Errorf("result order = %s, %s; want first.docx, third.docx", results[0].Name, results[1].Name)
	}
	if got := results[0].Doc.HTML(); got != "<p>one</p>" {
		t.Errorf("first document = %q, want %q", got, "<p>one</p>")
	}

	if len(failures) != 1 {
		t.Fatalf("got %d failures, want 1", len(failures))
	}
	if failures[0].Name != "second.docx" {
		t.Errorf("failure name = %q, want %q", failures[0].Name, "second.docx")
	}
	if failures[0].Kind() != KindMissingDocumentPart {
		t.Errorf("failure kind = %q, want %q", failures[0].Kind(), KindMissingDocumentPart)
	}
}

// TestConvertAllTitles verifies titles derive from display names by
// trimming the extension.
func TestConvertAllTitles(t *testing.T) {
	pkg := makePackage(t, wrapBody(`<w:p><w:r><w:t>x</w:t></w:r></w:p>`))

	results, failures := ConvertAll([]Package{{Name: "My Chapter.docx", Data: pkg}}, DefaultOptions())
	if len(failures) != 0 {
		t.Fatalf("unexpected failures: %v", failures)
	}
	if results[0].Title != "My Chapter" {
		t.Errorf("Title = %q, want %q", results[0].Title, "My Chapter")
	}
}

// TestTitleFromName verifies extension trimming edge cases.
func TestTitleFromName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"chapter.docx", "chapter"},
		{"no-extension", "no-extension"},
		{"dots.in.name.docx", "dots.in.name"},
	}

	for _, tt := range tests {
		if got := TitleFromName(tt.name); got != tt.want {
			t.Errorf("TitleFromName(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

// TestConvertAllHashesContent verifies each result carries a stable
// content hash of the package bytes.
func TestConvertAllHashesContent(t *testing.T) {
	pkg := makePackage(t, wrapBody(`<w:p><w:r><w:t>x</w:t></w:r></w:p>`))

	first, _ := ConvertAll([]Package{{Name: "a.docx", Data: pkg}}, DefaultOptions())
	second, _ := ConvertAll([]Package{{Name: "b.docx", Data: pkg}}, DefaultOptions())

	if first[0].Hash == "" {
		t.Fatal("result hash is empty")
	}
	if first[0].Hash != second[0].Hash {
		t.Errorf("same bytes produced different hashes: %s vs %s", first[0].Hash, second[0].Hash)
	}
}

// TestConvertAllErrorsWrapName verifies failures carry the package name
// and unwrap to the sentinel.
func TestConvertAllErrorsWrapName(t *testing.T) {
	_, failures := ConvertAll([]Package{{Name: "bad.docx", Data: []byte("junk")}}, DefaultOptions())
	if len(failures) != 1 {
		t.Fatalf("got %d failures, want 1", len(failures))
	}

	var convErr *ConvertError
	if !errors.As(failures[0].Err, &convErr) {
		t.Fatalf("failure error is %T, want *ConvertError", failures[0].Err)
	}
	if convErr.Name != "bad.docx" {
		t.Errorf("ConvertError.Name = %q, want %q", convErr.Name, "bad.docx")
	}
	if !errors.Is(failures[0].Err, ErrCorruptArchive) {
		t.Errorf("failure should unwrap to ErrCorruptArchive, got %v", failures[0].Err)
	}
}

// TestConvertAllEmptyInput verifies an empty batch yields empty outputs.
func TestConvertAllEmptyInput(t *testing.T) {
	results, failures := ConvertAll(nil, DefaultOptions())
	if len(results) != 0 || len(failures) != 0 {
		t.Errorf("empty batch produced %d results, %d failures", len(results), len(failures))
	}
}
