package xmltree

import "testing"

const wpNS = "http://example.com/wordprocessing"

const sampleDoc = `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://example.com/wordprocessing" xmlns:x="http://example.com/other">
  <w:body>
    <w:p w:align="center">
      <w:r><w:t>first</w:t></w:r>
      <x:note>ignored</x:note>
    </w:p>
    <w:p>
      <w:r><w:t>second</w:t></w:r>
    </w:p>
  </w:body>
</w:document>`

// TestParse verifies parsing and root element access.
func TestParse(t *testing.T) {
	doc, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	root := doc.Root()
	if root == nil {
		t.Fatal("Root returned nil")
	}
	if root.Name() != "document" {
		t.Errorf("Name = %q, want %q", root.Name(), "document")
	}
	if root.Namespace() != wpNS {
		t.Errorf("Namespace = %q, want %q", root.Namespace(), wpNS)
	}
}

// TestParseMalformed verifies that bad XML is an error.
func TestParseMalformed(t *testing.T) {
	_, err := Parse([]byte("<unclosed><nested>"))
	if err == nil {
		t.Fatal("Parse should fail on malformed XML")
	}
}

// TestChildNamespaceQualified verifies that child lookup matches by
// namespace URI, not prefix.
func TestChildNamespaceQualified(t *testing.T) {
	doc, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	body := doc.Root().Child(wpNS, "body")
	if body == nil {
		t.Fatal("body not found")
	}

	// Lookup with the wrong namespace must return absent, not error.
	if got := doc.Root().Child("http://example.com/other", "body"); got != nil {
		t.Error("body lookup in wrong namespace should return nil")
	}
}

// TestChildrenNS verifies ordered, namespace-filtered child selection.
func TestChildrenNS(t *testing.T) {
	doc, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	body := doc.Root().Child(wpNS, "body")
	paras := body.ChildrenNS(wpNS, "p")
	if len(paras) != 2 {
		t.Fatalf("got %d paragraphs, want 2", len(paras))
	}
	if paras[0].Child(wpNS, "r") == nil {
		t.Error("first paragraph lost its run content")
	}
	if got := paras[0].Child(wpNS, "r").Text(); got != "first" {
		t.Errorf("run text = %q, want %q", got, "first")
	}

	// Foreign-namespace children are excluded from a qualified selection
	// but visible in the unqualified one.
	if notes := paras[0].ChildrenNS(wpNS, "note"); len(notes) != 0 {
		t.Errorf("foreign note should not match wordprocessing namespace, got %d", len(notes))
	}
	if all := paras[0].Children(); len(all) != 2 {
		t.Errorf("Children() = %d nodes, want 2", len(all))
	}
}

// TestAttrNamespaceQualified verifies attribute lookup semantics.
func TestAttrNamespaceQualified(t *testing.T) {
	doc, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	para := doc.Root().Child(wpNS, "body").ChildrenNS(wpNS, "p")[0]

	val, ok := para.Attr(wpNS, "align")
	if !ok {
		t.Fatal("align attribute not found")
	}
	if val != "center" {
		t.Errorf("align = %q, want %q", val, "center")
	}

	if _, ok := para.Attr(wpNS, "missing"); ok {
		t.Error("missing attribute should report absent")
	}
}

// TestAttrUnprefixedFallback verifies that unprefixed attributes (which
// carry no namespace) still match a qualified lookup by local name.
func TestAttrUnprefixedFallback(t *testing.T) {
	src := `<w:p xmlns:w="` + wpNS + `" align="right"/>`
	doc, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	val, ok := doc.Root().Attr(wpNS, "align")
	if !ok || val != "right" {
		t.Errorf("Attr = %q, %v; want %q, true", val, ok, "right")
	}
}

// TestXPath verifies query execution and error reporting.
func TestXPath(t *testing.T) {
	doc, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	nodes, err := doc.XPath("//*[local-name()='p']")
	if err != nil {
		t.Fatalf("XPath failed: %v", err)
	}
	if len(nodes) != 2 {
		t.Errorf("got %d nodes, want 2", len(nodes))
	}

	first, err := doc.XPathFirst("//*[local-name()='body']")
	if err != nil {
		t.Fatalf("XPathFirst failed: %v", err)
	}
	if first == nil || first.Name() != "body" {
		t.Errorf("XPathFirst returned %v, want body element", first)
	}

	none, err := doc.XPathFirst("//*[local-name()='absent']")
	if err != nil {
		t.Fatalf("XPathFirst failed: %v", err)
	}
	if none != nil {
		t.Error("XPathFirst should return nil for no match")
	}

	if _, err := doc.XPath("//[broken"); err == nil {
		t.Error("invalid xpath should return an error")
	}
}
