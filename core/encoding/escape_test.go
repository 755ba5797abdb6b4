package encoding

import "testing"

// TestEscapeXMLText verifies basic XML entity escaping.
func TestEscapeXMLText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "hello", "hello"},
		{"ampersand", "a & b", "a &amp; b"},
		{"angle brackets", "<tag>", "&lt;tag&gt;"},
		{"quote untouched", `say "hi"`, `say "hi"`},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EscapeXMLText(tt.input); got != tt.want {
				t.Errorf("EscapeXMLText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// TestEscapeXMLAttr verifies attribute escaping includes quotes.
func TestEscapeXMLAttr(t *testing.T) {
	got := EscapeXMLAttr(`a "quoted" <value>`)
	want := "a &quot;quoted&quot; &lt;value&gt;"
	if got != want {
		t.Errorf("EscapeXMLAttr = %q, want %q", got, want)
	}
}

// TestEscapeXML verifies the stdlib-backed escaper handles entities.
func TestEscapeXML(t *testing.T) {
	got := EscapeXML("a < b & c")
	if got != "a &lt; b &amp; c" {
		t.Errorf("EscapeXML = %q", got)
	}
}

// TestEscapeHTML verifies HTML content escaping.
func TestEscapeHTML(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"plain text", "plain text"},
		{"<script>", "&lt;script&gt;"},
		{`"double" & 'single'`, "&quot;double&quot; &amp; 'single'"},
	}

	for _, tt := range tests {
		if got := EscapeHTML(tt.input); got != tt.want {
			t.Errorf("EscapeHTML(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
