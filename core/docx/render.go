package docx

import (
	"strings"

	"github.com/FocuswithJustin/Chapterhouse/core/richtext"
	"github.com/FocuswithJustin/Chapterhouse/core/xmltree"
)

// emphasisWraps is the fixed nesting order for emphasis tags, outermost
// first. Adding an emphasis kind means adding one row here.
var emphasisWraps = []struct {
	on          func(RunProperties) bool
	open, close string
}{
	{func(p RunProperties) bool { return p.Bold }, "<strong>", "</strong>"},
	{func(p RunProperties) bool { return p.Italic }, "<em>", "</em>"},
	{func(p RunProperties) bool { return p.Underline }, "<u>", "</u>"},
	{func(p RunProperties) bool { return p.Strike }, "<s>", "</s>"},
}

// renderRun walks a run's children in document order and renders the
// recognized content into inline pieces: text verbatim, tab markers as the
// fixed indent token, break markers as hard line breaks. Unsupported
// content (drawings, fields, footnote references) is dropped without
// error. An empty run contributes nothing and is never wrapped, so no
// empty emphasis tags are emitted.
func renderRun(run *xmltree.Node, ns string) []richtext.Inline {
	var pieces []richtext.Inline

	for _, child := range run.Children() {
		if child.Namespace() != ns {
			continue
		}
		switch child.Name() {
		case "t":
			if text := child.Text(); text != "" {
				pieces = append(pieces, richtext.Text(text))
			}
		case "tab":
			pieces = append(pieces, richtext.Markup(richtext.IndentToken))
		case "br":
			pieces = append(pieces, richtext.Markup(richtext.BreakToken))
		}
	}

	if len(pieces) == 0 {
		return nil
	}

	props := runProperties(run, ns)
	for i := len(emphasisWraps) - 1; i >= 0; i-- {
		wrap := emphasisWraps[i]
		if !wrap.on(props) {
			continue
		}
		wrapped := make([]richtext.Inline, 0, len(pieces)+2)
		wrapped = append(wrapped, richtext.Markup(wrap.open))
		wrapped = append(wrapped, pieces...)
		wrapped = append(wrapped, richtext.Markup(wrap.close))
		pieces = wrapped
	}

	return pieces
}

// assembleParagraph renders a paragraph node into exactly one output
// block. Headings ignore alignment and indent. A paragraph whose inline
// content ends up empty serializes as a visible blank line rather than
// collapsing.
func assembleParagraph(para *xmltree.Node, ns string) richtext.Block {
	var inline []richtext.Inline
	for _, run := range para.ChildrenNS(ns, "r") {
		inline = append(inline, renderRun(run, ns)...)
	}

	props := paragraphProperties(para, ns)

	if props.Heading {
		return richtext.Heading(inline)
	}

	if props.FirstLineIndent > 0 && hasVisibleText(inline) {
		inline = append([]richtext.Inline{richtext.Markup(richtext.IndentToken)}, inline...)
	}

	return richtext.Paragraph(props.Alignment, inline)
}

// hasVisibleText reports whether any text piece carries non-whitespace
// content. Indent is suppressed on blank paragraphs.
func hasVisibleText(pieces []richtext.Inline) bool {
	for _, p := range pieces {
		if p.Kind == richtext.InlineText && strings.TrimSpace(p.Content) != "" {
			return true
		}
	}
	return false
}
