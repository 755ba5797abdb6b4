// Package richtext defines the ordered block/inline document model produced
// by package conversion and consumed by the chapter store, along with its
// HTML serialization and the plain-text and markdown compilers.
package richtext

import (
	"strings"

	"github.com/FocuswithJustin/Chapterhouse/core/encoding"
)

// Alignment is a normalized block alignment value.
type Alignment string

// Normalized alignment values.
const (
	AlignLeft    Alignment = "left"
	AlignCenter  Alignment = "center"
	AlignRight   Alignment = "right"
	AlignJustify Alignment = "justify"
)

// Inline tokens used by converters building inline content.
const (
	// IndentToken renders a fixed first-line or tab indent.
	IndentToken = "&nbsp;&nbsp;&nbsp;&nbsp;"
	// BreakToken renders an explicit line break.
	BreakToken = "<br>"
)

// InlineKind distinguishes literal text from pre-built markup tokens.
type InlineKind int

const (
	// InlineText is literal text content; it is escaped exactly once,
	// when the document is serialized.
	InlineText InlineKind = iota
	// InlineMarkup is a markup token (tag or entity) emitted verbatim.
	InlineMarkup
)

// Inline is one piece of a block's inline content.
type Inline struct {
	Kind    InlineKind
	Content string
}

// Text builds a literal text piece.
func Text(s string) Inline {
	return Inline{Kind: InlineText, Content: s}
}

// Markup builds a verbatim markup piece.
func Markup(s string) Inline {
	return Inline{Kind: InlineMarkup, Content: s}
}

// BlockKind distinguishes headings from paragraphs.
type BlockKind int

const (
	// BlockParagraph is a regular paragraph block.
	BlockParagraph BlockKind = iota
	// BlockHeading is a heading block. Headings carry no alignment or
	// indent in the output model.
	BlockHeading
)

// Block is one output block: a heading or a paragraph with alignment.
type Block struct {
	Kind   BlockKind
	Align  Alignment
	Inline []Inline
}

// Heading builds a heading block.
func Heading(inline []Inline) Block {
	return Block{Kind: BlockHeading, Inline: inline}
}

// Paragraph builds a paragraph block with the given alignment.
func Paragraph(align Alignment, inline []Inline) Block {
	return Block{Kind: BlockParagraph, Align: align, Inline: inline}
}

// Document is the ordered sequence of blocks produced by a conversion.
// Blocks are never reordered or merged.
type Document struct {
	Blocks []Block
}

// Append adds a block to the end of the document.
func (d *Document) Append(b Block) {
	d.Blocks = append(d.Blocks, b)
}

// InlineHTML serializes inline pieces, escaping text pieces exactly once.
func InlineHTML(pieces []Inline) string {
	var sb strings.Builder
	for _, p := range pieces {
		if p.Kind == InlineText {
			sb.WriteString(encoding.EscapeHTML(p.Content))
		} else {
			sb.WriteString(p.Content)
		}
	}
	return sb.String()
}

// alignClass maps a normalized alignment to its paragraph class.
// Left alignment is the default and carries no class.
func alignClass(a Alignment) string {
	switch a {
	case AlignCenter:
		return "ql-align-center"
	case AlignRight:
		return "ql-align-right"
	case AlignJustify:
		return "ql-align-justify"
	default:
		return ""
	}
}

// HTML serializes a single block.
func (b Block) HTML() string {
	inner := InlineHTML(b.Inline)

	if b.Kind == BlockHeading {
		return "<h1>" + inner + "</h1>"
	}

	if inner == "" {
		inner = BreakToken
	}

	if class := alignClass(b.Align); class != "" {
		return `<p class="` + class + `">` + inner + "</p>"
	}
	return "<p>" + inner + "</p>"
}

// HTML serializes the document into one markup string, in block order.
func (d *Document) HTML() string {
	var sb strings.Builder
	for _, b := range d.Blocks {
		sb.WriteString(b.HTML())
	}
	return sb.String()
}
