package docx

import (
	"strconv"
	"strings"

	"github.com/FocuswithJustin/Chapterhouse/core/richtext"
	"github.com/FocuswithJustin/Chapterhouse/core/xmltree"
)

// ParagraphProperties is the normalized property set derived once per
// paragraph node.
type ParagraphProperties struct {
	Alignment       richtext.Alignment
	FirstLineIndent int // units from the source; only > 0 matters downstream
	Heading         bool
}

// RunProperties holds the character emphasis flags derived once per run
// node. Every flag defaults to false when its element is absent.
type RunProperties struct {
	Bold      bool
	Italic    bool
	Underline bool
	Strike    bool
}

// parseAlignment normalizes a justification value. The format spells
// justified text "both"; both spellings map to justify. Anything else,
// including an absent value, is left.
func parseAlignment(val string) richtext.Alignment {
	switch val {
	case "center":
		return richtext.AlignCenter
	case "right":
		return richtext.AlignRight
	case "both", "justify":
		return richtext.AlignJustify
	default:
		return richtext.AlignLeft
	}
}

// paragraphProperties reads the w:pPr block of a paragraph node. A missing
// properties block yields all defaults: left, no indent, not a heading.
func paragraphProperties(para *xmltree.Node, ns string) ParagraphProperties {
	props := ParagraphProperties{Alignment: richtext.AlignLeft}

	pPr := para.Child(ns, "pPr")
	if pPr == nil {
		return props
	}

	if jc := pPr.Child(ns, "jc"); jc != nil {
		val, _ := jc.Attr(ns, "val")
		props.Alignment = parseAlignment(val)
	}

	if ind := pPr.Child(ns, "ind"); ind != nil {
		if val, ok := ind.Attr(ns, "firstLine"); ok {
			if n, err := strconv.Atoi(val); err == nil && n > 0 {
				props.FirstLineIndent = n
			}
		}
	}

	// Heading detection is a substring heuristic on the style name, so it
	// also fires for custom styles like "Heading Centered". It will match
	// any style whose name happens to contain "heading"; the editor treats
	// those as headings too.
	if style := pPr.Child(ns, "pStyle"); style != nil {
		if val, ok := style.Attr(ns, "val"); ok {
			props.Heading = strings.Contains(strings.ToLower(val), "heading")
		}
	}

	return props
}

// runProperties reads the w:rPr block of a run node. A flag is on when its
// element is present and the val attribute is not the "off" sentinel for
// that flag ("0" for bold/italic/strike, "none" for underline). Presence
// with no val attribute at all counts as on.
func runProperties(run *xmltree.Node, ns string) RunProperties {
	var props RunProperties

	rPr := run.Child(ns, "rPr")
	if rPr == nil {
		return props
	}

	props.Bold = flagOn(rPr, ns, "b", "0")
	props.Italic = flagOn(rPr, ns, "i", "0")
	props.Underline = flagOn(rPr, ns, "u", "none")
	props.Strike = flagOn(rPr, ns, "strike", "0")

	return props
}

func flagOn(rPr *xmltree.Node, ns, local, off string) bool {
	el := rPr.Child(ns, local)
	if el == nil {
		return false
	}
	val, ok := el.Attr(ns, "val")
	if !ok {
		return true
	}
	return val != off
}
