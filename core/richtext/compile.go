package richtext

import (
	"html"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/microcosm-cc/bluemonday"
)

var (
	// stripPolicy removes every tag, leaving only text content.
	stripPolicy = bluemonday.StrictPolicy()

	// blockBreaks turns block and line-break boundaries into newlines
	// before tags are stripped, so paragraphs do not run together.
	blockBreaks = strings.NewReplacer(
		"<br></p>", "\n",
		"</p>", "\n",
		"</h1>", "\n",
		"<br>", "\n",
		"<br/>", "\n",
		"<br />", "\n",
	)

	mdConverter = converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
		),
	)
)

// PlainText compiles a chapter body (HTML markup) into plain text.
// Tags are stripped, block boundaries become newlines, and entities are
// decoded; non-breaking spaces become regular spaces.
func PlainText(markup string) string {
	text := blockBreaks.Replace(markup)
	text = stripPolicy.Sanitize(text)
	text = html.UnescapeString(text)
	text = strings.ReplaceAll(text, " ", " ")
	return strings.TrimRight(text, "\n")
}

// Markdown compiles a chapter body (HTML markup) into CommonMark.
func Markdown(markup string) (string, error) {
	return mdConverter.ConvertString(markup)
}

// PlainText compiles the document body into plain text.
func (d *Document) PlainText() string {
	return PlainText(d.HTML())
}

// Markdown compiles the document body into CommonMark.
func (d *Document) Markdown() (string, error) {
	return Markdown(d.HTML())
}
