// Package htmlsanitize cleans user-supplied rich text before it is
// rendered. Guides and descriptions accept a limited rich-text subset;
// embedded content markup (the iframe snippet some resources carry)
// goes through its own, much narrower policy.
package htmlsanitize

import (
	"html"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var richTextPolicy = buildRichTextPolicy()
var embedPolicy = buildEmbedPolicy()

func buildRichTextPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements("u", "s", "sub", "sup", "mark", "hr")
	p.AllowTables()
	p.AllowAttrs("class", "style").OnElements("table", "thead", "tbody", "tr", "th", "td")
	return p
}

func buildEmbedPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("div")
	p.AllowAttrs("class", "style").OnElements("div")
	p.AllowAttrs("src", "width", "height", "title", "style",
		"frameborder", "allow", "allowfullscreen").OnElements("iframe")
	p.AllowURLSchemes("https")
	p.RequireParseableURLs(true)
	return p
}

// Sanitize strips unsafe markup from rich text, keeping the formatting
// subset (headings, lists, tables, links, images, inline formatting).
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return richTextPolicy.Sanitize(s)
}

// SanitizeToHTML sanitizes and marks the result safe for templates.
func SanitizeToHTML(s string) template.HTML {
	return template.HTML(Sanitize(s))
}

// SanitizeEmbed cleans an embedded-content snippet, allowing only
// https iframes and wrapper divs. Everything else is stripped.
func SanitizeEmbed(s string) template.HTML {
	if s == "" {
		return ""
	}
	return template.HTML(embedPolicy.Sanitize(s))
}

// IsPlainText reports whether s contains no HTML tags.
func IsPlainText(s string) bool {
	return !(strings.Contains(s, "<") && strings.Contains(s, ">"))
}

// PlainTextToHTML escapes plain text and wraps it in a paragraph, with
// newlines turned into <br>.
func PlainTextToHTML(s string) string {
	if s == "" {
		return ""
	}
	escaped := html.EscapeString(s)
	escaped = strings.ReplaceAll(escaped, "\n", "<br>")
	return "<p>" + escaped + "</p>"
}

// PrepareForDisplay renders stored text for a template: plain text is
// escaped and paragraph-wrapped, HTML is sanitized.
func PrepareForDisplay(s string) template.HTML {
	if s == "" {
		return ""
	}
	if IsPlainText(s) {
		return template.HTML(PlainTextToHTML(s))
	}
	return SanitizeToHTML(s)
}
