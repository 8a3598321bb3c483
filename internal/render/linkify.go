package render

import (
	"html"
	"html/template"
	"net/url"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	urlPattern = regexp.MustCompile(`https?://[^\s]+`)

	// linkPolicy is the last line of defense on linkified text: only anchors
	// to absolute http(s) URLs and line breaks survive.
	linkPolicy = newLinkPolicy()
)

func newLinkPolicy() *bluemonday.Policy {
	policy := bluemonday.NewPolicy()
	policy.RequireParseableURLs(true)
	policy.AllowURLSchemes("http", "https")
	policy.AllowAttrs("href").OnElements("a")
	policy.AllowAttrs("target").Matching(regexp.MustCompile(`^_blank$`)).OnElements("a")
	policy.AllowAttrs("rel").Matching(regexp.MustCompile(`^noopener noreferrer$`)).OnElements("a")
	policy.AllowElements("br")
	return policy
}

// Linkify escapes text, turns bare http(s) URLs into anchors opening in a new
// tab and newlines into <br>. The result is safe to embed in a page.
func Linkify(text string) template.HTML {
	if text == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(text) + 64)

	last := 0
	for _, loc := range urlPattern.FindAllStringIndex(text, -1) {
		writeText(&b, text[last:loc[0]])
		link := html.EscapeString(text[loc[0]:loc[1]])
		b.WriteString(`<a href="`)
		b.WriteString(link)
		b.WriteString(`" target="_blank" rel="noopener noreferrer">`)
		b.WriteString(link)
		b.WriteString(`</a>`)
		last = loc[1]
	}
	writeText(&b, text[last:])

	return template.HTML(linkPolicy.Sanitize(b.String()))
}

func writeText(b *strings.Builder, s string) {
	if s == "" {
		return
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if i > 0 {
			b.WriteString("<br>")
		}
		b.WriteString(html.EscapeString(line))
	}
}

// IsWebURL reports whether s is an absolute http(s) URL with a host.
func IsWebURL(s string) bool {
	if s == "" {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
