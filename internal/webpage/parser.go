package webpage

import (
	"bytes"
	"io"
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// Extraction contains the content extracted from one HTML page.
type Extraction struct {
	// Title is the text of the <title> tag, if any.
	Title string

	// Links contains anchor hrefs in document order, resolved against the
	// page URL. Duplicates are preserved; the original source ordering is
	// part of the report contract.
	Links []string

	// Text is the flattened visible text with script, style, and noscript
	// content excluded. Runs of whitespace are collapsed.
	Text string
}

// Parser extracts links and visible text from HTML content.
//
// Design decision: golang.org/x/net/html rather than regex because it
// correctly handles the malformed HTML common on the web and yields a
// proper DOM to walk.
type Parser struct {
	// baseURL resolves relative hrefs. May be nil, in which case hrefs
	// are kept as written.
	baseURL *url.URL
}

// NewParser creates a Parser that resolves relative links against baseURL.
func NewParser(baseURL string) (*Parser, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	return &Parser{baseURL: u}, nil
}

// Parse extracts links and text from HTML read from r.
// The contentType hint drives charset detection; pass "" when unknown.
// Empty input yields an empty Extraction, not an error.
func (p *Parser) Parse(r io.Reader, contentType string) (*Extraction, error) {
	decoded, err := charset.NewReader(r, contentType)
	if err != nil {
		return nil, err
	}

	doc, err := html.Parse(decoded)
	if err != nil {
		return nil, err
	}

	result := &Extraction{
		Links: make([]string, 0),
	}

	var text strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.ElementNode:
			switch n.Data {
			case "script", "style", "noscript":
				// Invisible content; skip the whole subtree.
				return
			case "title":
				if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
					result.Title = strings.TrimSpace(n.FirstChild.Data)
				}
			case "a":
				if href := getAttr(n, "href"); href != "" {
					result.Links = append(result.Links, p.resolveURL(href))
				}
			}
		case html.TextNode:
			text.WriteString(n.Data)
			text.WriteString(" ")
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)

	result.Text = collapseWhitespace(text.String())
	return result, nil
}

// ParseBytes is a convenience wrapper around Parse for in-memory bodies.
func (p *Parser) ParseBytes(body []byte, contentType string) (*Extraction, error) {
	return p.Parse(bytes.NewReader(body), contentType)
}

// resolveURL resolves an href against the base URL.
// Unparseable hrefs are returned as written.
func (p *Parser) resolveURL(href string) string {
	if p.baseURL == nil {
		return href
	}
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	return p.baseURL.ResolveReference(u).String()
}

// getAttr returns the value of the named attribute, or "".
func getAttr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return strings.TrimSpace(a.Val)
		}
	}
	return ""
}

// collapseWhitespace reduces runs of whitespace to single spaces.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
