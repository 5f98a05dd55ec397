package model

import (
	"crypto/sha256"
	"encoding/hex"
	"unicode/utf8"
)

// MaxTextExcerpt is the maximum number of characters of extracted page text
// included in rendered reports. Longer text is stored in full on the report
// and truncated only at render time.
const MaxTextExcerpt = 6000

// PageContent holds the fetched page and the content extracted from it.
// A nil PageContent on the report means the fetch failed or was skipped;
// the report section then renders as unavailable.
type PageContent struct {
	// StatusCode is the HTTP response status code.
	StatusCode int `json:"status_code"`

	// ContentType is the MIME type from the Content-Type header.
	ContentType string `json:"content_type"`

	// Title is the page title from the <title> tag, if any.
	Title string `json:"title,omitempty"`

	// Links contains all anchor hrefs in document order, resolved against
	// the page URL. Duplicates are preserved.
	Links []string `json:"links,omitempty"`

	// Text is the flattened visible text content with scripts and styles
	// excluded.
	Text string `json:"text,omitempty"`

	// Hash is the SHA-256 hash of the raw response body, used for change
	// detection between historical scans.
	Hash string `json:"hash,omitempty"`
}

// HashBody returns the hex-encoded SHA-256 hash of a response body.
func HashBody(body []byte) string {
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}

// TextExcerpt returns the page text truncated to at most MaxTextExcerpt
// bytes. The cut never splits a multi-byte rune, so the excerpt is always
// valid UTF-8.
func (p *PageContent) TextExcerpt() string {
	if len(p.Text) <= MaxTextExcerpt {
		return p.Text
	}
	cut := MaxTextExcerpt
	for cut > 0 && !utf8.RuneStart(p.Text[cut]) {
		cut--
	}
	return p.Text[:cut]
}
