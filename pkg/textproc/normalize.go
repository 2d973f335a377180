// Package textproc provides the text preparation steps shared by the
// indexing pipeline: HTML stripping and fixed-window chunking.
package textproc

import (
	"strings"

	"golang.org/x/net/html"
)

// Normalize strips markup from HTML content into plain text: script and
// style elements are dropped entirely, all other tags are removed, runs of
// whitespace collapse to single spaces, and the result is trimmed.
//
// Normalize is total: the tokenizer never fails on malformed markup, it
// extracts whatever text it can.
func Normalize(rawHTML string) string {
	z := html.NewTokenizer(strings.NewReader(rawHTML))

	var b strings.Builder
	skipDepth := 0

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			// io.EOF or malformed tail; either way we are done.
			break
		}

		switch tt {
		case html.StartTagToken:
			name, _ := z.TagName()
			if isNonContent(string(name)) {
				skipDepth++
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if isNonContent(string(name)) && skipDepth > 0 {
				skipDepth--
			}
		case html.TextToken:
			if skipDepth == 0 {
				b.Write(z.Text())
				b.WriteByte(' ')
			}
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// isNonContent reports whether a tag's text content should be dropped.
func isNonContent(tag string) bool {
	return tag == "script" || tag == "style"
}
