package parser

import (
	"regexp"
	"sort"
)

var (
	// urlRegex matches simple "<scheme>://<non-space>" URLs
	urlRegex = regexp.MustCompile(`[A-Za-z0-9+\-]+://\S+`)

	// wordRegex matches runs of word characters, Unicode letters included
	wordRegex = regexp.MustCompile(`[\p{L}\p{N}_]+`)
)

// SplitDescription extracts the significant words of a task description.
// URLs are pulled out whole before splitting, so "http://example.com?q=x" stays
// one token. The result is the sorted words followed by the URLs in the order
// they appear. Duplicate words are kept.
func SplitDescription(text string) []string {
	urls := urlRegex.FindAllString(text, -1)
	if len(urls) > 0 {
		text = urlRegex.ReplaceAllString(text, " ")
	}

	words := wordRegex.FindAllString(text, -1)
	sort.Strings(words)

	if len(words) == 0 && len(urls) == 0 {
		return nil
	}
	return append(words, urls...)
}
