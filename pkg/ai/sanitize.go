package ai

import (
	"regexp"
	"strings"
)

var tagPattern = regexp.MustCompile(`<[^>]*>`)

var emphasisReplacer = strings.NewReplacer(
	"**", "",
	"__", "",
	"*", "",
	"`", "",
	"~~", "",
)

// Sanitize strips markup from generated copy. Drafts are delivered without
// a parse mode: markdown emphasis and tags leaking out of the model used to
// break message delivery, so both are removed outright. Single underscores
// survive, hashtags contain them.
func Sanitize(text string) string {
	text = tagPattern.ReplaceAllString(text, "")
	text = emphasisReplacer.Replace(text)

	return strings.TrimSpace(text)
}
