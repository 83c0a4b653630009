package entities

import "strings"

// CaptionLimit is the transport's maximum caption length for photo
// messages, in runes.
const CaptionLimit = 1024

const (
	truncationMark  = "…"
	publishedBanner = "✅ ОПУБЛІКОВАНО"
)

// ComposeCaption renders the full draft caption: platform header, blank
// line, generated text. The result always fits CaptionLimit.
func ComposeCaption(platform Platform, day int, text string) string {
	return TruncateCaption(platform.Header(day) + "\n\n" + text)
}

// TruncateCaption cuts the caption to CaptionLimit runes, marking the cut.
func TruncateCaption(caption string) string {
	runes := []rune(caption)
	if len(runes) <= CaptionLimit {
		return caption
	}

	return string(runes[:CaptionLimit-1]) + truncationMark
}

// StripDraftHeader removes the leading header block, everything up to the
// first blank line, leaving the publishable text.
func StripDraftHeader(caption string) string {
	if _, rest, found := strings.Cut(caption, "\n\n"); found {
		return rest
	}

	return caption
}

// PublishedCaption renders the caption a draft message gets after its
// content went to the channel.
func PublishedCaption(text string) string {
	return TruncateCaption(publishedBanner + "\n\n" + text)
}

// IsPublished reports whether a draft message already carries the
// published banner. Buttons stay attached after publication, so handlers
// check this before acting.
func IsPublished(caption string) bool {
	return strings.HasPrefix(caption, publishedBanner)
}
