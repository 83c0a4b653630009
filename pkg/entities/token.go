package entities

import (
	"fmt"
	"strconv"
	"strings"
)

// ActionToken is the payload carried in an inline draft button. There is
// no session store: the token is the only state that survives between
// sending a draft and a later button press, so it has to encode everything
// needed to redo a step.
type ActionToken struct {
	Kind     ActionKind
	Platform Platform
	Day      int
}

type ActionKind string

const (
	// ActionKindPublish forwards the draft to the destination channel
	ActionKindPublish ActionKind = "confirm_publish"

	// ActionKindPhoto replaces the draft photo, keeping the caption
	ActionKindPhoto ActionKind = "photo"

	// ActionKindText regenerates the caption text, keeping the photo
	ActionKindText ActionKind = "text"
)

// Encode renders the token as callback data. Publish targets the message
// the button sits on, so it carries no platform or day.
func (t ActionToken) Encode() string {
	if t.Kind == ActionKindPublish {
		return string(ActionKindPublish)
	}

	return fmt.Sprintf("%s_%s_%d", t.Kind, t.Platform, t.Day)
}

// DecodeActionToken parses callback data produced by Encode. Unknown
// payloads are an error so stray callbacks get reported, not dispatched.
func DecodeActionToken(data string) (ActionToken, error) {
	if data == string(ActionKindPublish) {
		return ActionToken{Kind: ActionKindPublish}, nil
	}

	parts := strings.SplitN(data, "_", 3)
	if len(parts) != 3 {
		return ActionToken{}, fmt.Errorf("malformed callback data: %q", data)
	}

	kind := ActionKind(parts[0])
	if kind != ActionKindPhoto && kind != ActionKindText {
		return ActionToken{}, fmt.Errorf("unknown action kind: %q", parts[0])
	}

	platform, err := ParsePlatform(parts[1])
	if err != nil {
		return ActionToken{}, fmt.Errorf("decoding callback data: %w", err)
	}

	day, err := strconv.Atoi(parts[2])
	if err != nil || day < 1 || day > 31 {
		return ActionToken{}, fmt.Errorf("bad day in callback data: %q", parts[2])
	}

	return ActionToken{Kind: kind, Platform: platform, Day: day}, nil
}
