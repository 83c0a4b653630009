package entities

import "fmt"

// Platform selects which destination, calendar table and prompt variant a
// draft is produced for. The set is closed: adding a platform means adding
// a calendar table and a prompt template, not just a new string.
type Platform string

const (
	// PlatformTelegram is the primary platform, confirmed drafts are
	// published to the destination channel
	PlatformTelegram Platform = "tg"

	// PlatformInstagram drafts are prepared for manual reposting
	PlatformInstagram Platform = "inst"
)

func ParsePlatform(s string) (Platform, error) {
	switch p := Platform(s); p {
	case PlatformTelegram, PlatformInstagram:
		return p, nil
	}

	return "", fmt.Errorf("unknown platform: %q", s)
}

// Header returns the draft header line rendered above the generated text.
func (p Platform) Header(day int) string {
	if p == PlatformInstagram {
		return fmt.Sprintf("📷 INSTAGRAM (День %d)", day)
	}

	return fmt.Sprintf("📸 TELEGRAM (День %d)", day)
}

// PublishesToChannel reports whether confirmed drafts of this platform are
// forwarded to the destination channel.
func (p Platform) PublishesToChannel() bool {
	return p == PlatformTelegram
}
