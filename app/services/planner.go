package services

import (
	"context"
	"fmt"

	e "nuclight.org/content-planner-bot/pkg/entities"
	"nuclight.org/content-planner-bot/pkg/logger"
)

// Planner joins the calendar, the photo provider and the copywriter into
// admin-facing drafts, and re-runs single steps when the admin asks for
// another take. It owns no state: a draft lives entirely in the chat
// message that displays it.
type Planner struct {
	// Log is a logger
	Log logger.Logger

	// Calendar is the content plan store
	Calendar CalendarStore

	// Photos is the stock photo provider
	Photos PhotoProvider

	// Writer is the copy generator
	Writer Copywriter
}

// PrepareDraft builds a complete draft for the given calendar day. The
// calendar is consulted first so an empty day costs nothing; copy
// generation runs last and aborts the draft on failure, a photo-only post
// must never reach the admin.
func (p *Planner) PrepareDraft(ctx context.Context, platform e.Platform, day int) (e.Draft, error) {
	entry, err := p.Calendar.Lookup(ctx, platform, day)
	if err != nil {
		return e.Draft{}, fmt.Errorf("looking up calendar day %d: %w", day, err)
	}

	photoURL := p.Photos.RandomPhoto(ctx, entry.PhotoKeywords)

	text, err := p.Writer.Generate(ctx, entry.Topic, entry.Content, platform)
	if err != nil {
		return e.Draft{}, fmt.Errorf("generating copy: %w", err)
	}

	p.Log.Info("draft prepared", "platform", platform, "day", day, "topic", entry.Topic)

	return e.Draft{
		Platform: platform,
		Day:      day,
		PhotoURL: photoURL,
		Caption:  e.ComposeCaption(platform, day, text),
	}, nil
}

// RegeneratePhoto fetches a fresh photo for the day's keywords. The
// caption is untouched, only the image reference changes.
func (p *Planner) RegeneratePhoto(ctx context.Context, platform e.Platform, day int) (string, error) {
	entry, err := p.Calendar.Lookup(ctx, platform, day)
	if err != nil {
		return "", fmt.Errorf("looking up calendar day %d: %w", day, err)
	}

	return p.Photos.RandomPhoto(ctx, entry.PhotoKeywords), nil
}

// RegenerateText produces a fresh caption for the day, re-truncated
// independently of previous takes. The photo is untouched.
func (p *Planner) RegenerateText(ctx context.Context, platform e.Platform, day int) (string, error) {
	entry, err := p.Calendar.Lookup(ctx, platform, day)
	if err != nil {
		return "", fmt.Errorf("looking up calendar day %d: %w", day, err)
	}

	text, err := p.Writer.Generate(ctx, entry.Topic, entry.Content, platform)
	if err != nil {
		return "", fmt.Errorf("generating copy: %w", err)
	}

	return e.ComposeCaption(platform, day, text), nil
}

type CalendarStore interface {
	Lookup(ctx context.Context, platform e.Platform, day int) (e.CalendarEntry, error)
}

type PhotoProvider interface {
	RandomPhoto(ctx context.Context, keywords string) string
}

type Copywriter interface {
	Generate(ctx context.Context, topic, details string, platform e.Platform) (string, error)
}
