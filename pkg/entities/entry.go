package entities

import "errors"

// ErrNoEntry is returned when the calendar has no row for the requested
// day. An empty day is a valid result, not a storage failure, and callers
// are expected to tell the administrator instead of failing.
var ErrNoEntry = errors.New("no calendar entry for this day")

// CalendarEntry is one row of the externally maintained content plan.
// The bot only ever reads it.
type CalendarEntry struct {
	Topic         string
	Content       string
	PhotoKeywords string
}

// Draft is one in-progress post shown to the administrator. It is never
// persisted: its identity lives in the chat message that displays it, and
// regeneration edits that message in place.
type Draft struct {
	Platform Platform
	Day      int
	PhotoURL string
	Caption  string
}
