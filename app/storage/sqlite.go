package storage

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	e "nuclight.org/content-planner-bot/pkg/entities"
	"nuclight.org/content-planner-bot/pkg/logger"
)

// planTables binds each platform to its calendar table. The binding is a
// closed map on purpose: table names never come from request data.
var planTables = map[e.Platform]string{
	e.PlatformTelegram:  "tg_plan",
	e.PlatformInstagram: "inst_plan",
}

const (
	connectAttempts = 3
	connectDelay    = 2 * time.Second
)

// Calendar reads the externally maintained content plan. A fresh
// connection is opened per call: the plan is edited from outside the bot
// between lookups and there is no load to justify pooling.
type Calendar struct {
	// Path is the sqlite database file path
	Path string

	// Log is a logger
	Log logger.Logger

	// RetryDelay overrides the pause between connection attempts
	RetryDelay time.Duration
}

// Lookup returns the calendar entry for the platform and day of month.
// A missing row is entities.ErrNoEntry, not a failure.
func (c *Calendar) Lookup(ctx context.Context, platform e.Platform, day int) (e.CalendarEntry, error) {
	if day < 1 || day > 31 {
		return e.CalendarEntry{}, fmt.Errorf("day %d out of range", day)
	}

	table, ok := planTables[platform]
	if !ok {
		return e.CalendarEntry{}, fmt.Errorf("unknown platform: %q", platform)
	}

	db, err := c.open(ctx)
	if err != nil {
		return e.CalendarEntry{}, fmt.Errorf("opening calendar database: %w", err)
	}
	defer func() { _ = db.Close() }()

	var entry e.CalendarEntry
	err = db.QueryRowContext(
		ctx,
		`SELECT topic, content, photo_keywords FROM `+table+` WHERE day_number = ?`,
		day,
	).Scan(&entry.Topic, &entry.Content, &entry.PhotoKeywords)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return e.CalendarEntry{}, e.ErrNoEntry
		}

		return e.CalendarEntry{}, fmt.Errorf("querying %s: %w", table, err)
	}

	return entry, nil
}

//go:embed init.sql
var initQuery string

// Init creates the plan tables if the database is empty. Rows are owned by
// the operator, the bot never writes them.
func (c *Calendar) Init(ctx context.Context) error {
	db, err := c.open(ctx)
	if err != nil {
		return fmt.Errorf("opening calendar database: %w", err)
	}
	defer func() { _ = db.Close() }()

	_, err = db.ExecContext(ctx, initQuery)
	return err
}

// open dials the database, pinging up to connectAttempts times before
// giving up. The retry blocks the calling handler: there is one in-flight
// operation at a time and nothing else to yield to.
func (c *Calendar) open(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", c.Path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite3 database: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		lastErr = db.PingContext(ctx)
		if lastErr == nil {
			return db, nil
		}

		c.Log.Warn("calendar database unreachable", "attempt", attempt, "error", lastErr)

		if attempt == connectAttempts {
			break
		}

		select {
		case <-ctx.Done():
			_ = db.Close()
			return nil, ctx.Err()
		case <-time.After(c.retryDelay()):
		}
	}

	_ = db.Close()

	return nil, fmt.Errorf("database unavailable after %d attempts: %w", connectAttempts, lastErr)
}

func (c *Calendar) retryDelay() time.Duration {
	if c.RetryDelay > 0 {
		return c.RetryDelay
	}

	return connectDelay
}
