package photos

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"nuclight.org/content-planner-bot/pkg/logger"
)

const endpoint = "https://api.unsplash.com/photos/random"

// FallbackURL is the photo used when Unsplash is unreachable or returns
// something unusable. A missing photo must never block a draft.
const FallbackURL = "https://images.unsplash.com/photo-1503676260728-1c00da094a0b?q=80&w=1000"

const requestTimeout = 10 * time.Second

type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

// Client requests random stock photos from the Unsplash search API.
// Every failure path degrades to FallbackURL instead of returning an
// error; failures are logged, never surfaced to the administrator.
type Client struct {
	// AccessKey is the Unsplash API credential
	AccessKey string

	// HTTPClient performs the requests
	HTTPClient HTTPClient

	// Log is a logger
	Log logger.Logger
}

// RandomPhoto returns a landscape photo URL for the given keywords.
// Repeated calls with the same keywords can return different photos: the
// sig parameter defeats intermediate caches.
func (c *Client) RandomPhoto(ctx context.Context, keywords string) string {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	q := url.Values{}
	q.Set("query", keywords)
	q.Set("client_id", c.AccessKey)
	q.Set("orientation", "landscape")
	q.Set("sig", strconv.FormatInt(time.Now().UnixNano(), 10))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+q.Encode(), nil)
	if err != nil {
		c.Log.Error("creating unsplash request", "error", err)
		return FallbackURL
	}

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		c.Log.Error("requesting unsplash", "error", err)
		return FallbackURL
	}

	defer func() { _ = res.Body.Close() }()
	if res.StatusCode != http.StatusOK {
		c.Log.Error("unexpected unsplash status", "status", res.StatusCode)
		return FallbackURL
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		c.Log.Error("reading unsplash response", "error", err)
		return FallbackURL
	}

	photoURL := extractURL(body)
	if photoURL == "" {
		c.Log.Error("no photo url in unsplash response")
		return FallbackURL
	}

	return photoURL
}

type photo struct {
	URLs struct {
		Regular string `json:"regular"`
	} `json:"urls"`
}

// extractURL digs urls.regular out of the payload, accepting both the
// single-object form and the list form the random endpoint can return.
func extractURL(body []byte) string {
	var single photo
	if err := json.Unmarshal(body, &single); err == nil && single.URLs.Regular != "" {
		return single.URLs.Regular
	}

	var list []photo
	if err := json.Unmarshal(body, &list); err == nil && len(list) > 0 {
		return list[0].URLs.Regular
	}

	return ""
}
