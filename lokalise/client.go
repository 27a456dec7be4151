// Package lokalise is a minimal read-only client for the Lokalise API2:
// just enough surface to resolve a project by name and download every
// key with its translations, page by page.
package lokalise

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/lokgen/lokgen/catalog"
)

const (
	defaultBaseURL = "https://api.lokalise.com/api2"
	pageLimit      = 500
	maxRetries     = 3
)

// Client talks to the Lokalise API2. The zero value is not usable;
// construct with NewClient.
type Client struct {
	token     string
	baseURL   string
	http      *http.Client
	retries   int
	retryWait time.Duration
}

// NewClient returns a client authenticating with the given API token.
func NewClient(token string) *Client {
	return &Client{
		token:     token,
		baseURL:   defaultBaseURL,
		http:      &http.Client{Timeout: 30 * time.Second},
		retries:   maxRetries,
		retryWait: time.Second,
	}
}

// SetBaseURL points the client at a different API root. Used against
// test servers; the default is the public Lokalise endpoint.
func (c *Client) SetBaseURL(u string) {
	c.baseURL = u
}

// Project is one entry from the projects listing.
type Project struct {
	ID   string `json:"project_id"`
	Name string `json:"name"`
}

// KeyName carries the per-platform names of a key. Lokalise keeps all
// four even when the project only uses one.
type KeyName struct {
	IOS     string `json:"ios"`
	Android string `json:"android"`
	Web     string `json:"web"`
	Other   string `json:"other"`
}

// ForPlatform returns the name for the given platform, falling back to
// the "other" name when that platform's slot is empty.
func (n KeyName) ForPlatform(platform string) string {
	var name string
	switch platform {
	case "ios":
		name = n.IOS
	case "android":
		name = n.Android
	case "web":
		name = n.Web
	default:
		name = n.Other
	}
	if name == "" {
		name = n.Other
	}
	return name
}

// Translation is one locale's text for a key.
type Translation struct {
	LanguageISO string `json:"language_iso"`
	Translation string `json:"translation"`
}

// Key is one key with its translations, as returned by the keys
// endpoint with include_translations=1.
type Key struct {
	KeyID        int64         `json:"key_id"`
	KeyName      KeyName       `json:"key_name"`
	Translations []Translation `json:"translations"`
}

// Projects lists all projects the token can see.
func (c *Client) Projects(ctx context.Context) ([]Project, error) {
	var all []Project
	for page := 1; ; page++ {
		q := url.Values{}
		q.Set("page", strconv.Itoa(page))
		q.Set("limit", strconv.Itoa(pageLimit))
		body, err := c.get(ctx, "/projects", q)
		if err != nil {
			return nil, err
		}

		var payload struct {
			Projects []Project `json:"projects"`
		}
		if err := json.Unmarshal(body, &payload); err != nil {
			return nil, &MalformedResponseError{Msg: "decoding projects page", Err: err}
		}
		all = append(all, payload.Projects...)
		if len(payload.Projects) < pageLimit {
			return all, nil
		}
	}
}

// FindProject resolves a project by its human-readable name.
func (c *Client) FindProject(ctx context.Context, name string) (Project, error) {
	projects, err := c.Projects(ctx)
	if err != nil {
		return Project{}, err
	}
	for _, p := range projects {
		if p.Name == name {
			return p, nil
		}
	}
	return Project{}, fmt.Errorf("lokalise: no project named %q among %d visible projects", name, len(projects))
}

// Keys downloads every key of a project, translations included. Pages
// are requested until a short page signals the end.
func (c *Client) Keys(ctx context.Context, projectID string) ([]Key, error) {
	var all []Key
	for page := 1; ; page++ {
		q := url.Values{}
		q.Set("include_translations", "1")
		q.Set("page", strconv.Itoa(page))
		q.Set("limit", strconv.Itoa(pageLimit))
		body, err := c.get(ctx, "/projects/"+url.PathEscape(projectID)+"/keys", q)
		if err != nil {
			return nil, err
		}

		var payload struct {
			Keys []Key `json:"keys"`
		}
		if err := json.Unmarshal(body, &payload); err != nil {
			return nil, &MalformedResponseError{Msg: fmt.Sprintf("decoding keys page %d", page), Err: err}
		}
		all = append(all, payload.Keys...)
		if len(payload.Keys) < pageLimit {
			return all, nil
		}
	}
}

// FetchAll downloads the whole project and shapes it into catalog
// entries, using the key name of the given platform. Keys with an empty
// name and names appearing twice are rejected here, before they can
// reach the catalog.
func (c *Client) FetchAll(ctx context.Context, projectID, platform string) ([]*catalog.Entry, error) {
	keys, err := c.Keys(ctx, projectID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(keys))
	entries := make([]*catalog.Entry, 0, len(keys))
	for _, k := range keys {
		name := k.KeyName.ForPlatform(platform)
		if name == "" {
			return nil, &MalformedResponseError{Msg: fmt.Sprintf("key %d has no usable name for platform %q", k.KeyID, platform)}
		}
		if seen[name] {
			return nil, &MalformedResponseError{Msg: fmt.Sprintf("duplicate key name %q", name)}
		}
		seen[name] = true

		e := catalog.NewEntry(name)
		for _, tr := range k.Translations {
			e.Values[tr.LanguageISO] = tr.Translation
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// get performs one authenticated GET with retries. Transport errors,
// 429 and 5xx responses back off exponentially; 401/403 fail
// immediately as AuthError.
func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("x-api-token", c.token)

		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = &NetworkError{Err: err}
			if attempt < c.retries {
				if err := c.sleep(ctx, attempt); err != nil {
					return nil, err
				}
				continue
			}
			return nil, lastErr
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK:
			return body, nil
		case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
			return nil, &AuthError{Status: resp.StatusCode}
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			lastErr = &NetworkError{Err: fmt.Errorf("status %d: %s", resp.StatusCode, truncate(string(body), 200))}
			if attempt < c.retries {
				if err := c.sleep(ctx, attempt); err != nil {
					return nil, err
				}
				continue
			}
			return nil, lastErr
		default:
			return nil, fmt.Errorf("lokalise: unexpected status %d: %s", resp.StatusCode, truncate(string(body), 200))
		}
	}
	return nil, lastErr
}

func (c *Client) sleep(ctx context.Context, attempt int) error {
	wait := time.Duration(math.Pow(2, float64(attempt))) * c.retryWait
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(wait):
		return nil
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
