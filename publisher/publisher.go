// Package publisher delivers formatted posts to the configured blog
// platform. Each platform gets its own adapter behind the Publisher
// interface; New picks the adapter from the resolved configuration.
package publisher

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"auto_blog_publisher/config"
)

// Payload is a platform-ready post. Body carries HTML or Markdown
// depending on how the post was formatted; Markdown reports which.
type Payload struct {
	Title    string
	Body     string
	Markdown bool
	Tags     []string
	Status   string
}

// Result reports where a published post ended up.
type Result struct {
	Platform string
	URL      string
	PostID   string
}

// Error wraps a platform rejection. Status is the HTTP status code
// when the platform answered, 0 otherwise.
type Error struct {
	Platform string
	Status   int
	Err      error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: publish failed with status %d: %v", e.Platform, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: publish failed: %v", e.Platform, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// AutomationError reports a browser automation failure together with
// the step that broke, so the run log shows how far the flow got.
type AutomationError struct {
	Step string
	Err  error
}

func (e *AutomationError) Error() string {
	return fmt.Sprintf("browser automation failed at %s: %v", e.Step, e.Err)
}

func (e *AutomationError) Unwrap() error { return e.Err }

// Publisher delivers one post to one platform.
type Publisher interface {
	// Name reports the platform identifier, e.g. "medium".
	Name() string
	// Publish delivers the post. It either creates the post fully or
	// returns an error without leaving a partial post behind; it never
	// retries on its own.
	Publish(ctx context.Context, p Payload) (Result, error)
}

// New builds the adapter for cfg.Platform. client and logger may be
// nil, in which case defaults are used.
func New(cfg *config.Config, client *http.Client, verbose bool, logger *log.Logger) (Publisher, error) {
	if cfg == nil {
		return nil, fmt.Errorf("publisher: config is nil")
	}
	if logger == nil {
		logger = log.Default()
	}
	if client == nil {
		timeout := cfg.Settings.RequestTimeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	base := adapterLog{verbose: verbose, logger: logger}
	switch cfg.Platform {
	case config.PlatformMedium:
		return &Medium{Token: cfg.MediumToken, client: client, baseURL: mediumBaseURL, adapterLog: base}, nil
	case config.PlatformBlogger:
		return &Blogger{APIKey: cfg.BloggerAPIKey, BlogID: cfg.BloggerBlogID, client: client, baseURL: bloggerBaseURL, adapterLog: base}, nil
	case config.PlatformDevto:
		return &Devto{APIKey: cfg.DevtoAPIKey, client: client, baseURL: devtoBaseURL, adapterLog: base}, nil
	case config.PlatformHashnode:
		return &Hashnode{Token: cfg.HashnodeAPIKey, PublicationID: cfg.HashnodePublicationID, client: client, baseURL: hashnodeBaseURL, adapterLog: base}, nil
	case config.PlatformFile:
		return &File{Dir: cfg.Settings.OutputDir, adapterLog: base}, nil
	case config.PlatformMediumBrowser:
		return &Browser{Email: cfg.GoogleEmail, Password: cfg.GooglePassword, Headless: cfg.Settings.Headless, adapterLog: base}, nil
	default:
		return nil, fmt.Errorf("publisher: unsupported platform %q", cfg.Platform)
	}
}

// adapterLog is the logging half shared by every adapter.
type adapterLog struct {
	verbose bool
	logger  *log.Logger
}

func (l adapterLog) infof(format string, v ...any) {
	if l.verbose && l.logger != nil {
		l.logger.Printf("[publisher] "+format, v...)
	}
}

// readError drains up to 2KB of an error response body so the platform
// message shows up in the run log without flooding it.
func readError(body io.Reader) string {
	b, err := io.ReadAll(io.LimitReader(body, 2048))
	if err != nil || len(b) == 0 {
		return ""
	}
	return string(b)
}

func platformError(platform string, status int, detail string) *Error {
	if detail == "" {
		return &Error{Platform: platform, Status: status, Err: fmt.Errorf("unexpected status")}
	}
	return &Error{Platform: platform, Status: status, Err: fmt.Errorf("unexpected status: %s", detail)}
}
