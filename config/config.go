package config

import (
	"fmt"
	"os"
	"strings"
)

// Platform identifiers accepted in BLOG_PLATFORM.
const (
	PlatformMedium        = "medium"
	PlatformBlogger       = "blogger"
	PlatformDevto         = "devto"
	PlatformHashnode      = "hashnode"
	PlatformFile          = "file"
	PlatformMediumBrowser = "medium-browser"
)

// Environment keys read by Resolve.
const (
	EnvOpenAIAPIKey          = "OPENAI_API_KEY"
	EnvOpenAIBaseURL         = "OPENAI_BASE_URL"
	EnvOpenAIModel           = "OPENAI_MODEL"
	EnvBlogPlatform          = "BLOG_PLATFORM"
	EnvMediumToken           = "MEDIUM_TOKEN"
	EnvBloggerAPIKey         = "BLOGGER_API_KEY"
	EnvBloggerBlogID         = "BLOGGER_BLOG_ID"
	EnvDevtoAPIKey           = "DEVTO_API_KEY"
	EnvHashnodeAPIKey        = "HASHNODE_API_KEY"
	EnvHashnodePublicationID = "HASHNODE_PUBLICATION_ID"
	EnvGoogleEmail           = "GOOGLE_EMAIL"
	EnvGooglePassword        = "GOOGLE_PASSWORD"
	EnvSlackWebhookURL       = "SLACK_WEBHOOK_URL"
)

const defaultModel = "gpt-3.5-turbo"

// Config holds everything a run needs: credentials for the generation
// service and the selected publish platform, plus the tuning settings.
// It is resolved once per run and passed by reference; components never
// read the process environment themselves.
type Config struct {
	OpenAIAPIKey  string
	OpenAIBaseURL string
	Model         string

	// Platform selects the publish adapter.
	Platform string

	MediumToken           string
	BloggerAPIKey         string
	BloggerBlogID         string
	DevtoAPIKey           string
	HashnodeAPIKey        string
	HashnodePublicationID string
	GoogleEmail           string
	GooglePassword        string

	SlackWebhookURL string

	Settings Settings
}

// Error reports configuration problems. Missing lists every absent
// required key so one failed run is enough to fix the environment.
type Error struct {
	Missing []string
	Reason  string
}

func (e *Error) Error() string {
	if len(e.Missing) > 0 {
		return "missing required configuration: " + strings.Join(e.Missing, ", ")
	}
	return "invalid configuration: " + e.Reason
}

// Options controls where Resolve looks for its inputs.
type Options struct {
	// EnvFile is an optional KEY=VALUE file loaded into the process
	// environment before reading it. Empty or missing file is fine.
	EnvFile string
	// SettingsFile is an optional INI file with non-secret tuning values.
	SettingsFile string
	// Platform overrides BLOG_PLATFORM when non-empty (CLI flag).
	Platform string
}

// requiredKeys maps each platform to the credentials it cannot run without.
// OPENAI_API_KEY is required for every platform.
var requiredKeys = map[string][]string{
	PlatformMedium:        {EnvMediumToken},
	PlatformBlogger:       {EnvBloggerAPIKey, EnvBloggerBlogID},
	PlatformDevto:         {EnvDevtoAPIKey},
	PlatformHashnode:      {EnvHashnodeAPIKey, EnvHashnodePublicationID},
	PlatformFile:          {},
	PlatformMediumBrowser: {EnvGoogleEmail, EnvGooglePassword},
}

// Resolve loads the optional env file, reads all settings from the process
// environment and the optional settings file, and validates the result.
// A failure names every missing required key, not just the first.
func Resolve(opts Options) (*Config, error) {
	if opts.EnvFile != "" {
		if err := LoadEnvFile(opts.EnvFile); err != nil {
			return nil, &Error{Reason: fmt.Sprintf("env file %s: %v", opts.EnvFile, err)}
		}
	}

	platform := opts.Platform
	if platform == "" {
		platform = os.Getenv(EnvBlogPlatform)
	}
	if platform == "" {
		platform = PlatformMedium
	}

	required, ok := requiredKeys[platform]
	if !ok {
		return nil, &Error{Reason: fmt.Sprintf("unknown platform %q (want one of medium, blogger, devto, hashnode, file, medium-browser)", platform)}
	}

	cfg := &Config{
		OpenAIAPIKey:          os.Getenv(EnvOpenAIAPIKey),
		OpenAIBaseURL:         os.Getenv(EnvOpenAIBaseURL),
		Model:                 os.Getenv(EnvOpenAIModel),
		Platform:              platform,
		MediumToken:           os.Getenv(EnvMediumToken),
		BloggerAPIKey:         os.Getenv(EnvBloggerAPIKey),
		BloggerBlogID:         os.Getenv(EnvBloggerBlogID),
		DevtoAPIKey:           os.Getenv(EnvDevtoAPIKey),
		HashnodeAPIKey:        os.Getenv(EnvHashnodeAPIKey),
		HashnodePublicationID: os.Getenv(EnvHashnodePublicationID),
		GoogleEmail:           os.Getenv(EnvGoogleEmail),
		GooglePassword:        os.Getenv(EnvGooglePassword),
		SlackWebhookURL:       os.Getenv(EnvSlackWebhookURL),
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}

	var missing []string
	if cfg.OpenAIAPIKey == "" {
		missing = append(missing, EnvOpenAIAPIKey)
	}
	for _, key := range required {
		if os.Getenv(key) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, &Error{Missing: missing}
	}

	settings, err := loadSettings(opts.SettingsFile)
	if err != nil {
		return nil, err
	}
	cfg.Settings = settings

	return cfg, nil
}

// Mask shortens a credential for logging: a short prefix plus stars.
// Values are never logged in full.
func Mask(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= 8 {
		return "****"
	}
	return secret[:4] + "****"
}
