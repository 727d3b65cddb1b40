package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/ini.v1"
)

// Image frequencies accepted in the [images] section.
const (
	ImageDaily     = "daily"
	ImageAlternate = "alternate"
	ImageWeekly    = "weekly"
	ImageNever     = "never"
)

// Settings are the non-secret tuning values. They come from an optional
// INI file; anything absent falls back to the defaults below.
type Settings struct {
	Tags       []string
	PostStatus string

	MinWords           int
	MaxWords           int
	ContentTemperature float64
	TitleTemperature   float64

	ImageSize      string
	ImageFrequency string

	MaxRetries     int
	RequestTimeout time.Duration

	Headless  bool
	OutputDir string
}

// DefaultSettings returns the values used when no settings file exists.
func DefaultSettings() Settings {
	return Settings{
		Tags:               []string{"technology", "ai", "innovation", "future", "automation"},
		PostStatus:         "public",
		MinWords:           600,
		MaxWords:           800,
		ContentTemperature: 0.7,
		TitleTemperature:   0.8,
		ImageSize:          "1024x1024",
		ImageFrequency:     ImageAlternate,
		MaxRetries:         3,
		RequestTimeout:     30 * time.Second,
		Headless:           true,
		OutputDir:          "posts",
	}
}

func loadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	if path == "" {
		return s, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return s, nil
	}

	file, err := ini.Load(path)
	if err != nil {
		return s, &Error{Reason: fmt.Sprintf("settings file %s: %v", path, err)}
	}

	content := file.Section("content")
	if raw := content.Key("tags").String(); raw != "" {
		tags := make([]string, 0, 4)
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				tags = append(tags, t)
			}
		}
		s.Tags = tags
	}
	s.PostStatus = content.Key("status").MustString(s.PostStatus)
	s.MinWords = content.Key("min_words").MustInt(s.MinWords)
	s.MaxWords = content.Key("max_words").MustInt(s.MaxWords)
	s.ContentTemperature = content.Key("temperature").MustFloat64(s.ContentTemperature)
	s.TitleTemperature = content.Key("title_temperature").MustFloat64(s.TitleTemperature)

	images := file.Section("images")
	s.ImageSize = images.Key("size").MustString(s.ImageSize)
	s.ImageFrequency = images.Key("frequency").MustString(s.ImageFrequency)

	advanced := file.Section("advanced")
	s.MaxRetries = advanced.Key("max_retries").MustInt(s.MaxRetries)
	if secs := advanced.Key("request_timeout_seconds").MustInt(0); secs > 0 {
		s.RequestTimeout = time.Duration(secs) * time.Second
	}

	browser := file.Section("browser")
	s.Headless = browser.Key("headless").MustBool(s.Headless)

	output := file.Section("output")
	s.OutputDir = output.Key("dir").MustString(s.OutputDir)

	if err := s.validate(); err != nil {
		return s, err
	}
	return s, nil
}

func (s Settings) validate() error {
	if s.MinWords <= 0 || s.MaxWords < s.MinWords {
		return &Error{Reason: fmt.Sprintf("word range %d..%d is not usable", s.MinWords, s.MaxWords)}
	}
	if s.ContentTemperature < 0 || s.ContentTemperature > 2 {
		return &Error{Reason: fmt.Sprintf("temperature %v out of range", s.ContentTemperature)}
	}
	if s.TitleTemperature < 0 || s.TitleTemperature > 2 {
		return &Error{Reason: fmt.Sprintf("title_temperature %v out of range", s.TitleTemperature)}
	}
	switch s.ImageFrequency {
	case ImageDaily, ImageAlternate, ImageWeekly, ImageNever:
	default:
		return &Error{Reason: fmt.Sprintf("image frequency %q (want daily, alternate, weekly or never)", s.ImageFrequency)}
	}
	if s.MaxRetries < 1 {
		return &Error{Reason: "max_retries must be at least 1"}
	}
	return nil
}
