package generator

import "time"

// Request describes the article to produce.
type Request struct {
	Topic string
	// Style selects a prompt preset; empty means StyleStandard.
	Style string

	MinWords int
	MaxWords int

	ContentTemperature float64
	TitleTemperature   float64

	// MaxRetries bounds attempts per completion call, transient
	// failures only.
	MaxRetries int
}

func (r Request) withDefaults() Request {
	if r.Style == "" {
		r.Style = StyleStandard
	}
	if r.MinWords <= 0 {
		r.MinWords = 600
	}
	if r.MaxWords < r.MinWords {
		r.MaxWords = r.MinWords + 200
	}
	if r.ContentTemperature == 0 {
		r.ContentTemperature = 0.7
	}
	if r.TitleTemperature == 0 {
		r.TitleTemperature = 0.8
	}
	if r.MaxRetries < 1 {
		r.MaxRetries = 3
	}
	return r
}

// Article is the produced draft plus bookkeeping fields.
type Article struct {
	Topic string
	Title string
	// Body is Markdown as returned by the model.
	Body      string
	ImageURL  string
	Words     int
	CreatedAt time.Time
}
