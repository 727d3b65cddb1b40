// Package runner drives one blog post from topic selection through
// generation, formatting and publishing.
package runner

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"auto_blog_publisher/config"
	"auto_blog_publisher/formatter"
	"auto_blog_publisher/generator"
	"auto_blog_publisher/publisher"
)

// State is the position of a run inside the workflow. States advance
// strictly forward; failed is terminal and reachable from any state.
type State string

const (
	StateIdle             State = "idle"
	StateConfigLoaded     State = "config_loaded"
	StateTopicSelected    State = "topic_selected"
	StateContentGenerated State = "content_generated"
	StateFormatted        State = "formatted"
	StatePublished        State = "published"
	StateDone             State = "done"
	StateFailed           State = "failed"
)

// Run is the record of one workflow execution.
type Run struct {
	ID     string `json:"id"`
	Topic  string `json:"topic"`
	State  State  `json:"state"`
	Title  string `json:"title,omitempty"`
	URL    string `json:"url,omitempty"`
	PostID string `json:"post_id,omitempty"`
	Error  string `json:"error,omitempty"`
	// QuotaExceeded marks a failure caused by an exhausted generation
	// quota, which needs a billing fix rather than a retry.
	QuotaExceeded bool      `json:"quota_exceeded,omitempty"`
	StartedAt     time.Time `json:"started_at"`
	FinishedAt    time.Time `json:"finished_at"`
}

// Success reports whether the run completed the whole workflow.
func (r *Run) Success() bool { return r.State == StateDone }

// NewRun creates an idle run record with a fresh id.
func NewRun() *Run {
	return &Run{ID: uuid.NewString(), State: StateIdle}
}

// ContentGenerator produces the article and the optional cover image.
type ContentGenerator interface {
	Generate(ctx context.Context, req generator.Request) (generator.Article, error)
	GenerateImage(ctx context.Context, topic, size string) (string, error)
}

// PublisherFactory builds the publish adapter. The runner calls it only
// after generation and formatting succeed, so a failed generation never
// touches the platform.
type PublisherFactory func() (publisher.Publisher, error)

// Notifier reports run outcomes. Notification failures are logged,
// never fatal.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}

// Runner executes the generate-format-publish workflow.
type Runner struct {
	cfg      *config.Config
	gen      ContentGenerator
	newPub   PublisherFactory
	notifier Notifier
	logger   *log.Logger
	verbose  bool
	onState  func(Run)
	now      func() time.Time
	pick     func() string
}

// Options wires a Runner. Generator and Publisher are built from the
// config when left nil; Notifier nil disables notifications. OnState,
// when set, receives a copy of the record after every transition.
type Options struct {
	Config    *config.Config
	Generator ContentGenerator
	Publisher PublisherFactory
	Notifier  Notifier
	Logger    *log.Logger
	Verbose   bool
	OnState   func(Run)
}

func New(opts Options) (*Runner, error) {
	cfg := opts.Config
	if cfg == nil {
		return nil, errors.New("runner: config is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	gen := opts.Generator
	if gen == nil {
		settings := &generator.LLMSettings{
			Model:   cfg.Model,
			APIKey:  cfg.OpenAIAPIKey,
			BaseURL: cfg.OpenAIBaseURL,
		}
		llm, err := generator.NewOpenAILLM(settings)
		if err != nil {
			return nil, err
		}
		images, err := generator.NewOpenAIImages(settings)
		if err != nil {
			return nil, err
		}
		g, err := generator.New(llm, images, logger, opts.Verbose)
		if err != nil {
			return nil, err
		}
		gen = g
	}
	newPub := opts.Publisher
	if newPub == nil {
		newPub = func() (publisher.Publisher, error) {
			return publisher.New(cfg, nil, opts.Verbose, logger)
		}
	}
	return &Runner{
		cfg:      cfg,
		gen:      gen,
		newPub:   newPub,
		notifier: opts.Notifier,
		logger:   logger,
		verbose:  opts.Verbose,
		onState:  opts.OnState,
		now:      time.Now,
		pick:     PickTopic,
	}, nil
}

// Run executes the workflow once. The returned record always carries
// the final state; err is non-nil exactly when the run failed.
func (r *Runner) Run(ctx context.Context, topic string) (*Run, error) {
	return r.Execute(ctx, NewRun(), topic)
}

// Execute drives an existing run record through the workflow. Callers
// that keep the record must not read it until Execute returns; state is
// observable in flight through the OnState hook.
func (r *Runner) Execute(ctx context.Context, run *Run, topic string) (*Run, error) {
	run.StartedAt = r.now()
	r.setState(run, StateConfigLoaded)
	r.logger.Printf("[runner] run %s: platform %s, model %s, key %s",
		run.ID, r.cfg.Platform, r.cfg.Model, config.Mask(r.cfg.OpenAIAPIKey))

	if topic == "" {
		topic = r.pick()
	}
	run.Topic = topic
	r.setState(run, StateTopicSelected)
	r.logger.Printf("[runner] run %s: topic %q", run.ID, topic)

	article, err := r.gen.Generate(ctx, generator.Request{
		Topic:              topic,
		Style:              styleFor(r.cfg.Platform),
		MinWords:           r.cfg.Settings.MinWords,
		MaxWords:           r.cfg.Settings.MaxWords,
		ContentTemperature: r.cfg.Settings.ContentTemperature,
		TitleTemperature:   r.cfg.Settings.TitleTemperature,
		MaxRetries:         r.cfg.Settings.MaxRetries,
	})
	if err != nil {
		return r.fail(ctx, run, fmt.Errorf("generate content: %w", err))
	}
	run.Title = article.Title
	r.setState(run, StateContentGenerated)
	r.logger.Printf("[runner] run %s: generated %q (%d words)", run.ID, article.Title, article.Words)

	if generator.ShouldAttachImage(r.cfg.Settings.ImageFrequency, r.now()) {
		url, err := r.gen.GenerateImage(ctx, topic, r.cfg.Settings.ImageSize)
		if err != nil {
			r.logger.Printf("[runner] run %s: image generation failed, continuing without image: %v", run.ID, err)
		} else {
			article.ImageURL = url
			r.infof("run %s: cover image %s", run.ID, url)
		}
	}

	profile := formatter.ProfileFor(
		r.cfg.Platform,
		r.now().Format("January 2, 2006"),
		generator.DescribeImage(topic),
		r.cfg.Settings.Tags,
	)
	post, err := formatter.Format(formatter.Input{
		Topic:    topic,
		Title:    article.Title,
		Body:     article.Body,
		ImageURL: article.ImageURL,
	}, profile)
	if err != nil {
		return r.fail(ctx, run, fmt.Errorf("format post: %w", err))
	}
	r.setState(run, StateFormatted)

	pub, err := r.newPub()
	if err != nil {
		return r.fail(ctx, run, fmt.Errorf("build publisher: %w", err))
	}
	result, err := pub.Publish(ctx, publisher.Payload{
		Title:    post.Title,
		Body:     post.Body,
		Markdown: post.Markdown,
		Tags:     post.Tags,
		Status:   r.cfg.Settings.PostStatus,
	})
	if err != nil {
		return r.fail(ctx, run, fmt.Errorf("publish: %w", err))
	}
	run.URL = result.URL
	run.PostID = result.PostID
	r.setState(run, StatePublished)
	r.logger.Printf("[runner] run %s: published to %s", run.ID, result.URL)

	r.notify(ctx, fmt.Sprintf("Published %q to %s: %s", run.Title, r.cfg.Platform, run.URL))
	run.FinishedAt = r.now()
	r.setState(run, StateDone)
	return run, nil
}

// styleFor matches the prompt style to the audience of the platform.
func styleFor(platform string) string {
	switch platform {
	case config.PlatformDevto, config.PlatformHashnode:
		return generator.StyleTechnical
	case config.PlatformFile, config.PlatformMediumBrowser:
		return generator.StyleStory
	default:
		return generator.StyleStandard
	}
}

func (r *Runner) fail(ctx context.Context, run *Run, err error) (*Run, error) {
	var gerr *generator.Error
	if errors.As(err, &gerr) && gerr.QuotaExceeded {
		run.QuotaExceeded = true
		err = fmt.Errorf("openai quota exceeded, check billing at https://platform.openai.com/account/billing: %w", err)
	}
	run.Error = err.Error()
	run.FinishedAt = r.now()
	r.setState(run, StateFailed)
	r.logger.Printf("[runner] run %s: failed: %v", run.ID, err)
	r.notify(ctx, fmt.Sprintf("Blog run failed: %v", err))
	return run, err
}

func (r *Runner) notify(ctx context.Context, msg string) {
	if r.notifier == nil {
		return
	}
	if err := r.notifier.Notify(ctx, msg); err != nil {
		r.logger.Printf("[runner] notification failed: %v", err)
	}
}

func (r *Runner) setState(run *Run, s State) {
	run.State = s
	r.infof("run %s: state %s", run.ID, s)
	if r.onState != nil {
		r.onState(*run)
	}
}

func (r *Runner) infof(format string, args ...any) {
	if r.verbose {
		r.logger.Printf("[runner] "+format, args...)
	}
}
