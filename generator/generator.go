package generator

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/sync/errgroup"
)

// Stage names used in Error.
const (
	StageContent = "content"
	StageTitle   = "title"
	StageImage   = "image"
)

// Error wraps a generation failure with the stage that failed and
// whether the provider reported an exhausted quota.
type Error struct {
	Stage         string
	QuotaExceeded bool
	Err           error
}

func (e *Error) Error() string {
	if e.QuotaExceeded {
		return fmt.Sprintf("generate %s: quota exceeded: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("generate %s: %v", e.Stage, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Generator produces a full article draft from a topic. Body and title
// come from two independent completions; the cover image is a separate,
// optional call.
type Generator struct {
	llm     LLMClient
	images  ImageClient
	logger  *log.Logger
	verbose bool

	retryWait time.Duration
}

// New builds a Generator. images may be nil when no platform needs
// rendered covers.
func New(llm LLMClient, images ImageClient, logger *log.Logger, verbose bool) (*Generator, error) {
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Generator{
		llm:       llm,
		images:    images,
		logger:    logger,
		verbose:   verbose,
		retryWait: 500 * time.Millisecond,
	}, nil
}

// Generate runs the body and title completions concurrently and
// assembles the article. Each completion retries transient failures up
// to req.MaxRetries attempts; quota refusals stop immediately.
func (g *Generator) Generate(ctx context.Context, req Request) (Article, error) {
	if strings.TrimSpace(req.Topic) == "" {
		return Article{}, &Error{Stage: StageContent, Err: errors.New("topic is empty")}
	}
	req = req.withDefaults()

	g.infof("generating article for topic %q (style=%s)", req.Topic, req.Style)

	var body, title string
	eg, gctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		raw, err := g.complete(gctx, BuildBodyPrompt(req), req.MaxRetries)
		if err != nil {
			return stageError(StageContent, err)
		}
		body = strings.TrimSpace(raw)
		return nil
	})
	eg.Go(func() error {
		raw, err := g.complete(gctx, BuildTitlePrompt(req), req.MaxRetries)
		if err != nil {
			return stageError(StageTitle, err)
		}
		title = CleanTitle(raw)
		return nil
	})
	if err := eg.Wait(); err != nil {
		return Article{}, err
	}

	if body == "" {
		return Article{}, &Error{Stage: StageContent, Err: errors.New("model returned empty body")}
	}
	if title == "" {
		title = req.Topic
	}

	article := Article{
		Topic:     req.Topic,
		Title:     title,
		Body:      body,
		Words:     countWords(body),
		CreatedAt: time.Now(),
	}
	g.infof("generated %d words, title %q", article.Words, article.Title)
	return article, nil
}

// GenerateImage asks the image model for a cover illustration. The
// caller decides whether a failure aborts the run; publishing without
// a cover is usually fine.
func (g *Generator) GenerateImage(ctx context.Context, topic, size string) (string, error) {
	if g.images == nil {
		return "", &Error{Stage: StageImage, Err: errors.New("image client not configured")}
	}
	url, err := g.images.Generate(ctx, ImagePrompt(topic), size)
	if err != nil {
		return "", stageError(StageImage, err)
	}
	g.infof("image generated: %s", url)
	return url, nil
}

func (g *Generator) complete(ctx context.Context, prompt Prompt, maxRetries int) (string, error) {
	if maxRetries < 1 {
		maxRetries = 1
	}

	var out string
	op := func() error {
		raw, err := g.llm.Complete(ctx, prompt)
		if err != nil {
			var quota *QuotaError
			if errors.As(err, &quota) {
				return backoff.Permanent(err)
			}
			g.infof("completion failed, retrying: %v", err)
			return err
		}
		out = raw
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = g.retryWait
	policy := backoff.WithContext(backoff.WithMaxRetries(bo, uint64(maxRetries-1)), ctx)
	if err := backoff.Retry(op, policy); err != nil {
		return "", err
	}
	return out, nil
}

func stageError(stage string, err error) *Error {
	var quota *QuotaError
	return &Error{Stage: stage, QuotaExceeded: errors.As(err, &quota), Err: err}
}

func (g *Generator) infof(format string, args ...any) {
	if g.verbose {
		g.logger.Printf("[generator] "+format, args...)
	}
}
