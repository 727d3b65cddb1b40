package generator

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

// fakeLLM answers body and title prompts separately and can be told to
// fail the first N body calls.
type fakeLLM struct {
	mu         sync.Mutex
	body       string
	title      string
	bodyErr    error
	titleErr   error
	failBodyN  int
	bodyCalls  int
	titleCalls int

	lastBody  Prompt
	lastTitle Prompt
}

func (f *fakeLLM) Complete(_ context.Context, prompt Prompt) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if strings.Contains(prompt.User, "title") {
		f.titleCalls++
		f.lastTitle = prompt
		if f.titleErr != nil {
			return "", f.titleErr
		}
		return f.title, nil
	}

	f.bodyCalls++
	f.lastBody = prompt
	if f.bodyErr != nil {
		return "", f.bodyErr
	}
	if f.bodyCalls <= f.failBodyN {
		return "", errors.New("upstream hiccup")
	}
	return f.body, nil
}

func newTestGenerator(t *testing.T, llm LLMClient, images ImageClient) *Generator {
	t.Helper()
	g, err := New(llm, images, nil, false)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	g.retryWait = time.Millisecond
	return g
}

func TestGenerateComposesArticle(t *testing.T) {
	fake := &fakeLLM{
		body:  "First paragraph with several words.\n\nSecond paragraph closes it out.",
		title: "\"Top 10 Go Tips\"\n",
	}
	g := newTestGenerator(t, fake, nil)

	article, err := g.Generate(context.Background(), Request{Topic: "The future of testing"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if article.Title != "Top 10 Go Tips" {
		t.Errorf("Title = %q, want cleaned %q", article.Title, "Top 10 Go Tips")
	}
	if article.Topic != "The future of testing" {
		t.Errorf("Topic = %q, want the request topic", article.Topic)
	}
	if article.Words != 10 {
		t.Errorf("Words = %d, want 10", article.Words)
	}
	if article.CreatedAt.IsZero() {
		t.Error("CreatedAt is zero")
	}

	if fake.lastBody.Temperature != 0.7 {
		t.Errorf("body temperature = %v, want default 0.7", fake.lastBody.Temperature)
	}
	if fake.lastTitle.Temperature != 0.8 {
		t.Errorf("title temperature = %v, want default 0.8", fake.lastTitle.Temperature)
	}
	if fake.lastBody.MaxTokens != 1200 {
		t.Errorf("body max tokens = %d, want 1200", fake.lastBody.MaxTokens)
	}
	if fake.lastTitle.MaxTokens != titleTokens {
		t.Errorf("title max tokens = %d, want %d", fake.lastTitle.MaxTokens, titleTokens)
	}
	if !strings.Contains(fake.lastBody.User, "The future of testing") {
		t.Errorf("body prompt %q does not carry the topic", fake.lastBody.User)
	}
}

func TestGenerateQuotaStopsRetries(t *testing.T) {
	quota := &QuotaError{Err: errors.New("insufficient_quota")}
	fake := &fakeLLM{bodyErr: quota, titleErr: quota}
	g := newTestGenerator(t, fake, nil)

	_, err := g.Generate(context.Background(), Request{Topic: "anything", MaxRetries: 3})

	var genErr *Error
	if !errors.As(err, &genErr) {
		t.Fatalf("Generate() error = %v, want *generator.Error", err)
	}
	if !genErr.QuotaExceeded {
		t.Error("QuotaExceeded = false, want true")
	}
	if fake.bodyCalls > 1 || fake.titleCalls > 1 {
		t.Errorf("calls = body %d, title %d; quota errors must not be retried", fake.bodyCalls, fake.titleCalls)
	}
}

func TestGenerateRetriesTransientFailures(t *testing.T) {
	fake := &fakeLLM{
		body:      "Recovered body with enough words here.",
		title:     "Recovered Title",
		failBodyN: 2,
	}
	g := newTestGenerator(t, fake, nil)

	article, err := g.Generate(context.Background(), Request{Topic: "retry me", MaxRetries: 3})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if fake.bodyCalls != 3 {
		t.Errorf("bodyCalls = %d, want 3 (two failures then success)", fake.bodyCalls)
	}
	if article.Title != "Recovered Title" {
		t.Errorf("Title = %q, want %q", article.Title, "Recovered Title")
	}
}

func TestGenerateExhaustsRetries(t *testing.T) {
	fake := &fakeLLM{
		body:      "never reached",
		title:     "Fine Title",
		failBodyN: 10,
	}
	g := newTestGenerator(t, fake, nil)

	_, err := g.Generate(context.Background(), Request{Topic: "doomed", MaxRetries: 2})

	var genErr *Error
	if !errors.As(err, &genErr) {
		t.Fatalf("Generate() error = %v, want *generator.Error", err)
	}
	if genErr.Stage != StageContent {
		t.Errorf("Stage = %q, want %q", genErr.Stage, StageContent)
	}
	if genErr.QuotaExceeded {
		t.Error("QuotaExceeded = true for a transient failure")
	}
	if fake.bodyCalls != 2 {
		t.Errorf("bodyCalls = %d, want 2", fake.bodyCalls)
	}
}

func TestGenerateTitleFallsBackToTopic(t *testing.T) {
	fake := &fakeLLM{body: "Body text here.", title: "  \n "}
	g := newTestGenerator(t, fake, nil)

	article, err := g.Generate(context.Background(), Request{Topic: "Data privacy in the age of big data"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if article.Title != article.Topic {
		t.Errorf("Title = %q, want fallback to topic %q", article.Title, article.Topic)
	}
}

func TestGenerateRejectsEmptyTopic(t *testing.T) {
	g := newTestGenerator(t, &fakeLLM{}, nil)
	_, err := g.Generate(context.Background(), Request{Topic: "   "})
	if err == nil {
		t.Fatal("Generate() with blank topic returned nil error")
	}
}

func TestGenerateEmptyBodyFails(t *testing.T) {
	fake := &fakeLLM{body: "   ", title: "Title"}
	g := newTestGenerator(t, fake, nil)

	_, err := g.Generate(context.Background(), Request{Topic: "empty"})
	var genErr *Error
	if !errors.As(err, &genErr) {
		t.Fatalf("Generate() error = %v, want *generator.Error", err)
	}
	if genErr.Stage != StageContent {
		t.Errorf("Stage = %q, want %q", genErr.Stage, StageContent)
	}
}

type fakeImages struct {
	url  string
	err  error
	last string
}

func (f *fakeImages) Generate(_ context.Context, prompt, size string) (string, error) {
	f.last = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

func TestGenerateImage(t *testing.T) {
	images := &fakeImages{url: "https://img.example.com/cover.png"}
	g := newTestGenerator(t, &fakeLLM{}, images)

	url, err := g.GenerateImage(context.Background(), "smart cities", "1024x1024")
	if err != nil {
		t.Fatalf("GenerateImage() error = %v", err)
	}
	if url != images.url {
		t.Errorf("url = %q, want %q", url, images.url)
	}
	if !strings.Contains(images.last, "smart cities") {
		t.Errorf("image prompt %q does not carry the topic", images.last)
	}
}

func TestGenerateImageWithoutClient(t *testing.T) {
	g := newTestGenerator(t, &fakeLLM{}, nil)
	_, err := g.GenerateImage(context.Background(), "topic", "1024x1024")

	var genErr *Error
	if !errors.As(err, &genErr) {
		t.Fatalf("GenerateImage() error = %v, want *generator.Error", err)
	}
	if genErr.Stage != StageImage {
		t.Errorf("Stage = %q, want %q", genErr.Stage, StageImage)
	}
}

func TestMockLLM(t *testing.T) {
	var m MockLLM
	title, err := m.Complete(context.Background(), BuildTitlePrompt(Request{Topic: "x"}.withDefaults()))
	if err != nil || title == "" {
		t.Fatalf("title completion = %q, %v", title, err)
	}
	body, err := m.Complete(context.Background(), BuildBodyPrompt(Request{Topic: "x"}.withDefaults()))
	if err != nil || !strings.Contains(body, "##") {
		t.Fatalf("body completion missing headings: %q, %v", body, err)
	}
}
