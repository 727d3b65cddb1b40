package formatter

import (
	"reflect"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func parseHTML(t *testing.T, s string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		t.Fatalf("parse rendered HTML: %v", err)
	}
	return doc
}

func TestFormatDeterministic(t *testing.T) {
	in := Input{
		Topic:    "Data privacy in the age of big data",
		Title:    "Your Data, Their Rules",
		Body:     "First paragraph.\n\nSecond paragraph.",
		ImageURL: "https://img.example.com/cover.png",
	}
	p := ProfileFor("medium", "January 2, 2024", "", []string{"technology", "ai"})

	first, err := Format(in, p)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	second, err := Format(in, p)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("Format() is not deterministic for identical inputs")
	}
}

func TestFormatPreservesParagraphs(t *testing.T) {
	in := Input{
		Topic: "Remote work",
		Title: "Why Remote Work Wins",
		Body:  "Alpha paragraph about mornings.\n\nBeta paragraph about evenings.",
	}
	post, err := Format(in, Profile{Name: "bare"})
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if post.Markdown {
		t.Fatal("bare HTML profile produced Markdown")
	}

	doc := parseHTML(t, post.Body)
	paras := doc.Find("p")
	if paras.Length() != 2 {
		t.Fatalf("paragraph count = %d, want 2\nhtml: %s", paras.Length(), post.Body)
	}
	if got := paras.Eq(0).Text(); !strings.Contains(got, "Alpha paragraph") {
		t.Errorf("first paragraph = %q, want the alpha text", got)
	}
	if got := paras.Eq(1).Text(); !strings.Contains(got, "Beta paragraph") {
		t.Errorf("second paragraph = %q, want the beta text", got)
	}
}

func TestFormatArticleShell(t *testing.T) {
	in := Input{
		Topic:    "Smart cities and urban technology integration",
		Title:    "Streets That Think",
		Body:     "Opening thoughts.\n\n## Signals\n\nClosing thoughts.",
		ImageURL: "https://img.example.com/cover.png",
	}
	p := ProfileFor("medium", "March 5, 2024", "", []string{"technology", "ai", "innovation", "future", "automation"})

	post, err := Format(in, p)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	doc := parseHTML(t, post.Body)
	if got := doc.Find("h1").First().Text(); got != "Streets That Think" {
		t.Errorf("h1 = %q, want the title", got)
	}
	if src := doc.Find("img").AttrOr("src", ""); src != in.ImageURL {
		t.Errorf("img src = %q, want %q", src, in.ImageURL)
	}
	if !strings.Contains(post.Body, "Published on March 5, 2024") {
		t.Error("dateline missing from article shell")
	}
	if doc.Find("hr").Length() == 0 {
		t.Error("footer separator missing")
	}
	if doc.Find("h2").First().Text() != "Signals" {
		t.Error("markdown subheading was not converted to h2")
	}

	open := strings.Index(post.Body, "Opening thoughts")
	closing := strings.Index(post.Body, "Closing thoughts")
	if open == -1 || closing == -1 || open > closing {
		t.Errorf("body paragraphs out of order: open=%d closing=%d", open, closing)
	}
}

func TestFormatDigestShell(t *testing.T) {
	in := Input{
		Topic: "The Evolution of Cybersecurity in the Digital Age",
		Title: "Locks for a Digital Age",
		Body:  "One.\n\nTwo.",
	}
	p := ProfileFor("blogger", "June 1, 2024", "An infographic-style image showing key concepts related to cybersecurity", []string{"technology", "ai"})

	post, err := Format(in, p)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if post.Markdown {
		t.Fatal("blogger profile must render HTML")
	}
	if !strings.Contains(post.Body, "June 1, 2024") {
		t.Error("dateline missing from digest shell")
	}
	if !strings.Contains(post.Body, "Featured image suggestion:") {
		t.Error("image hint missing from digest shell")
	}
	if !strings.Contains(post.Body, "the evolution of cybersecurity in the digital age") {
		t.Error("closing card does not name the topic")
	}
	// Topic mentions "cyber", so derived tags join the base set.
	if !strings.Contains(post.Body, "cybersecurity") {
		t.Error("tags line missing derived tag")
	}
}

func TestFormatDocumentShell(t *testing.T) {
	in := Input{
		Topic: "Sustainable software development practices",
		Title: "Green by Default",
		Body:  strings.TrimSpace(strings.Repeat("word ", 450)),
	}
	p := ProfileFor("file", "July 4, 2024", "A professional header image with abstract elements representing sustainability", []string{"technology"})

	post, err := Format(in, p)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if !post.Markdown {
		t.Fatal("file profile must stay Markdown")
	}
	if !strings.HasPrefix(post.Body, "# Green by Default\n") {
		t.Errorf("document does not open with the title heading: %q", post.Body[:40])
	}
	if !strings.Contains(post.Body, "**Estimated reading time:** 3 min read") {
		t.Error("reading time line missing or wrong (450 words should be 3 min)")
	}
	if !strings.Contains(post.Body, "**Image suggestion:**") {
		t.Error("image hint missing")
	}
	if !strings.Contains(post.Body, "Posting checklist:") {
		t.Error("posting checklist missing")
	}
	if post.ReadingMinutes != 3 {
		t.Errorf("ReadingMinutes = %d, want 3", post.ReadingMinutes)
	}
}

func TestFormatMarkdownPassthrough(t *testing.T) {
	body := "## Heading\n\nParagraph one.\n\nParagraph two."
	in := Input{Topic: "t", Title: "Pass It Through", Body: body}

	for _, platform := range []string{"devto", "hashnode", "medium-browser"} {
		post, err := Format(in, ProfileFor(platform, "", "", []string{"technology"}))
		if err != nil {
			t.Fatalf("Format(%s) error = %v", platform, err)
		}
		if !post.Markdown {
			t.Errorf("%s: Markdown = false, want true", platform)
		}
		if post.Body != body {
			t.Errorf("%s: body was altered:\n%q", platform, post.Body)
		}
	}
}

func TestFormatRejectsEmptyInput(t *testing.T) {
	p := ProfileFor("devto", "", "", nil)
	if _, err := Format(Input{Title: "", Body: "b"}, p); err == nil {
		t.Error("empty title accepted")
	}
	if _, err := Format(Input{Title: "t", Body: "   "}, p); err == nil {
		t.Error("blank body accepted")
	}
}

func TestNormalizeTags(t *testing.T) {
	tests := []struct {
		name  string
		base  []string
		topic string
		want  []string
	}{
		{
			name:  "full base set unchanged",
			base:  []string{"technology", "ai", "innovation", "future", "automation"},
			topic: "How remote work is reshaping the modern workplace",
			want:  []string{"technology", "ai", "innovation", "future", "automation"},
		},
		{
			name:  "derived tags fill free slots",
			base:  []string{"technology", "ai"},
			topic: "How remote work is reshaping the modern workplace",
			want:  []string{"technology", "ai", "remote-work", "workplace"},
		},
		{
			name:  "duplicates and case folded",
			base:  []string{"Technology", "technology", " AI "},
			topic: "nothing special",
			want:  []string{"technology", "ai"},
		},
		{
			name:  "cap at five",
			base:  []string{"a", "b", "c", "d"},
			topic: "cybersecurity and healthcare together",
			want:  []string{"a", "b", "c", "d", "healthcare"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeTags(tt.base, tt.topic); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizeTags(%v, %q) = %v, want %v", tt.base, tt.topic, got, tt.want)
			}
		})
	}
}

func TestReadingMinutes(t *testing.T) {
	tests := []struct {
		words int
		want  int
	}{
		{0, 1},
		{199, 1},
		{200, 2},
		{450, 3},
	}
	for _, tt := range tests {
		body := strings.TrimSpace(strings.Repeat("word ", tt.words))
		if got := ReadingMinutes(body); got != tt.want {
			t.Errorf("ReadingMinutes(%d words) = %d, want %d", tt.words, got, tt.want)
		}
	}
}
