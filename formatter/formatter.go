package formatter

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"
)

// Input is the generated article a run hands to the formatter.
type Input struct {
	Topic string
	Title string
	// Body is Markdown as produced by the generator.
	Body string
	// ImageURL is a rendered cover, may be empty.
	ImageURL string
}

// Post is the payload ready for a publish adapter.
type Post struct {
	Title string
	Body  string
	// Markdown reports whether Body is Markdown; otherwise it is HTML.
	Markdown       bool
	Tags           []string
	ReadingMinutes int
}

// Format builds the platform payload. It is pure: identical inputs
// yield a byte-identical Post. Body paragraphs are never dropped or
// reordered.
func Format(in Input, p Profile) (Post, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return Post{}, errors.New("title is required")
	}
	body := strings.TrimSpace(in.Body)
	if body == "" {
		return Post{}, errors.New("body is required")
	}

	tags := NormalizeTags(p.Tags, in.Topic)
	minutes := ReadingMinutes(body)

	var rendered string
	if p.Markdown {
		rendered = markdownDoc(title, body, in, p, tags, minutes)
	} else {
		htmlBody, err := mdToHTML(body)
		if err != nil {
			return Post{}, err
		}
		rendered = htmlDoc(title, htmlBody, in, p, tags)
	}

	return Post{
		Title:          title,
		Body:           rendered,
		Markdown:       p.Markdown,
		Tags:           tags,
		ReadingMinutes: minutes,
	}, nil
}

func mdToHTML(md string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func htmlDoc(title, htmlBody string, in Input, p Profile, tags []string) string {
	switch p.Shell {
	case ShellArticle:
		var sb strings.Builder
		sb.WriteString("<h1>" + html.EscapeString(title) + "</h1>\n")
		if in.ImageURL != "" {
			sb.WriteString(`<div style="text-align: center; margin: 20px 0;"><img src="` +
				html.EscapeString(in.ImageURL) + `" alt="` + html.EscapeString(title) +
				`" style="max-width: 100%; height: auto; border-radius: 8px;"/></div>` + "\n")
		}
		if p.Dateline != "" {
			sb.WriteString("<p><em>Published on " + html.EscapeString(p.Dateline) + " | Generated by AI</em></p>\n")
		}
		sb.WriteString(htmlBody)
		sb.WriteString("<hr/>\n")
		sb.WriteString("<p><em>This blog post was automatically generated using AI technology. Stay tuned for more insights on technology, innovation, and the future!</em></p>\n")
		return sb.String()
	case ShellDigest:
		var sb strings.Builder
		sb.WriteString(`<div style="background: #f8f9fa; padding: 15px; border-left: 4px solid #007bff; margin: 20px 0;">` + "\n")
		sb.WriteString("<p><strong>Published:</strong> " + html.EscapeString(p.Dateline) + " | <strong>Generated by:</strong> AI Technology</p>\n")
		if p.ImageHint != "" {
			sb.WriteString("<p><strong>Featured image suggestion:</strong> " + html.EscapeString(p.ImageHint) + "</p>\n")
		}
		sb.WriteString("</div>\n")
		sb.WriteString(htmlBody)
		sb.WriteString(`<hr style="margin: 30px 0;"/>` + "\n")
		sb.WriteString(`<div style="background: #e9ecef; padding: 20px; border-radius: 8px;">` + "\n")
		sb.WriteString("<h3>What's Your Take?</h3>\n")
		sb.WriteString("<p>This blog post was automatically generated using AI technology. What are your thoughts on <strong>" +
			html.EscapeString(strings.ToLower(in.Topic)) + "</strong>? Share your insights in the comments below!</p>\n")
		sb.WriteString("<p><strong>Tags:</strong> " + html.EscapeString(strings.Join(tags, ", ")) + "</p>\n")
		sb.WriteString("</div>\n")
		return sb.String()
	default:
		return htmlBody
	}
}

func markdownDoc(title, body string, in Input, p Profile, tags []string, minutes int) string {
	if p.Shell != ShellDocument {
		return body
	}

	var sb strings.Builder
	sb.WriteString("# " + title + "\n\n")
	sb.WriteString(fmt.Sprintf("*Published on %s | Generated by AI*\n\n", p.Dateline))
	if in.ImageURL != "" {
		sb.WriteString(fmt.Sprintf("![%s](%s)\n\n", title, in.ImageURL))
	} else if p.ImageHint != "" {
		sb.WriteString(fmt.Sprintf("**Image suggestion:** %s\n\n", p.ImageHint))
	}
	sb.WriteString(body)
	sb.WriteString("\n\n---\n\n")
	sb.WriteString(fmt.Sprintf("*This blog post was automatically generated using AI technology. What are your thoughts on %s? Share your insights in the comments below!*\n\n", strings.ToLower(in.Topic)))
	sb.WriteString(fmt.Sprintf("**Tags:** %s\n", strings.Join(tags, ", ")))
	sb.WriteString(fmt.Sprintf("**Estimated reading time:** %d min read\n\n", minutes))
	sb.WriteString("---\n\n")
	sb.WriteString("**Posting checklist:**\n\n")
	sb.WriteString("1. Copy the content above\n")
	sb.WriteString("2. Open the platform editor\n")
	sb.WriteString("3. Paste the title and content\n")
	sb.WriteString("4. Add the suggested tags\n")
	sb.WriteString("5. Attach a header image\n")
	sb.WriteString("6. Preview and publish\n")
	return sb.String()
}
