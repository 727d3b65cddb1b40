package generator

import "fmt"

// Prompt is a single chat completion request.
type Prompt struct {
	System      string
	User        string
	Temperature float64
	MaxTokens   int
}

// Style presets. Standard aims at a general readership, story leans on
// narrative and subheadings, technical targets developers.
const (
	StyleStandard  = "standard"
	StyleStory     = "story"
	StyleTechnical = "technical"
)

const titleTokens = 100

// BuildBodyPrompt builds the completion request for the article body.
func BuildBodyPrompt(req Request) Prompt {
	var system, user string
	maxTokens := 1200

	switch req.Style {
	case StyleStory:
		system = "You are a professional blog writer. Write engaging, informative, and well-structured blog posts.\n\n" +
			"Guidelines:\n" +
			"- Use compelling storytelling and personal insights\n" +
			"- Include practical takeaways and actionable advice\n" +
			"- Write in a conversational yet professional tone\n" +
			"- Use ## subheadings to break up content\n" +
			"- Include relevant examples and case studies\n" +
			fmt.Sprintf("- Make it %d-%d words for optimal engagement\n", req.MinWords, req.MaxWords) +
			"- End with a call-to-action or thought-provoking question"
		user = fmt.Sprintf("Write a comprehensive blog post about: %s. Make it engaging with personal insights, practical examples, and clear takeaways that readers can apply. Use ## for subheadings.", req.Topic)
		maxTokens = 1500
	case StyleTechnical:
		system = "You are a technical blog writer. Write engaging posts for developers.\n\n" +
			"Guidelines:\n" +
			"- Use markdown formatting\n" +
			"- Include code examples where relevant\n" +
			fmt.Sprintf("- Write %d-%d words\n", req.MinWords, req.MaxWords) +
			"- Use ## for headings\n" +
			"- Include practical tips and insights\n" +
			"- End with a call-to-action"
		user = fmt.Sprintf("Write a comprehensive blog post about: %s. Use markdown formatting.", req.Topic)
		maxTokens = 1500
	default:
		system = "You are a professional blog writer. Write engaging, informative, and well-structured blog posts. " +
			"Include an introduction, main body with clear points, and a conclusion. " +
			"Write in a conversational yet professional tone. " +
			fmt.Sprintf("Make the content approximately %d-%d words.", req.MinWords, req.MaxWords)
		user = fmt.Sprintf("Write a comprehensive blog post about: %s. Include practical insights and real-world examples.", req.Topic)
	}

	return Prompt{
		System:      system,
		User:        user,
		Temperature: req.ContentTemperature,
		MaxTokens:   maxTokens,
	}
}

// BuildTitlePrompt builds the completion request for the title. It is
// independent of the body so both calls can run concurrently.
func BuildTitlePrompt(req Request) Prompt {
	var system, user string

	switch req.Style {
	case StyleStory, StyleTechnical:
		system = "You are a creative title writer. Create compelling, SEO-friendly titles.\n\n" +
			"Good blog titles:\n" +
			"- Use numbers, questions, or bold statements\n" +
			"- Promise value or transformation\n" +
			"- Are specific and benefit-focused\n" +
			"- Create curiosity without being clickbait\n" +
			"- Are 60 characters or less"
		user = fmt.Sprintf("Create one engaging blog title for this topic: %s. Just return the title, nothing else.", req.Topic)
	default:
		system = "You are a creative title writer. Create catchy, engaging blog titles that would attract readers."
		user = fmt.Sprintf("Create an engaging blog post title for this topic: %s", req.Topic)
	}

	return Prompt{
		System:      system,
		User:        user,
		Temperature: req.TitleTemperature,
		MaxTokens:   titleTokens,
	}
}
