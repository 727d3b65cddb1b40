package generator

import (
	"context"
	"errors"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAILLM implements LLMClient using the official openai-go SDK (chat completions).
type OpenAILLM struct {
	Model string
	Opts  []option.RequestOption
}

func NewOpenAILLM(cfg *LLMSettings) (*OpenAILLM, error) {
	if cfg == nil {
		return nil, errors.New("llm config is nil")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("openai api key missing")
	}
	if cfg.Model == "" {
		return nil, errors.New("llm model is required")
	}
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		// Retries belong to the generator layer.
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &OpenAILLM{Model: cfg.Model, Opts: opts}, nil
}

func (o *OpenAILLM) Complete(ctx context.Context, prompt Prompt) (string, error) {
	client := openai.NewClient(o.Opts...)

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(prompt.System),
			openai.UserMessage(prompt.User),
		},
	}
	if prompt.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(prompt.MaxTokens))
	}
	if prompt.Temperature > 0 {
		params.Temperature = openai.Float(prompt.Temperature)
	}

	resp, err := client.Chat.Completions.New(ctx, params)
	if err != nil {
		if quotaExceeded(err) {
			return "", &QuotaError{Err: err}
		}
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// quotaExceeded inspects the structured API error rather than matching
// message text.
func quotaExceeded(err error) bool {
	var apierr *openai.Error
	if !errors.As(err, &apierr) {
		return false
	}
	return apierr.Code == "insufficient_quota" || apierr.Type == "insufficient_quota"
}
