package generator

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// ImageClient abstracts the image model.
type ImageClient interface {
	Generate(ctx context.Context, prompt, size string) (string, error)
}

// ImagePrompt is the prompt sent to the image model for a cover.
func ImagePrompt(topic string) string {
	return fmt.Sprintf("A modern, professional illustration representing %s. Clean, minimalist design with vibrant colors, suitable for a blog post header.", topic)
}

var imageDescriptions = []string{
	"A modern, minimalist illustration representing %s with clean lines and vibrant colors",
	"An infographic-style image showing key concepts related to %s",
	"A futuristic digital art piece visualizing %s in an engaging way",
	"A professional header image with abstract elements representing %s",
	"A creative visualization of %s using modern design principles",
}

// DescribeImage returns a cover suggestion for platforms that take a
// textual hint instead of a rendered image.
func DescribeImage(topic string) string {
	return fmt.Sprintf(imageDescriptions[rand.Intn(len(imageDescriptions))], topic)
}

// OpenAIImages implements ImageClient with the openai-go Images API.
type OpenAIImages struct {
	Opts []option.RequestOption
}

func NewOpenAIImages(cfg *LLMSettings) (*OpenAIImages, error) {
	if cfg == nil {
		return nil, errors.New("llm config is nil")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("openai api key missing")
	}
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &OpenAIImages{Opts: opts}, nil
}

func (o *OpenAIImages) Generate(ctx context.Context, prompt, size string) (string, error) {
	client := openai.NewClient(o.Opts...)

	resp, err := client.Images.Generate(ctx, openai.ImageGenerateParams{
		Prompt: prompt,
		N:      openai.Int(1),
		Size:   imageSize(size),
	})
	if err != nil {
		if quotaExceeded(err) {
			return "", &QuotaError{Err: err}
		}
		return "", err
	}
	if len(resp.Data) == 0 {
		return "", errors.New("openai: empty image data")
	}
	return resp.Data[0].URL, nil
}

func imageSize(size string) openai.ImageGenerateParamsSize {
	switch size {
	case "256x256":
		return openai.ImageGenerateParamsSize256x256
	case "512x512":
		return openai.ImageGenerateParamsSize512x512
	default:
		return openai.ImageGenerateParamsSize1024x1024
	}
}
