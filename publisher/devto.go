package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"auto_blog_publisher/config"
)

const (
	devtoBaseURL = "https://dev.to/api"
	// dev.to rejects articles carrying more than four tags.
	devtoMaxTags = 4
)

// Devto publishes through the dev.to articles API. The API takes
// Markdown only, so the payload must carry the Markdown rendition.
type Devto struct {
	APIKey  string
	client  *http.Client
	baseURL string
	adapterLog
}

type devtoArticleResp struct {
	ID  int64  `json:"id"`
	URL string `json:"url"`
}

func (d *Devto) Name() string { return config.PlatformDevto }

func (d *Devto) Publish(ctx context.Context, p Payload) (Result, error) {
	tags := p.Tags
	if len(tags) > devtoMaxTags {
		tags = tags[:devtoMaxTags]
	}
	payload := map[string]any{
		"article": map[string]any{
			"title":         p.Title,
			"body_markdown": p.Body,
			"published":     p.Status == "public",
			"tags":          tags,
		},
	}
	buf, err := json.Marshal(payload)
	if err != nil {
		return Result{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.baseURL+"/articles", bytes.NewReader(buf))
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("api-key", d.APIKey)
	req.Header.Set("Content-Type", "application/json")

	d.infof("creating dev.to article %q", p.Title)
	resp, err := d.client.Do(req)
	if err != nil {
		return Result{}, &Error{Platform: d.Name(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return Result{}, platformError(d.Name(), resp.StatusCode, readError(resp.Body))
	}
	var data devtoArticleResp
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return Result{}, &Error{Platform: d.Name(), Err: err}
	}
	if data.URL == "" {
		return Result{}, &Error{Platform: d.Name(), Err: fmt.Errorf("response carried no article url")}
	}
	return Result{Platform: d.Name(), URL: data.URL, PostID: strconv.FormatInt(data.ID, 10)}, nil
}
