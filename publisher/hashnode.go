package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/tidwall/gjson"

	"auto_blog_publisher/config"
)

const hashnodeBaseURL = "https://api.hashnode.com"

const hashnodeCreatePost = `mutation CreatePublicationPost($input: CreatePostInput!) {
  createPublicationPost(input: $input) {
    post {
      id
      title
      url
    }
  }
}`

// Hashnode publishes through the Hashnode GraphQL API. GraphQL reports
// failures inside a 200 response, so the body is inspected for an
// errors array before the post node is read.
type Hashnode struct {
	Token         string
	PublicationID string
	client        *http.Client
	baseURL       string
	adapterLog
}

func (h *Hashnode) Name() string { return config.PlatformHashnode }

func (h *Hashnode) Publish(ctx context.Context, p Payload) (Result, error) {
	tags := make([]map[string]string, 0, len(p.Tags))
	for _, t := range p.Tags {
		tags = append(tags, map[string]string{"name": t})
	}
	payload := map[string]any{
		"query": hashnodeCreatePost,
		"variables": map[string]any{
			"input": map[string]any{
				"title":           p.Title,
				"contentMarkdown": p.Body,
				"publicationId":   h.PublicationID,
				"tags":            tags,
			},
		},
	}
	buf, err := json.Marshal(payload)
	if err != nil {
		return Result{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseURL, bytes.NewReader(buf))
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Authorization", h.Token)
	req.Header.Set("Content-Type", "application/json")

	h.infof("creating hashnode post %q on publication %s", p.Title, h.PublicationID)
	resp, err := h.client.Do(req)
	if err != nil {
		return Result{}, &Error{Platform: h.Name(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, platformError(h.Name(), resp.StatusCode, readError(resp.Body))
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Result{}, &Error{Platform: h.Name(), Err: err}
	}
	if errs := gjson.GetBytes(body, "errors"); errs.IsArray() && len(errs.Array()) > 0 {
		msg := errs.Array()[0].Get("message").String()
		return Result{}, &Error{Platform: h.Name(), Status: resp.StatusCode, Err: fmt.Errorf("graphql error: %s", msg)}
	}
	post := gjson.GetBytes(body, "data.createPublicationPost.post")
	if !post.Exists() || post.Get("url").String() == "" {
		return Result{}, &Error{Platform: h.Name(), Err: fmt.Errorf("response carried no post")}
	}
	return Result{Platform: h.Name(), URL: post.Get("url").String(), PostID: post.Get("id").String()}, nil
}
