package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"auto_blog_publisher/config"
)

const bloggerBaseURL = "https://www.googleapis.com/blogger/v3"

// Blogger publishes through the Blogger v3 REST API. The API key flow
// always publishes live posts; drafts would need an OAuth token.
type Blogger struct {
	APIKey  string
	BlogID  string
	client  *http.Client
	baseURL string
	adapterLog
}

type bloggerPostResp struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

func (b *Blogger) Name() string { return config.PlatformBlogger }

func (b *Blogger) Publish(ctx context.Context, p Payload) (Result, error) {
	payload := map[string]any{
		"kind":    "blogger#post",
		"title":   p.Title,
		"content": p.Body,
		"labels":  p.Tags,
	}
	buf, err := json.Marshal(payload)
	if err != nil {
		return Result{}, err
	}

	url := fmt.Sprintf("%s/blogs/%s/posts", b.baseURL, b.BlogID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(buf))
	if err != nil {
		return Result{}, err
	}
	q := req.URL.Query()
	q.Set("key", b.APIKey)
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Content-Type", "application/json")

	b.infof("creating blogger post %q on blog %s", p.Title, b.BlogID)
	resp, err := b.client.Do(req)
	if err != nil {
		return Result{}, &Error{Platform: b.Name(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, platformError(b.Name(), resp.StatusCode, readError(resp.Body))
	}
	var data bloggerPostResp
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return Result{}, &Error{Platform: b.Name(), Err: err}
	}
	if data.URL == "" {
		return Result{}, &Error{Platform: b.Name(), Err: fmt.Errorf("response carried no post url")}
	}
	return Result{Platform: b.Name(), URL: data.URL, PostID: data.ID}, nil
}
