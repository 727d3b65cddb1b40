package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"auto_blog_publisher/config"
)

const mediumBaseURL = "https://api.medium.com/v1"

// Medium publishes through the Medium REST API. Publishing is a two
// step flow: resolve the authenticated user's id, then create the post
// under that user.
type Medium struct {
	Token   string
	client  *http.Client
	baseURL string
	userID  string
	adapterLog
}

type mediumUserResp struct {
	Data struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	} `json:"data"`
}

type mediumPostResp struct {
	Data struct {
		ID  string `json:"id"`
		URL string `json:"url"`
	} `json:"data"`
}

func (m *Medium) Name() string { return config.PlatformMedium }

func (m *Medium) Publish(ctx context.Context, p Payload) (Result, error) {
	userID, err := m.resolveUserID(ctx)
	if err != nil {
		return Result{}, err
	}

	format := "html"
	if p.Markdown {
		format = "markdown"
	}
	payload := map[string]any{
		"title":         p.Title,
		"contentFormat": format,
		"content":       p.Body,
		"publishStatus": p.Status,
		"tags":          p.Tags,
	}
	buf, err := json.Marshal(payload)
	if err != nil {
		return Result{}, err
	}

	url := fmt.Sprintf("%s/users/%s/posts", m.baseURL, userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(buf))
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Authorization", "Bearer "+m.Token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	m.infof("creating medium post %q for user %s", p.Title, userID)
	resp, err := m.client.Do(req)
	if err != nil {
		return Result{}, &Error{Platform: m.Name(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return Result{}, platformError(m.Name(), resp.StatusCode, readError(resp.Body))
	}
	var data mediumPostResp
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return Result{}, &Error{Platform: m.Name(), Err: err}
	}
	if data.Data.URL == "" {
		return Result{}, &Error{Platform: m.Name(), Err: fmt.Errorf("response carried no post url")}
	}
	return Result{Platform: m.Name(), URL: data.Data.URL, PostID: data.Data.ID}, nil
}

// resolveUserID looks up the authenticated user once and caches the id
// for later calls on the same adapter.
func (m *Medium) resolveUserID(ctx context.Context) (string, error) {
	if m.userID != "" {
		return m.userID, nil
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.baseURL+"/me", nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+m.Token)
	req.Header.Set("Accept", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return "", &Error{Platform: m.Name(), Err: fmt.Errorf("resolve user: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", platformError(m.Name(), resp.StatusCode, readError(resp.Body))
	}
	var data mediumUserResp
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", &Error{Platform: m.Name(), Err: err}
	}
	if data.Data.ID == "" {
		return "", &Error{Platform: m.Name(), Err: fmt.Errorf("failed to resolve user id")}
	}
	m.userID = data.Data.ID
	m.infof("authenticated as medium user %s", data.Data.Username)
	return m.userID, nil
}
