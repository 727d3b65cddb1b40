package publisher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"auto_blog_publisher/config"
)

// File writes the post to a timestamped Markdown file instead of
// calling any platform, for the manual copy-paste workflow.
type File struct {
	Dir string
	now func() time.Time
	adapterLog
}

func (f *File) Name() string { return config.PlatformFile }

func (f *File) Publish(ctx context.Context, p Payload) (Result, error) {
	dir := f.Dir
	if dir == "" {
		dir = "posts"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Result{}, &Error{Platform: f.Name(), Err: err}
	}
	clock := f.now
	if clock == nil {
		clock = time.Now
	}
	name := fmt.Sprintf("medium_post_%s.md", clock().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(p.Body), 0o644); err != nil {
		return Result{}, &Error{Platform: f.Name(), Err: err}
	}
	f.infof("wrote post to %s", path)
	return Result{Platform: f.Name(), URL: path}, nil
}
