package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	stealth "github.com/jonfriesen/playwright-go-stealth"
	"github.com/playwright-community/playwright-go"

	"auto_blog_publisher/config"
)

const (
	mediumSignInURL   = "https://medium.com/m/signin"
	mediumNewStoryURL = "https://medium.com/new-story"

	editorTimeout = 15000
	buttonTimeout = 10000

	// Medium keeps only the first three tags typed into the editor.
	browserMaxTags = 3
)

var chromiumArgs = []string{
	"--disable-blink-features=AutomationControlled",
	"--disable-dev-shm-usage",
	"--no-first-run",
	"--no-default-browser-check",
	"--disable-extensions",
}

const browserUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.6099.234 Safari/537.36"

// The Medium editor DOM shifts between rollouts, so every field is
// located through a selector list tried in priority order.
var (
	titleSelectors = []string{
		"h1[data-default-value='Title']",
		"h1[placeholder='Title']",
		".graf--title",
		"[data-testid='storyTitle']",
		"h1",
	}
	storySelectors = []string{
		"div[data-default-value='Tell your story…']",
		"[data-testid='storyContent']",
		".graf--p",
		"div[contenteditable='true']",
	}
	publishSelectors = []string{
		"button[data-action='show-prepublish']",
		"button:has-text('Publish')",
	}
	confirmSelectors = []string{
		"button[data-testid='publishConfirmButton']",
		"button:has-text('Publish now')",
	}
	tagInputSelectors = []string{
		"input[placeholder='Add a tag...']",
		"div[data-testid='publishTags'] input",
	}
)

// firstVisible walks the selector list and returns the first locator
// that becomes visible within timeout milliseconds per attempt.
func firstVisible(page playwright.Page, selectors []string, timeout float64) (playwright.Locator, error) {
	var lastErr error
	for _, sel := range selectors {
		loc := page.Locator(sel).First()
		err := loc.WaitFor(playwright.LocatorWaitForOptions{
			Timeout: playwright.Float(timeout),
			State:   playwright.WaitForSelectorStateVisible,
		})
		if err == nil {
			return loc, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

// Browser publishes to Medium by driving the web editor in a real
// Chromium session. It signs in through Google on the first run and
// keeps the session in a storage state file so later runs skip the
// login form.
type Browser struct {
	Email    string
	Password string
	Headless bool
	StateDir string
	adapterLog
}

// InstallBrowser downloads the Chromium build Playwright drives. It is
// a no-op when the browser is already installed.
func InstallBrowser() error {
	return playwright.Install(&playwright.RunOptions{Browsers: []string{"chromium"}})
}

func (b *Browser) Name() string { return config.PlatformMediumBrowser }

func (b *Browser) Publish(ctx context.Context, p Payload) (Result, error) {
	pw, err := playwright.Run()
	if err != nil {
		return Result{}, &AutomationError{Step: "start playwright", Err: err}
	}
	defer pw.Stop()

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(b.Headless),
		Args:     chromiumArgs,
	})
	if err != nil {
		return Result{}, &AutomationError{Step: "launch chromium", Err: err}
	}
	defer browser.Close()

	stateFile := b.statePath()
	opts := playwright.BrowserNewContextOptions{
		UserAgent: playwright.String(browserUserAgent),
		Viewport:  &playwright.Size{Width: 1366, Height: 768},
	}
	if _, err := os.Stat(stateFile); err == nil {
		opts.StorageStatePath = playwright.String(stateFile)
		b.infof("loading saved session from %s", stateFile)
	}
	bctx, err := browser.NewContext(opts)
	if err != nil {
		return Result{}, &AutomationError{Step: "create browser context", Err: err}
	}
	defer bctx.Close()

	page, err := bctx.NewPage()
	if err != nil {
		return Result{}, &AutomationError{Step: "open page", Err: err}
	}
	if err := stealth.Inject(page); err != nil {
		b.infof("stealth injection failed: %v", err)
	}

	if err := b.signIn(page); err != nil {
		return Result{}, err
	}
	b.saveSession(bctx, stateFile)

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if err := b.compose(page, p); err != nil {
		return Result{}, err
	}
	b.saveSession(bctx, stateFile)

	return Result{Platform: b.Name(), URL: page.URL()}, nil
}

// signIn walks the Google authentication flow. A restored session that
// lands on the Medium home page skips the form entirely.
func (b *Browser) signIn(page playwright.Page) error {
	if _, err := page.Goto(mediumSignInURL); err != nil {
		return &AutomationError{Step: "open sign-in page", Err: err}
	}
	page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State: playwright.LoadStateNetworkidle,
	})
	if onMedium(page.URL()) {
		b.infof("session restored, sign-in skipped")
		return nil
	}

	google := page.Locator("button:has-text('Continue with Google')").First()
	if err := google.WaitFor(playwright.LocatorWaitForOptions{
		Timeout: playwright.Float(buttonTimeout),
		State:   playwright.WaitForSelectorStateVisible,
	}); err != nil {
		return &AutomationError{Step: "find google sign-in button", Err: err}
	}
	if err := google.Click(); err != nil {
		return &AutomationError{Step: "click google sign-in button", Err: err}
	}

	email := page.Locator("#identifierId")
	if err := email.WaitFor(playwright.LocatorWaitForOptions{
		Timeout: playwright.Float(buttonTimeout),
		State:   playwright.WaitForSelectorStateVisible,
	}); err != nil {
		return &AutomationError{Step: "wait for google email form", Err: err}
	}
	if err := email.Fill(b.Email); err != nil {
		return &AutomationError{Step: "fill google email", Err: err}
	}
	if err := page.Locator("#identifierNext").Click(); err != nil {
		return &AutomationError{Step: "submit google email", Err: err}
	}

	password := page.Locator("input[name='password']")
	if err := password.WaitFor(playwright.LocatorWaitForOptions{
		Timeout: playwright.Float(buttonTimeout),
		State:   playwright.WaitForSelectorStateVisible,
	}); err != nil {
		return &AutomationError{Step: "wait for google password form", Err: err}
	}
	if err := password.Fill(b.Password); err != nil {
		return &AutomationError{Step: "fill google password", Err: err}
	}
	if err := page.Locator("#passwordNext").Click(); err != nil {
		return &AutomationError{Step: "submit google password", Err: err}
	}

	if err := waitForMedium(page, 15*time.Second); err != nil {
		return err
	}
	b.infof("signed in to medium via google")
	return nil
}

// waitForMedium polls until the page has left the sign-in flow and
// landed back on medium.com.
func waitForMedium(page playwright.Page, wait time.Duration) error {
	deadline := time.Now().Add(wait)
	for time.Now().Before(deadline) {
		if onMedium(page.URL()) {
			return nil
		}
		time.Sleep(500 * time.Millisecond)
	}
	return &AutomationError{Step: "wait for medium redirect", Err: fmt.Errorf("still on %s", page.URL())}
}

func onMedium(url string) bool {
	return strings.Contains(url, "medium.com") &&
		!strings.Contains(url, "signin") &&
		!strings.Contains(url, "accounts.google.com")
}

// compose fills the story editor and walks the publish dialog.
func (b *Browser) compose(page playwright.Page, p Payload) error {
	if _, err := page.Goto(mediumNewStoryURL); err != nil {
		return &AutomationError{Step: "open editor", Err: err}
	}
	page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State: playwright.LoadStateNetworkidle,
	})

	title, err := firstVisible(page, titleSelectors, editorTimeout/float64(len(titleSelectors)))
	if err != nil {
		return &AutomationError{Step: "locate title field", Err: err}
	}
	if err := title.Click(); err != nil {
		return &AutomationError{Step: "focus title field", Err: err}
	}
	if err := page.Keyboard().Type(p.Title); err != nil {
		return &AutomationError{Step: "type title", Err: err}
	}

	story, err := firstVisible(page, storySelectors, buttonTimeout/float64(len(storySelectors)))
	if err != nil {
		return &AutomationError{Step: "locate story field", Err: err}
	}
	if err := story.Click(); err != nil {
		return &AutomationError{Step: "focus story field", Err: err}
	}
	if err := typeLines(page, p.Body); err != nil {
		return &AutomationError{Step: "type story body", Err: err}
	}

	b.addTags(page, p.Tags)

	publish, err := firstVisible(page, publishSelectors, buttonTimeout/float64(len(publishSelectors)))
	if err != nil {
		return &AutomationError{Step: "locate publish button", Err: err}
	}
	if err := publish.Click(); err != nil {
		return &AutomationError{Step: "click publish button", Err: err}
	}

	confirm, err := firstVisible(page, confirmSelectors, buttonTimeout/float64(len(confirmSelectors)))
	if err != nil {
		// Some editor variants publish on the first click and never
		// show a confirm dialog.
		b.infof("no confirm dialog, assuming published")
		return nil
	}
	if err := confirm.Click(); err != nil {
		return &AutomationError{Step: "confirm publish", Err: err}
	}
	page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State: playwright.LoadStateNetworkidle,
	})
	return nil
}

// typeLines types the body line by line, pressing Enter between lines
// so the editor creates real paragraph breaks.
func typeLines(page playwright.Page, body string) error {
	for i, line := range strings.Split(body, "\n") {
		if i > 0 {
			if err := page.Keyboard().Press("Enter"); err != nil {
				return err
			}
		}
		if line == "" {
			continue
		}
		if err := page.Keyboard().Type(line); err != nil {
			return err
		}
	}
	return nil
}

// addTags types the first few tags into the tag input. A missing input
// is logged and skipped; the post publishes without tags.
func (b *Browser) addTags(page playwright.Page, tags []string) {
	if len(tags) > browserMaxTags {
		tags = tags[:browserMaxTags]
	}
	input, err := firstVisible(page, tagInputSelectors, 3000)
	if err != nil {
		b.infof("tag input not found, skipping tags")
		return
	}
	for _, tag := range tags {
		if err := input.Click(); err != nil {
			b.infof("could not focus tag input: %v", err)
			return
		}
		if err := page.Keyboard().Type(tag); err != nil {
			b.infof("could not type tag %q: %v", tag, err)
			return
		}
		if err := page.Keyboard().Press("Enter"); err != nil {
			b.infof("could not submit tag %q: %v", tag, err)
			return
		}
	}
	b.infof("added %d tags", len(tags))
}

func (b *Browser) statePath() string {
	dir := b.StateDir
	if dir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, ".auto-blog-publisher")
		} else {
			dir = ".auto-blog-publisher"
		}
	}
	return filepath.Join(dir, "state.json")
}

// saveSession persists cookies and local storage so the next run can
// reuse the signed-in session. Failures are logged, not fatal.
func (b *Browser) saveSession(bctx playwright.BrowserContext, stateFile string) {
	state, err := bctx.StorageState()
	if err != nil {
		b.infof("could not read session state: %v", err)
		return
	}
	data, err := json.Marshal(state)
	if err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(stateFile), 0o755); err != nil {
		b.infof("could not create session dir: %v", err)
		return
	}
	if err := os.WriteFile(stateFile, data, 0o600); err != nil {
		b.infof("could not save session state: %v", err)
		return
	}
	b.infof("session state saved to %s", stateFile)
}
