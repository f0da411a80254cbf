// Package browser implements the scraper.Page contract with a headless
// Chrome driven over the DevTools protocol.
package browser

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/chromedp"

	"github.com/miguelgonzalez9/Web-Scrapping-WB/internal/scraper"
)

const (
	// opTimeout bounds the non-wait operations (reads, clicks) so a hung
	// browser cannot stall the batch indefinitely.
	opTimeout = 10 * time.Second
	// navigateTimeout bounds page navigations.
	navigateTimeout = 30 * time.Second
	// pollInterval is the sampling period of text-condition waits.
	pollInterval = 100 * time.Millisecond
	// settleDelay is the quiet period WaitIdle grants asynchronously
	// rendered content after an interaction.
	settleDelay = 1500 * time.Millisecond
)

// Options configures the browser session.
type Options struct {
	// Headless runs Chrome without a window; turn it off to perform the
	// initial interactive login.
	Headless bool
	// UserDataDir points at a persistent Chrome profile so the operator's
	// authenticated session survives across runs.
	UserDataDir string
	// ExecPath overrides the Chrome binary location.
	ExecPath string
	// UserAgent overrides the default user agent.
	UserAgent string
}

// Session is one browser tab implementing scraper.Page. It is not safe
// for concurrent use; the batch driver processes one person at a time.
type Session struct {
	ctx     context.Context
	cancels []context.CancelFunc
}

var _ scraper.Page = (*Session)(nil)

// NewSession launches Chrome and opens a blank tab.
func NewSession(ctx context.Context, opts Options) (*Session, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if opts.UserDataDir != "" {
		allocOpts = append(allocOpts, chromedp.UserDataDir(opts.UserDataDir))
	}
	if opts.UserAgent != "" {
		allocOpts = append(allocOpts, chromedp.UserAgent(opts.UserAgent))
	}
	if opts.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.ExecPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)

	s := &Session{
		ctx:     browserCtx,
		cancels: []context.CancelFunc{cancelBrowser, cancelAlloc},
	}
	if err := chromedp.Run(browserCtx, chromedp.Navigate("about:blank")); err != nil {
		s.Close()
		return nil, fmt.Errorf("starting chrome: %w", err)
	}
	return s, nil
}

// Close shuts the browser down.
func (s *Session) Close() {
	for _, cancel := range s.cancels {
		cancel()
	}
}

// by picks the query strategy for a locator: XPath for expressions
// starting with "//" or "(", CSS otherwise.
func by(locator string) chromedp.QueryOption {
	if strings.HasPrefix(locator, "//") || strings.HasPrefix(locator, "(") {
		return chromedp.BySearch
	}
	return chromedp.ByQuery
}

// run executes actions on the session's browser context, bounded by
// timeout and cancellable through the caller's context. A deadline
// expiry is reported as scraper.ErrTimeout.
func (s *Session) run(ctx context.Context, timeout time.Duration, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithTimeout(s.ctx, timeout)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	err := chromedp.Run(runCtx, actions...)
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return scraper.ErrTimeout
	}
	return err
}

func (s *Session) Navigate(ctx context.Context, url string) error {
	return s.run(ctx, navigateTimeout,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
}

func (s *Session) Fill(ctx context.Context, locator, text string) error {
	return s.run(ctx, opTimeout,
		chromedp.WaitVisible(locator, by(locator)),
		chromedp.SetValue(locator, text, by(locator)),
	)
}

func (s *Session) Press(ctx context.Context, key string) error {
	return s.run(ctx, opTimeout, chromedp.KeyEvent(key))
}

func (s *Session) Click(ctx context.Context, locator string) error {
	return s.run(ctx, opTimeout, chromedp.Click(locator, by(locator), chromedp.NodeVisible))
}

func (s *Session) ClickAll(ctx context.Context, locator string) error {
	var nodes []*cdp.Node
	err := s.run(ctx, opTimeout, chromedp.Nodes(locator, &nodes, by(locator), chromedp.AtLeast(0)))
	if err != nil {
		return err
	}
	for _, node := range nodes {
		// individual matches may have gone stale; skip and continue
		_ = s.run(ctx, opTimeout, chromedp.MouseClickNode(node))
	}
	return nil
}

func (s *Session) WaitVisible(ctx context.Context, locator string, timeout time.Duration) error {
	if err := s.run(ctx, timeout, chromedp.WaitVisible(locator, by(locator))); err != nil {
		if errors.Is(err, scraper.ErrTimeout) {
			return fmt.Errorf("%w: waiting for %q", scraper.ErrTimeout, locator)
		}
		return err
	}
	return nil
}

func (s *Session) WaitTextContains(ctx context.Context, locator, want string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		text, ok, err := s.Text(ctx, locator)
		if err == nil && ok && strings.Contains(text, want) {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("%w: waiting for text %q in %q", scraper.ErrTimeout, want, locator)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pollInterval):
		}
	}
}

func (s *Session) WaitIdle(ctx context.Context, timeout time.Duration) error {
	delay := settleDelay
	if timeout > 0 && timeout < delay {
		delay = timeout
	}
	return s.run(ctx, timeout, chromedp.Sleep(delay))
}

func (s *Session) Count(ctx context.Context, locator string) (int, error) {
	var nodes []*cdp.Node
	err := s.run(ctx, opTimeout, chromedp.Nodes(locator, &nodes, by(locator), chromedp.AtLeast(0)))
	if err != nil {
		return 0, err
	}
	return len(nodes), nil
}

func (s *Session) Text(ctx context.Context, locator string) (string, bool, error) {
	n, err := s.Count(ctx, locator)
	if err != nil {
		return "", false, err
	}
	if n == 0 {
		return "", false, nil
	}
	var text string
	if err := s.run(ctx, opTimeout, chromedp.Text(locator, &text, by(locator))); err != nil {
		return "", false, err
	}
	return strings.TrimSpace(text), true, nil
}

func (s *Session) HTML(ctx context.Context, locator string) (string, error) {
	var html string
	err := s.run(ctx, opTimeout, chromedp.OuterHTML(locator, &html, by(locator)))
	return html, err
}

func (s *Session) SelectOption(ctx context.Context, locator, value string) error {
	return s.run(ctx, opTimeout, chromedp.SetValue(locator, value, by(locator)))
}

func (s *Session) ScreenshotElement(ctx context.Context, locator, path string) error {
	var buf []byte
	if err := s.run(ctx, opTimeout, chromedp.Screenshot(locator, &buf, by(locator))); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0o644)
}

func (s *Session) Location(ctx context.Context) (string, error) {
	var url string
	err := s.run(ctx, opTimeout, chromedp.Location(&url))
	return url, err
}
