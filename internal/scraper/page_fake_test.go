package scraper

import (
	"context"
	"strings"
	"time"
)

// fakePage is a scripted Page implementation. Its DOM is a plain HTML
// string swapped by click hooks, which is enough to model tab switches
// and pagination without a browser.
type fakePage struct {
	html     string
	location string

	texts     map[string]string
	counts    map[string]int
	visible   map[string]bool
	failWaits map[string]error

	onClick map[string]func(p *fakePage)

	clicks      []string
	fills       map[string]string
	selected    map[string]string
	screenshots []string
}

func newFakePage() *fakePage {
	return &fakePage{
		texts:     map[string]string{},
		counts:    map[string]int{},
		visible:   map[string]bool{},
		failWaits: map[string]error{},
		onClick:   map[string]func(p *fakePage){},
		fills:     map[string]string{},
		selected:  map[string]string{},
	}
}

func (p *fakePage) Navigate(ctx context.Context, url string) error {
	p.location = url
	return nil
}

func (p *fakePage) Fill(ctx context.Context, locator, text string) error {
	p.fills[locator] = text
	return nil
}

func (p *fakePage) Press(ctx context.Context, key string) error { return nil }

func (p *fakePage) Click(ctx context.Context, locator string) error {
	p.clicks = append(p.clicks, locator)
	if hook, ok := p.onClick[locator]; ok {
		hook(p)
	}
	return nil
}

func (p *fakePage) ClickAll(ctx context.Context, locator string) error {
	return p.Click(ctx, locator)
}

func (p *fakePage) WaitVisible(ctx context.Context, locator string, timeout time.Duration) error {
	if err, ok := p.failWaits[locator]; ok {
		return err
	}
	if p.visible[locator] || p.counts[locator] > 0 {
		return nil
	}
	return ErrTimeout
}

func (p *fakePage) WaitTextContains(ctx context.Context, locator, want string, timeout time.Duration) error {
	if err, ok := p.failWaits[locator]; ok {
		return err
	}
	if strings.Contains(p.texts[locator], want) {
		return nil
	}
	return ErrTimeout
}

func (p *fakePage) WaitIdle(ctx context.Context, timeout time.Duration) error { return nil }

func (p *fakePage) Count(ctx context.Context, locator string) (int, error) {
	return p.counts[locator], nil
}

func (p *fakePage) Text(ctx context.Context, locator string) (string, bool, error) {
	text, ok := p.texts[locator]
	return text, ok, nil
}

func (p *fakePage) HTML(ctx context.Context, locator string) (string, error) {
	return p.html, nil
}

func (p *fakePage) SelectOption(ctx context.Context, locator, value string) error {
	p.selected[locator] = value
	return nil
}

func (p *fakePage) ScreenshotElement(ctx context.Context, locator, path string) error {
	p.screenshots = append(p.screenshots, path)
	return nil
}

func (p *fakePage) Location(ctx context.Context) (string, error) {
	return p.location, nil
}
