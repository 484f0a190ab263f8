package browser

import (
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Manager owns the playwright runtime and one Chromium instance. Pages share
// a single context with a real user agent so JS-heavy boards render like a
// normal visitor.
type Manager struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	ctx     playwright.BrowserContext
}

func New(headless bool) (*Manager, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("start playwright: %w", err)
	}

	b, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(headless),
		Args: []string{
			"--disable-blink-features=AutomationControlled",
			"--disable-dev-shm-usage",
			"--no-sandbox",
		},
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("launch chromium: %w", err)
	}

	ctx, err := b.NewContext(playwright.BrowserNewContextOptions{
		UserAgent: playwright.String(userAgent),
		Viewport:  &playwright.Size{Width: 1920, Height: 1080},
	})
	if err != nil {
		_ = b.Close()
		_ = pw.Stop()
		return nil, fmt.Errorf("new browser context: %w", err)
	}

	return &Manager{pw: pw, browser: b, ctx: ctx}, nil
}

func (m *Manager) NewPage() (playwright.Page, error) {
	return m.ctx.NewPage()
}

func (m *Manager) Close() error {
	if m == nil {
		return nil
	}
	if m.ctx != nil {
		_ = m.ctx.Close()
	}
	if m.browser != nil {
		_ = m.browser.Close()
	}
	if m.pw != nil {
		return m.pw.Stop()
	}
	return nil
}

// Navigate loads a URL and waits for the DOM, then pauses like a reader
// would before the caller starts poking at the page.
func Navigate(page playwright.Page, url string, delay time.Duration) error {
	if _, err := page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(60000),
	}); err != nil {
		return fmt.Errorf("goto %s: %w", url, err)
	}
	time.Sleep(delay)
	return nil
}

// ScrollPage scrolls to the bottom n times so lazy-loaded cards render.
func ScrollPage(page playwright.Page, times int, delay time.Duration) {
	for i := 0; i < times; i++ {
		_, _ = page.Evaluate("window.scrollTo(0, document.body.scrollHeight)")
		time.Sleep(delay)
	}
}
