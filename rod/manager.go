package rod

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultMaxPages is the number of app pages a browser renders before it
// is replaced.
const DefaultMaxPages = 50

// RecycleFunc is called after every recycle attempt with the number of
// pages the outgoing browser rendered. err is non-nil when the replacement
// failed to launch; the old browser then stays in service.
type RecycleFunc func(pages int64, err error)

// BrowserManager owns the headless browser that renders app pages and
// replaces it after a fixed number of pages. Chrome's resident memory only
// grows while it stays up, even when every page is closed.
//
// BrowserManager is safe for concurrent use.
type BrowserManager struct {
	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher

	pages    atomic.Int64
	recycles atomic.Int64
	closed   atomic.Bool

	maxPages  int64
	images    bool
	onRecycle RecycleFunc
}

// ManagerOption configures a BrowserManager.
type ManagerOption func(*BrowserManager)

// WithMaxPages sets the number of pages before the browser is recycled.
// Zero or less disables recycling.
func WithMaxPages(n int64) ManagerOption {
	return func(bm *BrowserManager) {
		bm.maxPages = n
	}
}

// WithImages makes the browser load images. App pages are parsed for text
// only, so images are skipped by default.
func WithImages() ManagerOption {
	return func(bm *BrowserManager) {
		bm.images = true
	}
}

// WithRecycleHook registers fn to observe browser recycling.
func WithRecycleHook(fn RecycleFunc) ManagerOption {
	return func(bm *BrowserManager) {
		bm.onRecycle = fn
	}
}

// NewBrowserManager launches a headless Chrome. Close must be called when
// the BrowserManager is no longer needed.
func NewBrowserManager(opts ...ManagerOption) (*BrowserManager, error) {
	bm := &BrowserManager{maxPages: DefaultMaxPages}
	for _, opt := range opts {
		opt(bm)
	}

	browser, l, err := bm.launch()
	if err != nil {
		return nil, err
	}
	bm.browser, bm.launcher = browser, l

	return bm, nil
}

// Browser returns the browser to open the next page in, replacing it first
// when it has rendered its share of pages. Callers report each rendered
// page with IncrementPageCount.
func (bm *BrowserManager) Browser() *rod.Browser {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.maxPages > 0 && bm.pages.Load() >= bm.maxPages {
		bm.recycle()
	}

	return bm.browser
}

// IncrementPageCount records one rendered page.
func (bm *BrowserManager) IncrementPageCount() {
	bm.pages.Add(1)
}

// Recycles returns how many times the browser has been replaced.
func (bm *BrowserManager) Recycles() int64 {
	return bm.recycles.Load()
}

// Close shuts the browser down. Close is safe to call multiple times.
func (bm *BrowserManager) Close() error {
	if !bm.closed.CompareAndSwap(false, true) {
		return nil
	}

	bm.mu.Lock()
	defer bm.mu.Unlock()

	err := shutdown(bm.browser, bm.launcher)
	bm.browser, bm.launcher = nil, nil
	return err
}

// LauncherPID returns the process ID of the current browser launcher, or
// zero once closed.
func (bm *BrowserManager) LauncherPID() int {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	if bm.launcher == nil {
		return 0
	}
	return bm.launcher.PID()
}

// recycle swaps in a fresh browser. Must be called with mu held.
func (bm *BrowserManager) recycle() {
	pages := bm.pages.Load()

	browser, l, err := bm.launch()
	if err == nil {
		_ = shutdown(bm.browser, bm.launcher)
		bm.browser, bm.launcher = browser, l
		bm.pages.Store(0)
		bm.recycles.Add(1)
	}

	if bm.onRecycle != nil {
		bm.onRecycle(pages, err)
	}
}

func (bm *BrowserManager) launch() (*rod.Browser, *launcher.Launcher, error) {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Leakless(true).
		Headless(true)
	if !bm.images {
		l = l.Set("blink-settings", "imagesEnabled=false")
	}

	u, err := l.Launch()
	if err != nil {
		return nil, nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, nil, fmt.Errorf("connecting to browser: %w", err)
	}

	return browser, l, nil
}

func shutdown(browser *rod.Browser, l *launcher.Launcher) error {
	var err error
	if browser != nil {
		err = browser.Close()
	}
	if l != nil {
		l.Kill()
	}
	return err
}
