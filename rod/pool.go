package rod

import (
	"fmt"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultMaxPages is the number of pages rendered before the browser is
// replaced. Chrome's memory baseline grows with use and never returns to its
// initial level, so long-running servers restart it periodically.
const DefaultMaxPages = 75

// browserPool owns one headless browser and swaps it for a fresh one after
// maxPages renders. Pages in flight keep the browser they started on; the
// old process is killed once its last page is released.
type browserPool struct {
	mu       sync.Mutex
	current  *browserInstance
	maxPages int
	closed   bool
}

type browserInstance struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	rendered int
	inFlight int
	retired  bool
}

func newBrowserPool(maxPages int) (*browserPool, error) {
	inst, err := launchBrowser()
	if err != nil {
		return nil, err
	}
	return &browserPool{current: inst, maxPages: maxPages}, nil
}

func launchBrowser() (*browserInstance, error) {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}
	return &browserInstance{browser: browser, launcher: l}, nil
}

// acquire returns the browser to render the next page on. It reports false
// once the pool is closed.
func (p *browserPool) acquire() (*browserInstance, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil, false
	}

	if p.current.rendered >= p.maxPages {
		// A failed relaunch keeps the old browser in service.
		if fresh, err := launchBrowser(); err == nil {
			old := p.current
			old.retired = true
			p.current = fresh
			if old.inFlight == 0 {
				old.shutdown()
			}
		}
	}
	p.current.rendered++
	p.current.inFlight++
	return p.current, true
}

func (p *browserPool) release(inst *browserInstance) {
	p.mu.Lock()
	defer p.mu.Unlock()
	inst.inFlight--
	if inst.retired && inst.inFlight == 0 {
		inst.shutdown()
	}
}

// launcherPID reports the process id of the active browser launcher.
func (p *browserPool) launcherPID() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil || p.current.launcher == nil {
		return 0
	}
	return p.current.launcher.PID()
}

func (p *browserPool) close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	return p.current.shutdown()
}

func (b *browserInstance) shutdown() error {
	var err error
	if b.browser != nil {
		err = b.browser.Close()
		b.browser = nil
	}
	if b.launcher != nil {
		b.launcher.Kill()
		b.launcher = nil
	}
	return err
}
