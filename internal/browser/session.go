package browser

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"slotchecker/pkg/config"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
)

// Session owns one headless Chrome process and one tab. A session belongs to a
// single check and is always closed before the check returns.
type Session struct {
	ctx         context.Context
	cancelTab   context.CancelFunc
	cancelAlloc context.CancelFunc
	closeOnce   sync.Once
}

// newSession launches a headless browser configured for the scheduling site.
// NoSandbox is required in containers without kernel sandbox support.
func newSession(parent context.Context, cfg config.Config) (*Session, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.WindowSize(1920, 1080),
		chromedp.UserAgent(config.UserAgent),
		chromedp.NoSandbox,
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Headless,
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(parent, opts...)

	tabCtx, cancelTab := chromedp.NewContext(
		allocCtx,
		chromedp.WithLogf(func(format string, args ...interface{}) {
			msg := fmt.Sprintf(format, args...)
			if (strings.Contains(msg, "error") || strings.Contains(msg, "failed")) &&
				!strings.Contains(msg, "cookiePart") &&
				!strings.Contains(msg, "unmarshal event") {
				log.Printf("🌐 %s", msg)
			}
		}),
	)

	s := &Session{
		ctx:         tabCtx,
		cancelTab:   cancelTab,
		cancelAlloc: cancelAlloc,
	}

	// Run with no actions starts the browser, so launch failures surface here
	// instead of on the first navigation
	if err := s.run(cfg.NavigationTimeout); err != nil {
		s.Close()
		return nil, fmt.Errorf("❌ Failed to launch browser: %v", err)
	}
	return s, nil
}

// Close tears down the tab and the browser process. Safe to call more than once.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.cancelTab()
		s.cancelAlloc()
		log.Println("Browser closed")
	})
}

// run executes the actions against the session's tab with a deadline
func (s *Session) run(timeout time.Duration, actions ...chromedp.Action) error {
	ctx, cancel := context.WithTimeout(s.ctx, timeout)
	defer cancel()
	return chromedp.Run(ctx, actions...)
}

// login drives the credential form on the login page and waits for the
// navigation it triggers. The username selector falls back to any text input
// when no field is named "username".
func (s *Session) login(cfg config.Config, username, password string) error {
	log.Println("Navigating to login page...")
	if err := s.run(cfg.NavigationTimeout, chromedp.Navigate(config.LoginURL)); err != nil {
		return fmt.Errorf("❌ Failed to load login page: %v", err)
	}

	if err := s.run(cfg.SelectorTimeout,
		chromedp.WaitVisible(`input[name="username"], input[type="text"]`, chromedp.ByQuery),
	); err != nil {
		return fmt.Errorf("❌ Login form did not appear: %v", err)
	}

	var usernameSel string
	if err := s.run(cfg.SelectorTimeout, chromedp.Evaluate(
		`document.querySelector('input[name="username"]') ? 'input[name="username"]' : 'input[type="text"]'`,
		&usernameSel,
	)); err != nil {
		return fmt.Errorf("❌ Failed to resolve username field: %v", err)
	}

	log.Println("Filling login form...")
	if err := s.run(cfg.SelectorTimeout,
		chromedp.Clear(usernameSel, chromedp.ByQuery),
		chromedp.SendKeys(usernameSel, username, chromedp.ByQuery),
		chromedp.Clear(`input[type="password"]`, chromedp.ByQuery),
		chromedp.SendKeys(`input[type="password"]`, password, chromedp.ByQuery),
	); err != nil {
		return fmt.Errorf("❌ Failed to fill login form: %v", err)
	}

	if err := s.run(cfg.NavigationTimeout, submitAndWait(`button[type="submit"]`)); err != nil {
		return fmt.Errorf("❌ Login navigation did not complete: %v", err)
	}

	// A page that still shows a password field after submit means the site
	// re-rendered the login form, i.e. the credentials were rejected. When the
	// probe itself fails the outcome is indeterminate and the check proceeds;
	// an unauthenticated session then fails at the slot fetch instead.
	var rejected bool
	if err := s.run(cfg.SelectorTimeout, chromedp.Evaluate(
		`document.querySelector('input[type="password"]') !== null`,
		&rejected,
	)); err != nil {
		log.Printf("⚠️ Could not verify login state: %v", err)
		return nil
	}
	if rejected {
		return &UpstreamError{Message: "login rejected: credentials were not accepted"}
	}
	return nil
}

// submitAndWait clicks the submit control and blocks until the page load
// triggered by it fires. The listener is attached before the click so the
// event cannot be missed.
func submitAndWait(sel string) chromedp.ActionFunc {
	return func(ctx context.Context) error {
		loaded := make(chan struct{}, 1)
		lctx, cancel := context.WithCancel(ctx)
		defer cancel()
		chromedp.ListenTarget(lctx, func(ev interface{}) {
			if _, ok := ev.(*page.EventLoadEventFired); ok {
				select {
				case loaded <- struct{}{}:
				default:
				}
			}
		})

		if err := chromedp.Click(sel, chromedp.ByQuery).Do(ctx); err != nil {
			return err
		}

		select {
		case <-loaded:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// openSchedule navigates to the appointment group's schedule page and lets the
// client-side rendering settle before anything touches the page
func (s *Session) openSchedule(cfg config.Config, appd string) error {
	url := fmt.Sprintf(config.ScheduleURLTemplate, appd)
	log.Printf("Navigating to schedule page: %s", url)
	return s.run(cfg.NavigationTimeout+cfg.SettleDelay,
		chromedp.Navigate(url),
		chromedp.Sleep(cfg.SettleDelay),
	)
}

const fetchScript = `(async () => {
	try {
		const response = await fetch(%q, {
			method: 'POST',
			headers: {
				'Content-Type': 'application/json',
				'Accept': 'application/json'
			},
			credentials: 'include'
		});
		if (!response.ok) {
			return { error: 'HTTP ' + response.status, status: response.status };
		}
		return await response.json();
	} catch (err) {
		return { error: err.message };
	}
})()`

// fetchScheduleEntries calls the slot API from inside the authenticated page,
// so the site's session cookies ride along. Non-OK statuses and fetch errors
// come back as a sentinel object rather than a raised failure.
func (s *Session) fetchScheduleEntries(cfg config.Config, appd, cacheString string) (interface{}, error) {
	apiURL := fmt.Sprintf(config.SlotsAPITemplate, appd, cacheString)

	var payload interface{}
	err := s.run(cfg.NavigationTimeout,
		chromedp.Evaluate(fmt.Sprintf(fetchScript, apiURL), &payload,
			func(p *runtime.EvaluateParams) *runtime.EvaluateParams {
				return p.WithAwaitPromise(true)
			},
		),
	)
	if err != nil {
		return nil, fmt.Errorf("❌ Slot API call failed: %v", err)
	}
	return payload, nil
}
