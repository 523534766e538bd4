package browser

import (
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/hyperifyio/gopagepdf/internal/page"
)

// TabResult distinguishes a completed tab scan from one abandoned because
// the page's tab UI was unavailable or misbehaved. Entries collected before
// the failure are kept; the caller decides whether Unavailable degrades to
// "zero tabs".
type TabResult struct {
	Entries     []page.TabEntry
	Unavailable string
}

// OK reports whether the scan ran to completion.
func (r TabResult) OK() bool { return r.Unavailable == "" }

// tabStrip is the minimal surface of a live page the scan needs. Splitting
// it from Page keeps the walk testable without a browser.
type tabStrip interface {
	// count returns how many tab controls the page currently exposes.
	count() (int, error)
	// label re-resolves the control list and returns the i-th label.
	// ok is false when the control no longer exists at that index.
	label(i int) (label string, ok bool, err error)
	// activate clicks the i-th control, re-resolved fresh.
	activate(i int) error
	// panelText returns the text of the first visible tabpanel.
	panelText() (string, error)
	// settle waits for the panel swap after an activation.
	settle()
}

// DiscoverTabs enumerates [role="tab"] controls, activates each in document
// order, and captures the revealed panel text. Activations are strictly
// sequential: every click mutates the one shared page.
func (p *Page) DiscoverTabs() TabResult {
	return scanTabs(p)
}

// scanTabs walks the strip by index, re-resolving controls on every
// iteration so a control set replaced after activation is never read stale.
func scanTabs(strip tabStrip) TabResult {
	n, err := strip.count()
	if err != nil {
		return TabResult{Unavailable: err.Error()}
	}
	var entries []page.TabEntry
	for i := 0; i < n; i++ {
		label, ok, err := strip.label(i)
		if err != nil {
			return TabResult{Entries: entries, Unavailable: err.Error()}
		}
		if !ok {
			continue
		}
		if err := strip.activate(i); err != nil {
			return TabResult{Entries: entries, Unavailable: err.Error()}
		}
		strip.settle()
		text, err := strip.panelText()
		if err != nil {
			return TabResult{Entries: entries, Unavailable: err.Error()}
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		entries = append(entries, page.TabEntry{
			Label:   strings.TrimSpace(label),
			Content: text,
		})
	}
	return TabResult{Entries: entries}
}

const (
	tabCountJS = `document.querySelectorAll('[role="tab"]').length`

	panelTextJS = `(() => {
		const p = document.querySelector('[role="tabpanel"]:not([hidden])');
		return p ? p.innerText : "";
	})()`
)

func tabLabelJS(i int) string {
	return fmt.Sprintf(`(() => {
		const tabs = document.querySelectorAll('[role="tab"]');
		return tabs[%d] ? [true, tabs[%d].innerText] : [false, ""];
	})()`, i, i)
}

func tabClickJS(i int) string {
	return fmt.Sprintf(`(() => {
		const tabs = document.querySelectorAll('[role="tab"]');
		if (tabs[%d]) tabs[%d].click();
	})()`, i, i)
}

func (p *Page) count() (int, error) {
	var n int
	if err := chromedp.Run(p.ctx, chromedp.Evaluate(tabCountJS, &n)); err != nil {
		return 0, err
	}
	return n, nil
}

func (p *Page) label(i int) (string, bool, error) {
	var res []interface{}
	if err := chromedp.Run(p.ctx, chromedp.Evaluate(tabLabelJS(i), &res)); err != nil {
		return "", false, err
	}
	if len(res) != 2 {
		return "", false, nil
	}
	ok, _ := res[0].(bool)
	label, _ := res[1].(string)
	return label, ok, nil
}

func (p *Page) activate(i int) error {
	return chromedp.Run(p.ctx, chromedp.Evaluate(tabClickJS(i), nil))
}

func (p *Page) panelText() (string, error) {
	var text string
	if err := chromedp.Run(p.ctx, chromedp.Evaluate(panelTextJS, &text)); err != nil {
		return "", err
	}
	return text, nil
}

func (p *Page) settle() {
	time.Sleep(p.tabSettle)
}
