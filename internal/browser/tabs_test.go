package browser

import (
	"errors"
	"reflect"
	"testing"

	"github.com/hyperifyio/gopagepdf/internal/page"
)

// fakeStrip scripts a tab strip without a browser. Activating tab i makes
// panels[i] the visible panel text.
type fakeStrip struct {
	labels      []string
	panels      []string
	missing     map[int]bool
	countErr    error
	activateErr map[int]error

	active  int
	clicked []int
}

func (f *fakeStrip) count() (int, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return len(f.labels), nil
}

func (f *fakeStrip) label(i int) (string, bool, error) {
	if f.missing[i] {
		return "", false, nil
	}
	return f.labels[i], true, nil
}

func (f *fakeStrip) activate(i int) error {
	if err := f.activateErr[i]; err != nil {
		return err
	}
	f.active = i
	f.clicked = append(f.clicked, i)
	return nil
}

func (f *fakeStrip) panelText() (string, error) { return f.panels[f.active], nil }

func (f *fakeStrip) settle() {}

func TestScanTabs_NoControlsIsSuccessWithZeroEntries(t *testing.T) {
	res := scanTabs(&fakeStrip{})
	if !res.OK() {
		t.Fatalf("expected success, got unavailable: %q", res.Unavailable)
	}
	if len(res.Entries) != 0 {
		t.Fatalf("entries = %#v, want none", res.Entries)
	}
}

func TestScanTabs_CapturesEachRevealedPanel(t *testing.T) {
	f := &fakeStrip{
		labels: []string{" Overview ", "Pricing"},
		panels: []string{"overview text", "pricing text"},
	}
	res := scanTabs(f)
	if !res.OK() {
		t.Fatalf("unexpected unavailable: %q", res.Unavailable)
	}
	want := []page.TabEntry{
		{Label: "Overview", Content: "overview text"},
		{Label: "Pricing", Content: "pricing text"},
	}
	if !reflect.DeepEqual(res.Entries, want) {
		t.Fatalf("entries = %#v, want %#v", res.Entries, want)
	}
	if !reflect.DeepEqual(f.clicked, []int{0, 1}) {
		t.Fatalf("activation order = %v, want sequential document order", f.clicked)
	}
}

func TestScanTabs_EmptyPanelSkipsEntry(t *testing.T) {
	f := &fakeStrip{
		labels: []string{"First", "Second"},
		panels: []string{"content", "   \n  "},
	}
	res := scanTabs(f)
	if !res.OK() {
		t.Fatalf("unexpected unavailable: %q", res.Unavailable)
	}
	if len(res.Entries) != 1 || res.Entries[0].Label != "First" {
		t.Fatalf("entries = %#v, want only the first tab", res.Entries)
	}
}

func TestScanTabs_StaleIndexIsSkipped(t *testing.T) {
	f := &fakeStrip{
		labels:  []string{"A", "B", "C"},
		panels:  []string{"a", "b", "c"},
		missing: map[int]bool{1: true},
	}
	res := scanTabs(f)
	if !res.OK() {
		t.Fatalf("unexpected unavailable: %q", res.Unavailable)
	}
	if len(res.Entries) != 2 || res.Entries[0].Label != "A" || res.Entries[1].Label != "C" {
		t.Fatalf("entries = %#v", res.Entries)
	}
}

func TestScanTabs_FailureReportsUnavailableKeepingPartialEntries(t *testing.T) {
	f := &fakeStrip{
		labels:      []string{"A", "B"},
		panels:      []string{"a", "b"},
		activateErr: map[int]error{1: errors.New("node detached")},
	}
	res := scanTabs(f)
	if res.OK() {
		t.Fatalf("expected unavailable result")
	}
	if res.Unavailable != "node detached" {
		t.Fatalf("unavailable = %q", res.Unavailable)
	}
	if len(res.Entries) != 1 || res.Entries[0].Label != "A" {
		t.Fatalf("entries = %#v, want the tab scanned before the failure", res.Entries)
	}
}

func TestScanTabs_CountFailureIsUnavailable(t *testing.T) {
	res := scanTabs(&fakeStrip{countErr: errors.New("session gone")})
	if res.OK() || res.Unavailable != "session gone" {
		t.Fatalf("result = %#v", res)
	}
}
