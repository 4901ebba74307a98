package store

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/heartmarshall/nivara-backend/internal/domain"
)

const testProfile = "profile-1"

var testNow = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestStore(t *testing.T, b *fakeBackend) (*Store, *clockwork.FakeClock) {
	t.Helper()
	clock := clockwork.NewFakeClockAt(testNow)
	s, err := New(context.Background(), b, testProfile, WithClock(clock), WithLogger(testLogger()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s, clock
}

// ---------------------------------------------------------------------------
// Initialization
// ---------------------------------------------------------------------------

func TestNew_SeedsAndPersistsEmptyProfile(t *testing.T) {
	t.Parallel()
	b := newFakeBackend()

	s, _ := newTestStore(t, b)

	if got := len(s.History()); got != 1 {
		t.Errorf("history len = %d, want 1", got)
	}
	if got := len(s.Tracker()); got != 3 {
		t.Errorf("tracker len = %d, want 3", got)
	}
	if got := len(s.CommunityPosts()); got != 5 {
		t.Errorf("community len = %d, want 5", got)
	}
	if got := s.Cart(); len(got) != 0 {
		t.Errorf("cart = %v, want empty", got)
	}
	if got := s.Preferences(); got != domain.DefaultPreferences() {
		t.Errorf("preferences = %+v, want defaults", got)
	}

	for _, key := range []string{KeyHistory, KeyTracker, KeyCommunity} {
		if _, ok := b.raw(testProfile, key); !ok {
			t.Errorf("seed for %s was not persisted", key)
		}
	}
	if _, ok := b.raw(testProfile, KeyCart); ok {
		t.Error("cart must not be written on load")
	}
}

func TestNew_LoadsExistingWithoutReseeding(t *testing.T) {
	t.Parallel()
	b := newFakeBackend()
	b.set(testProfile, KeyHistory, `[]`)
	b.set(testProfile, KeyTracker, `[{"id":7,"plant":"Fern","progress":30,"isDone":false}]`)
	b.set(testProfile, KeyCommunity, `[]`)

	s, _ := newTestStore(t, b)

	if got := len(s.History()); got != 0 {
		t.Errorf("history len = %d, want 0 (empty array is not absent)", got)
	}
	tracker := s.Tracker()
	if len(tracker) != 1 || tracker[0].Plant != "Fern" {
		t.Errorf("tracker = %+v", tracker)
	}
	for _, key := range []string{KeyHistory, KeyTracker, KeyCommunity} {
		if n := b.putCount(key); n != 0 {
			t.Errorf("%s written %d times on load, want 0", key, n)
		}
	}
}

func TestNew_CorruptCollectionResetsToEmpty(t *testing.T) {
	t.Parallel()
	b := newFakeBackend()
	b.set(testProfile, KeyHistory, `{not json`)
	b.set(testProfile, KeyTracker, `"a string"`)
	b.set(testProfile, KeyCommunity, `null`)
	b.set(testProfile, KeyCart, `[1,`)
	b.set(testProfile, KeyPreferences, `{{`)

	s, _ := newTestStore(t, b)

	if len(s.History()) != 0 || len(s.Tracker()) != 0 || len(s.CommunityPosts()) != 0 || len(s.Cart()) != 0 {
		t.Fatalf("corrupt collections must load empty, got %+v", s.Snapshot())
	}
	if s.Preferences() != domain.DefaultPreferences() {
		t.Errorf("preferences = %+v, want defaults", s.Preferences())
	}
	if raw, _ := b.raw(testProfile, KeyHistory); raw != `{not json` {
		t.Errorf("corrupt value must be left as is until the next mutation, got %s", raw)
	}
}

func TestNew_CorruptionIsLogged(t *testing.T) {
	t.Parallel()
	b := newFakeBackend()
	b.set(testProfile, KeyTracker, `oops`)

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	if _, err := New(context.Background(), b, testProfile, WithLogger(log)); err != nil {
		t.Fatalf("New: %v", err)
	}
	if !strings.Contains(buf.String(), KeyTracker) || !strings.Contains(buf.String(), "level=WARN") {
		t.Errorf("expected a warning naming %s, got %q", KeyTracker, buf.String())
	}
}

func TestNew_CartRepair(t *testing.T) {
	t.Parallel()
	b := newFakeBackend()
	b.set(testProfile, KeyCart, `[3, 99, "2", 1, 1.5, 0, 3, 8, null]`)

	s, _ := newTestStore(t, b)

	want := []int{3, 1, 3, 8}
	if got := s.Cart(); !reflect.DeepEqual(got, want) {
		t.Errorf("Cart() = %v, want %v", got, want)
	}
}

func TestNew_BackendReadErrorIsFatal(t *testing.T) {
	t.Parallel()
	b := newFakeBackend()
	b.failGet = true

	_, err := New(context.Background(), b, testProfile, WithLogger(testLogger()))
	if !errors.Is(err, errBackendDown) {
		t.Fatalf("err = %v, want errBackendDown", err)
	}
}

func TestNew_SeedWriteErrorIsFatal(t *testing.T) {
	t.Parallel()
	b := newFakeBackend()
	b.failKeys[KeyCommunity] = true

	_, err := New(context.Background(), b, testProfile, WithLogger(testLogger()))
	if !errors.Is(err, errBackendDown) {
		t.Fatalf("err = %v, want errBackendDown", err)
	}
}

func TestStore_ZeroValuePanics(t *testing.T) {
	t.Parallel()

	defer func() {
		r := recover()
		if r == nil || !strings.Contains(r.(string), "used before initialization") {
			t.Fatalf("recover() = %v, want initialization panic", r)
		}
	}()

	var s Store
	_ = s.History()
}

// ---------------------------------------------------------------------------
// History
// ---------------------------------------------------------------------------

func TestAddHistoryRecord_PrependsAndPersists(t *testing.T) {
	t.Parallel()
	b := newFakeBackend()
	s, _ := newTestStore(t, b)
	before := len(s.History())

	rec, err := s.AddHistoryRecord(context.Background(), domain.HistoryDraft{
		Plant:      "Unknown Plant",
		Diagnosis:  "Leaf Blight",
		Confidence: 92,
		Treatment:  []string{"Remove leaves."},
	})
	if err != nil {
		t.Fatalf("AddHistoryRecord: %v", err)
	}

	history := s.History()
	if len(history) != before+1 {
		t.Fatalf("history len = %d, want %d", len(history), before+1)
	}
	if history[0].ID != rec.ID || history[0].Diagnosis != "Leaf Blight" || history[0].Confidence != 92 {
		t.Errorf("first record = %+v", history[0])
	}
	if rec.Date != "Oct 18, 2026" {
		t.Errorf("Date = %q, want Oct 18, 2026", rec.Date)
	}
	if rec.ID != "1792324800000" {
		t.Errorf("ID = %q, want the clock's unix millis", rec.ID)
	}
	if rec.Symptoms == nil {
		t.Error("nil symptoms must be stored as an empty list")
	}

	raw, _ := b.raw(testProfile, KeyHistory)
	if !strings.Contains(raw, "Leaf Blight") {
		t.Errorf("persisted history does not contain the new record: %s", raw)
	}
}

func TestStore_IDsUniqueWithinOneMillisecond(t *testing.T) {
	t.Parallel()
	s, _ := newTestStore(t, newFakeBackend())
	ctx := context.Background()

	a, err := s.AddTrackerItem(ctx, domain.TrackerDraft{Plant: "A"})
	if err != nil {
		t.Fatal(err)
	}
	p, err := s.AddCommunityPost(ctx, domain.PostDraft{Title: "B"})
	if err != nil {
		t.Fatal(err)
	}
	c, err := s.AddTrackerItem(ctx, domain.TrackerDraft{Plant: "C"})
	if err != nil {
		t.Fatal(err)
	}

	if a.ID == c.ID || a.ID == p.ID || p.ID == c.ID {
		t.Errorf("ids collide: %d %d %d", a.ID, p.ID, c.ID)
	}
	if !(a.ID < p.ID && p.ID < c.ID) {
		t.Errorf("ids not increasing: %d %d %d", a.ID, p.ID, c.ID)
	}
}

func TestStore_IDsStayAboveLoadedIDs(t *testing.T) {
	t.Parallel()
	b := newFakeBackend()
	future := testNow.Add(time.Hour).UnixMilli()
	b.set(testProfile, KeyTracker, `[{"id":`+strconv.FormatInt(future, 10)+`}]`)

	s, _ := newTestStore(t, b)
	item, err := s.AddTrackerItem(context.Background(), domain.TrackerDraft{})
	if err != nil {
		t.Fatal(err)
	}
	if item.ID <= future {
		t.Errorf("id %d must exceed loaded id %d", item.ID, future)
	}
}

func TestStore_HistoryAccessorReturnsCopy(t *testing.T) {
	t.Parallel()
	s, _ := newTestStore(t, newFakeBackend())

	h := s.History()
	h[0].Symptoms[0] = "mutated"
	h[0].Diagnosis = "mutated"

	again := s.History()
	if again[0].Diagnosis == "mutated" || again[0].Symptoms[0] == "mutated" {
		t.Error("History() leaked internal state")
	}
}

// ---------------------------------------------------------------------------
// Tracker
// ---------------------------------------------------------------------------

func TestUpdateTrackerItem_UnknownIDIsNoOp(t *testing.T) {
	t.Parallel()
	b := newFakeBackend()
	s, _ := newTestStore(t, b)
	before := s.Tracker()
	writes := b.putCount(KeyTracker)

	progress := 99
	found, err := s.UpdateTrackerItem(context.Background(), 424242, domain.TrackerUpdate{Progress: &progress})
	if err != nil {
		t.Fatalf("UpdateTrackerItem: %v", err)
	}
	if found {
		t.Error("found = true for unknown id")
	}
	if after := s.Tracker(); !reflect.DeepEqual(before, after) {
		t.Errorf("collection changed:\nbefore %+v\nafter  %+v", before, after)
	}
	if b.putCount(KeyTracker) != writes+1 {
		t.Error("collection must be persisted even when nothing matched")
	}
}

func TestUpdateTrackerItem_ShallowMerge(t *testing.T) {
	t.Parallel()
	s, _ := newTestStore(t, newFakeBackend())

	sched := "Twice a week"
	found, err := s.UpdateTrackerItem(context.Background(), 2, domain.TrackerUpdate{Schedule: &sched})
	if err != nil || !found {
		t.Fatalf("found %v, err %v", found, err)
	}
	item, _ := s.TrackerItem(2)
	if item.Schedule != sched || item.Plant != "Tomato Crop" || item.Progress != 15 {
		t.Errorf("item = %+v", item)
	}
}

func TestMarkDoseDone_DailyGate(t *testing.T) {
	t.Parallel()
	s, _ := newTestStore(t, newFakeBackend())
	ctx := context.Background()

	// Seed item 2 starts at 15% and not done.
	item, found, err := s.MarkDoseDone(ctx, 2)
	if err != nil || !found {
		t.Fatalf("found %v, err %v", found, err)
	}
	if item.Progress != 25 || !item.IsDone {
		t.Fatalf("after first dose: %+v", item)
	}

	item, _, _ = s.MarkDoseDone(ctx, 2)
	if item.Progress != 25 {
		t.Errorf("second dose before reset changed progress to %d", item.Progress)
	}

	item, found, err = s.ResetDose(ctx, 2)
	if err != nil || !found || item.IsDone {
		t.Fatalf("reset: item %+v found %v err %v", item, found, err)
	}

	item, _, _ = s.MarkDoseDone(ctx, 2)
	if item.Progress != 35 {
		t.Errorf("progress after reset + dose = %d, want 35", item.Progress)
	}
}

func TestMarkDoseDone_CapsAt100(t *testing.T) {
	t.Parallel()
	b := newFakeBackend()
	b.set(testProfile, KeyTracker, `[{"id":5,"progress":95,"severity":"High","isDone":false}]`)
	s, _ := newTestStore(t, b)

	item, _, err := s.MarkDoseDone(context.Background(), 5)
	if err != nil {
		t.Fatal(err)
	}
	if item.Progress != 100 {
		t.Errorf("progress = %d, want 100", item.Progress)
	}
	if item.DisplaySeverity() != domain.SeverityFullyHealed {
		t.Errorf("DisplaySeverity = %q", item.DisplaySeverity())
	}
}

func TestMarkDoseDone_UnknownID(t *testing.T) {
	t.Parallel()
	s, _ := newTestStore(t, newFakeBackend())

	_, found, err := s.MarkDoseDone(context.Background(), 12345)
	if err != nil || found {
		t.Errorf("found %v, err %v; want false, nil", found, err)
	}
}

// ---------------------------------------------------------------------------
// Community
// ---------------------------------------------------------------------------

func TestAddCommunityPost_Defaults(t *testing.T) {
	t.Parallel()
	s, _ := newTestStore(t, newFakeBackend())

	post, err := s.AddCommunityPost(context.Background(), domain.PostDraft{
		Author: "Meera", Role: domain.RoleFarmer, Title: "Wilting chillies", Content: "Help", Tag: "Question",
	})
	if err != nil {
		t.Fatal(err)
	}

	if post.Time != "Just now" || post.Likes != 0 || post.Replies != 0 || post.ExpertReply != nil {
		t.Errorf("post = %+v", post)
	}
	if first := s.CommunityPosts()[0]; first.ID != post.ID {
		t.Errorf("new post not prepended, first id = %d", first.ID)
	}
}

// ---------------------------------------------------------------------------
// Cart
// ---------------------------------------------------------------------------

func TestCart_AddRemoveClear(t *testing.T) {
	t.Parallel()
	b := newFakeBackend()
	s, _ := newTestStore(t, b)
	ctx := context.Background()

	for _, id := range []int{1, 2, 1} {
		if err := s.AddToCart(ctx, id); err != nil {
			t.Fatal(err)
		}
	}
	if got := s.CartTotal(); got != 450+420+450 {
		t.Errorf("CartTotal = %d", got)
	}

	removed, err := s.RemoveFromCart(ctx, 1)
	if err != nil || !removed {
		t.Fatalf("removed %v err %v", removed, err)
	}
	if got := s.Cart(); !reflect.DeepEqual(got, []int{1, 1}) {
		t.Errorf("Cart = %v", got)
	}

	for _, idx := range []int{-1, 2, 100} {
		removed, err := s.RemoveFromCart(ctx, idx)
		if err != nil || removed {
			t.Errorf("RemoveFromCart(%d) = %v, %v; want no-op", idx, removed, err)
		}
	}
	if got := s.Cart(); !reflect.DeepEqual(got, []int{1, 1}) {
		t.Errorf("out-of-range removal changed cart: %v", got)
	}

	if err := s.ClearCart(ctx); err != nil {
		t.Fatal(err)
	}
	if raw, ok := b.raw(testProfile, KeyCart); !ok || raw != "[]" {
		t.Errorf("cleared cart persisted as %q (present %v), want []", raw, ok)
	}
}

func TestCart_DanglingIDContributesZero(t *testing.T) {
	t.Parallel()
	s, _ := newTestStore(t, newFakeBackend())
	ctx := context.Background()

	_ = s.AddToCart(ctx, 99)
	_ = s.AddToCart(ctx, 8)

	if got := s.CartTotal(); got != 1450 {
		t.Errorf("CartTotal = %d, want 1450", got)
	}
	if lines := s.CartLines(); len(lines) != 1 || lines[0].ID != 8 {
		t.Errorf("CartLines = %+v", lines)
	}
	if got := s.Cart(); !reflect.DeepEqual(got, []int{99, 8}) {
		t.Errorf("AddToCart must not validate, cart = %v", got)
	}
}

func TestTakeCart_ReturnsLinesAndEmpties(t *testing.T) {
	t.Parallel()
	b := newFakeBackend()
	s, _ := newTestStore(t, b)
	ctx := context.Background()

	for _, id := range []int{1, 99, 2} {
		if err := s.AddToCart(ctx, id); err != nil {
			t.Fatal(err)
		}
	}

	lines, total, err := s.TakeCart(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if total != 450+420 {
		t.Errorf("total = %d, want %d", total, 450+420)
	}
	if len(lines) != 2 || lines[0].ID != 1 || lines[1].ID != 2 {
		t.Errorf("lines = %+v", lines)
	}
	if got := s.Cart(); len(got) != 0 {
		t.Errorf("cart after take = %v", got)
	}
	if raw, ok := b.raw(testProfile, KeyCart); !ok || raw != "[]" {
		t.Errorf("taken cart persisted as %q (present %v), want []", raw, ok)
	}

	lines, total, err = s.TakeCart(ctx)
	if err != nil || lines != nil || total != 0 {
		t.Errorf("second take = %v, %d, %v; want nil, 0, nil", lines, total, err)
	}
}

func TestTakeCart_WriteFailureKeepsCart(t *testing.T) {
	t.Parallel()
	b := newFakeBackend()
	s, _ := newTestStore(t, b)
	ctx := context.Background()
	_ = s.AddToCart(ctx, 3)

	b.setFailPut(true)
	if _, _, err := s.TakeCart(ctx); !errors.Is(err, errBackendDown) {
		t.Fatalf("err = %v", err)
	}
	if got := s.Cart(); !reflect.DeepEqual(got, []int{3}) {
		t.Errorf("cart = %v, want [3]", got)
	}
}

func TestTakeCart_ConcurrentAddsAreNeverLost(t *testing.T) {
	t.Parallel()
	s, _ := newTestStore(t, newFakeBackend())
	ctx := context.Background()

	const n = 2000
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < n; i++ {
			_ = s.AddToCart(ctx, 1)
		}
	}()

	taken := 0
	for running := true; running; {
		select {
		case <-done:
			running = false
		default:
		}
		lines, total, err := s.TakeCart(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if total != len(lines)*450 {
			t.Fatalf("total %d does not match %d lines", total, len(lines))
		}
		taken += len(lines)
	}

	if got := taken + len(s.Cart()); got != n {
		t.Errorf("taken %d + left %d = %d, want %d", taken, len(s.Cart()), got, n)
	}
}

// ---------------------------------------------------------------------------
// Write failures
// ---------------------------------------------------------------------------

func TestMutation_WriteFailureLeavesStateUnchanged(t *testing.T) {
	t.Parallel()
	b := newFakeBackend()
	s, _ := newTestStore(t, b)
	ctx := context.Background()
	before := s.Snapshot()

	b.setFailPut(true)

	if _, err := s.AddHistoryRecord(ctx, domain.HistoryDraft{Diagnosis: "x"}); !errors.Is(err, errBackendDown) {
		t.Errorf("AddHistoryRecord err = %v", err)
	}
	if _, _, err := s.MarkDoseDone(ctx, 2); !errors.Is(err, errBackendDown) {
		t.Errorf("MarkDoseDone err = %v", err)
	}
	if err := s.AddToCart(ctx, 1); !errors.Is(err, errBackendDown) {
		t.Errorf("AddToCart err = %v", err)
	}
	if _, err := s.ToggleTheme(ctx); !errors.Is(err, errBackendDown) {
		t.Errorf("ToggleTheme err = %v", err)
	}

	if after := s.Snapshot(); !reflect.DeepEqual(before, after) {
		t.Error("state changed although persistence failed")
	}
}

// ---------------------------------------------------------------------------
// Preferences, translation, theme
// ---------------------------------------------------------------------------

func TestPreferences_PersistAndTranslate(t *testing.T) {
	t.Parallel()
	b := newFakeBackend()
	s, _ := newTestStore(t, b)
	ctx := context.Background()

	if got := s.Translate("shopTitle"); got == "shopTitle" {
		t.Errorf("EN shopTitle not translated")
	}
	if got := s.Translate("noSuchKey"); got != "noSuchKey" {
		t.Errorf("Translate(noSuchKey) = %q", got)
	}

	if err := s.SetLanguage(ctx, domain.LanguageHI); err != nil {
		t.Fatal(err)
	}
	if got := s.Translate("basketTitle"); got != "आपकी टोकरी" {
		t.Errorf("HI basketTitle = %q", got)
	}
	if err := s.SetLanguage(ctx, "FR"); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("SetLanguage(FR) err = %v", err)
	}

	dark, err := s.ToggleTheme(ctx)
	if err != nil || !dark {
		t.Fatalf("ToggleTheme = %v, %v", dark, err)
	}
	if s.Theme().Bg != "#0a0c0a" {
		t.Errorf("dark theme bg = %q", s.Theme().Bg)
	}

	// A fresh store over the same backend sees the saved preferences.
	reloaded, _ := newTestStore(t, b)
	if got := reloaded.Preferences(); got.Language != domain.LanguageHI || !got.DarkMode {
		t.Errorf("reloaded preferences = %+v", got)
	}
}

// ---------------------------------------------------------------------------
// Concurrency
// ---------------------------------------------------------------------------

func TestStore_ConcurrentMutations(t *testing.T) {
	t.Parallel()
	s, _ := newTestStore(t, newFakeBackend())
	ctx := context.Background()

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = s.AddTrackerItem(ctx, domain.TrackerDraft{Plant: "p"})
		}()
		go func() {
			defer wg.Done()
			_ = s.AddToCart(ctx, 1)
		}()
	}
	wg.Wait()

	tracker := s.Tracker()
	if len(tracker) != 3+n {
		t.Fatalf("tracker len = %d, want %d", len(tracker), 3+n)
	}
	seen := make(map[int64]bool)
	for _, item := range tracker {
		if seen[item.ID] {
			t.Fatalf("duplicate id %d", item.ID)
		}
		seen[item.ID] = true
	}
	if len(s.Cart()) != n {
		t.Errorf("cart len = %d, want %d", len(s.Cart()), n)
	}
}
