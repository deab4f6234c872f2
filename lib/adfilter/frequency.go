package adfilter

import (
	"fmt"
	"strings"
	"sync"
	"time"

	cache "github.com/go-pkgz/expirable-cache/v3"

	"github.com/radmirus/tg-adfilter/lib/modcheck"
)

// frequencyTracker keeps a per-sender sliding window of recent messages and
// flags duplicate bursts: the same (or near-same) text repeated too many times
// inside the window. Near-sameness uses the fuzzy similarity ratio, so trivial
// edits between copies don't reset the count.
type frequencyTracker struct {
	limit     int
	window    time.Duration
	threshold float64
	senders   cache.Cache[string, senderWindow] // LRU cache bounds idle senders
	mu        sync.Mutex                        // serializes purge-count-append per evaluation
}

type senderWindow struct {
	records []msgRecord
}

type msgRecord struct {
	text string // already lowercased
	ts   time.Time
}

// newFrequencyTracker creates a tracker, nil if the limit disables the check.
func newFrequencyTracker(limit int, window time.Duration, threshold float64) *frequencyTracker {
	if limit <= 0 {
		return nil // disabled
	}

	const defaultMaxUsers = 10000

	return &frequencyTracker{
		limit:     limit,
		window:    window,
		threshold: threshold,
		senders:   cache.NewCache[string, senderWindow]().WithMaxKeys(defaultMaxUsers).WithTTL(window * 2),
	}
}

// check records the message and reports whether the sender crossed the burst
// limit. The incoming message always extends the window, spam or not, and
// counts towards its own burst: the Nth similar message within the window
// trips a limit of N.
func (f *frequencyTracker) check(req modcheck.Request, now time.Time) modcheck.Response {
	if f == nil || req.UserID == "" {
		return modcheck.Response{Name: "frequency", Spam: false, Details: "check disabled"}
	}

	count := f.trackAndCount(req.UserID, req.Msg, now)

	if count >= f.limit {
		return modcheck.Response{
			Name:    "frequency",
			Spam:    true,
			Details: fmt.Sprintf("%d similar messages in %s", count, f.window),
		}
	}
	return modcheck.Response{Name: "frequency", Spam: false, Details: fmt.Sprintf("%d/%d in %s", count, f.limit, f.window)}
}

// trackAndCount purges expired records, counts window records similar to msg
// (incoming one included) and appends the incoming record. The whole sequence
// runs under one lock, concurrent evaluations for the same sender can't
// interleave between purge and append.
func (f *frequencyTracker) trackAndCount(senderID, msg string, now time.Time) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	win, _ := f.senders.Get(senderID)

	// keep records inside the window; negative age means the stored clock is
	// ahead of the caller's, such records are kept rather than purged
	kept := win.records[:0]
	for _, rec := range win.records {
		if age := now.Sub(rec.ts); age <= f.window {
			kept = append(kept, rec)
		}
	}

	lower := strings.ToLower(msg)
	count := 1 // the incoming message itself
	for _, rec := range kept {
		if similarity(rec.text, lower) >= f.threshold {
			count++
		}
	}

	win.records = append(kept, msgRecord{text: lower, ts: now})
	f.senders.Set(senderID, win, f.window*2)

	return count
}
