// Package adfilter implements the ad-moderation decision engine: keyword and
// fuzzy-match detection, per-sender duplicate-burst detection and quiet-hours
// gating. The engine performs no messaging I/O, it turns a message plus sender
// history into a verdict and leaves deletion, muting and banning to the caller.
package adfilter

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/forPelevin/gomoji"

	"github.com/radmirus/tg-adfilter/lib/modcheck"
)

// Detector is the moderation engine, thread-safe. Concurrent Check calls are
// allowed, per-sender window updates are serialized internally.
type Detector struct {
	Config
	keywords *keywordMatcher
	freq     *frequencyTracker
	advisor  *openAIChecker
	quietOn  atomic.Bool

	lock sync.RWMutex // guards keywords swap
}

// Config is a set of parameters for Detector.
type Config struct {
	SimilarityThreshold float64          // fuzzy match threshold, 0.0 - 1.0
	MessageLimit        int              // similar messages within the window to call it a burst, 0 disables
	TimeWindow          time.Duration    // sliding window for the frequency check
	MaxAllowedEmoji     int              // maximum emojis allowed in a message, -1 disables the check
	Quiet               QuietHours       // quiet-hours interval
	QuietEnabled        bool             // initial state of the quiet-hours toggle
	Penalty             modcheck.Penalty // what to do with the sender on a penalized verdict
	OpenAIVeto          bool             // let the openai advisor veto positive verdicts
}

// NewDetector makes a new Detector with the given config and keyword set.
func NewDetector(cfg Config, keywords []string) (*Detector, error) {
	if cfg.SimilarityThreshold == 0 {
		cfg.SimilarityThreshold = 0.65
	}
	if cfg.MessageLimit == 0 {
		cfg.MessageLimit = 5
	}
	if cfg.TimeWindow == 0 {
		cfg.TimeWindow = 30 * time.Second
	}
	if err := cfg.Quiet.Validate(); err != nil {
		return nil, fmt.Errorf("invalid quiet hours: %w", err)
	}

	km, err := newKeywordMatcher(keywords, cfg.SimilarityThreshold)
	if err != nil {
		return nil, fmt.Errorf("can't make keyword matcher: %w", err)
	}

	res := &Detector{
		Config:   cfg,
		keywords: km,
		freq:     newFrequencyTracker(cfg.MessageLimit, cfg.TimeWindow, cfg.SimilarityThreshold),
	}
	res.quietOn.Store(cfg.QuietEnabled)
	return res, nil
}

// Check evaluates a single message and returns the verdict with the list of
// executed check results. The frequency window is extended for every evaluated
// message regardless of the verdict; messages suppressed by quiet hours are
// not recorded as they are never evaluated.
func (d *Detector) Check(req modcheck.Request) (verdict modcheck.Verdict, cr []modcheck.Response) {
	now := req.Sent
	if now.IsZero() {
		now = time.Now()
	}

	// quiet hours short-circuit everything, empty messages included
	if d.quietOn.Load() && d.Quiet.active(now) {
		return modcheck.SuppressSilent, []modcheck.Response{
			{Name: "quiet-hours", Spam: true, Details: d.Quiet.String()},
		}
	}

	if strings.TrimSpace(req.Msg) == "" {
		return modcheck.Allow, []modcheck.Response{{Name: "empty", Spam: false, Details: "nothing to check"}}
	}

	cr = append(cr, d.checkKeywords(req.Msg))
	cr = append(cr, d.freq.check(req, now))
	if d.MaxAllowedEmoji >= 0 {
		cr = append(cr, d.checkEmojis(req.Msg))
	}

	spamDetected := false
	for _, r := range cr {
		if r.Spam {
			spamDetected = true
			break
		}
	}

	// the advisor is consulted on positives only, to cut false positives.
	// advisor errors never flip a positive verdict
	if spamDetected && d.OpenAIVeto && d.advisor != nil {
		resp := d.advisor.check(req.Msg)
		cr = append(cr, resp)
		if resp.Error != nil {
			log.Printf("[WARN] openai advisor error: %v", resp.Error)
		} else if !resp.Spam {
			log.Printf("[DEBUG] openai vetoed message %q, checks: %s", req.Msg, modcheck.ChecksToString(cr))
			spamDetected = false
		}
	}

	if spamDetected {
		return modcheck.SuppressAndPenalize, cr
	}
	return modcheck.Allow, cr
}

// ReloadKeywords atomically replaces the active keyword set. The set applies
// to evaluations started after the swap; in-flight evaluations keep the old one.
func (d *Detector) ReloadKeywords(keywords []string) error {
	km, err := newKeywordMatcher(keywords, d.SimilarityThreshold)
	if err != nil {
		return fmt.Errorf("can't reload keywords: %w", err)
	}

	d.lock.Lock()
	d.keywords = km
	d.lock.Unlock()

	log.Printf("[INFO] keyword set replaced, %d keywords active", len(km.keywords))
	return nil
}

// EnableQuietHours turns quiet-hours enforcement on.
func (d *Detector) EnableQuietHours() { d.quietOn.Store(true) }

// DisableQuietHours turns quiet-hours enforcement off.
func (d *Detector) DisableQuietHours() { d.quietOn.Store(false) }

// QuietHoursEnabled reports the current state of the toggle.
func (d *Detector) QuietHoursEnabled() bool { return d.quietOn.Load() }

// WithOpenAIChecker sets an openai advisor for vetoing positive verdicts.
func (d *Detector) WithOpenAIChecker(client openAIClient, config OpenAIConfig) {
	d.advisor = newOpenAIChecker(client, config)
}

func (d *Detector) checkKeywords(msg string) modcheck.Response {
	d.lock.RLock()
	km := d.keywords
	d.lock.RUnlock()

	matched := km.match(msg)
	if len(matched) == 0 {
		return modcheck.Response{Name: "keyword", Spam: false, Details: "not found"}
	}
	return modcheck.Response{
		Name:    "keyword",
		Spam:    true,
		Details: fmt.Sprintf("matched %d of %d keywords", len(matched), len(km.keywords)),
		Matched: matched,
	}
}

func (d *Detector) checkEmojis(msg string) modcheck.Response {
	count := len(gomoji.CollectAll(msg))
	return modcheck.Response{Name: "emoji", Spam: count > d.MaxAllowedEmoji,
		Details: fmt.Sprintf("%d/%d", count, d.MaxAllowedEmoji)}
}
