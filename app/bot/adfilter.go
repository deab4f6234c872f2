package bot

import (
	"fmt"
	"log"
	"strconv"

	"github.com/radmirus/tg-adfilter/lib/modcheck"
)

//go:generate moq --out mocks/detector.go --pkg mocks --skip-ensure --with-resets . Detector

// AdFilter bot checks group messages for advertisement using modcheck detector
// and translates engine verdicts into concrete bot reactions: delete, warn,
// mute or ban. In dry mode nothing is deleted and no penalty applied, the bot
// only reports what it would have done.
type AdFilter struct {
	Detector
	params AdConfig
}

// AdConfig is a full set of parameters for ad-filter bot
type AdConfig struct {
	Keywords []string // baseline keyword set, restored by ResetKeywords

	WarnMsg    string // reply posted after a penalized deletion, user mention prepended
	WarnDryMsg string // reply posted in dry mode instead of acting

	Penalty modcheck.Penalty // what to do with the sender on a penalized verdict

	Dry bool
}

// Detector is an ad detector interface
type Detector interface {
	Check(req modcheck.Request) (verdict modcheck.Verdict, cr []modcheck.Response)
	ReloadKeywords(keywords []string) error
	EnableQuietHours()
	DisableQuietHours()
	QuietHoursEnabled() bool
}

// NewAdFilter creates new ad filter bot
func NewAdFilter(detector Detector, params AdConfig) *AdFilter {
	return &AdFilter{Detector: detector, params: params}
}

// OnMessage runs the message through the detector and makes the response
// with the actions the listener should take
func (s *AdFilter) OnMessage(msg Message) (response Response) {
	if msg.From.ID == 0 { // don't check system messages
		return Response{}
	}
	displayUsername := DisplayName(msg)
	verdict, checkResults := s.Check(modcheck.Request{
		Msg: msg.Text, UserID: strconv.FormatInt(msg.From.ID, 10), UserName: msg.From.Username, Sent: msg.Sent})

	switch verdict {
	case modcheck.SuppressSilent:
		log.Printf("[INFO] message from %s suppressed by quiet hours, %q", displayUsername, msg.Text)
		if s.params.Dry {
			return Response{Verdict: verdict, CheckResults: checkResults}
		}
		return Response{Verdict: verdict, ReplyTo: msg.ID, DeleteReplyTo: true, CheckResults: checkResults,
			User: User{Username: msg.From.Username, ID: msg.From.ID, DisplayName: msg.From.DisplayName}}

	case modcheck.SuppressAndPenalize:
		log.Printf("[INFO] advertisement from %s detected: %s, %q",
			displayUsername, modcheck.ChecksToString(checkResults), msg.Text)
		warnMsg := s.params.WarnMsg
		if s.params.Dry {
			warnMsg = s.params.WarnDryMsg
		}
		resp := Response{
			Text:         fmt.Sprintf("@%s %s", displayUsername, warnMsg),
			Send:         true,
			Verdict:      verdict,
			CheckResults: checkResults,
			User:         User{Username: msg.From.Username, ID: msg.From.ID, DisplayName: msg.From.DisplayName},
		}
		if !s.params.Dry {
			resp.ReplyTo, resp.DeleteReplyTo = msg.ID, true
			resp.Penalty = s.params.Penalty
		}
		return resp
	}

	log.Printf("[DEBUG] message from %s is clean, %s", displayUsername, modcheck.ChecksToString(checkResults))
	return Response{Verdict: modcheck.Allow, CheckResults: checkResults}
}

// ResetKeywords restores the baseline keyword set in the detector
func (s *AdFilter) ResetKeywords() error {
	if err := s.ReloadKeywords(s.params.Keywords); err != nil {
		return fmt.Errorf("can't reset keywords: %w", err)
	}
	log.Printf("[INFO] keywords reset to baseline, %d keywords", len(s.params.Keywords))
	return nil
}
