// Package modcheck defines the types shared between the moderation engine
// and its callers: the check request, per-check responses and the final verdict.
package modcheck

import (
	"fmt"
	"strings"
	"time"
)

// Request is a single message to moderate.
type Request struct {
	Msg      string    `json:"msg"`       // message text, caption already merged in by the caller
	UserID   string    `json:"user_id"`   // stable, opaque sender id
	UserName string    `json:"user_name"` // sender name, for reporting only
	Sent     time.Time `json:"sent"`      // message timestamp, zero means "now"
}

func (r *Request) String() string {
	return fmt.Sprintf("msg:%q, user:%q, id:%s", r.Msg, r.UserName, r.UserID)
}

// Verdict is the engine's classification of a message.
type Verdict int

// Verdict values, ordered by severity.
const (
	Allow               Verdict = iota // message passes
	SuppressSilent                     // remove without penalty or notification, i.e. quiet hours
	SuppressAndPenalize                // remove and apply the configured penalty
)

func (v Verdict) String() string {
	switch v {
	case Allow:
		return "allow"
	case SuppressSilent:
		return "suppress-silent"
	case SuppressAndPenalize:
		return "suppress-and-penalize"
	}
	return fmt.Sprintf("verdict(%d)", int(v))
}

// PenaltyKind selects what happens to the sender on a penalized verdict.
type PenaltyKind int

// Penalty kinds. PenaltyNone still deletes the message, it just leaves the sender alone.
const (
	PenaltyNone PenaltyKind = iota
	PenaltyMute
	PenaltyBan
)

func (p PenaltyKind) String() string {
	switch p {
	case PenaltyNone:
		return "delete-only"
	case PenaltyMute:
		return "mute"
	case PenaltyBan:
		return "ban"
	}
	return fmt.Sprintf("penalty(%d)", int(p))
}

// ParsePenaltyKind converts a config string to a PenaltyKind.
func ParsePenaltyKind(s string) (PenaltyKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "delete", "delete-only":
		return PenaltyNone, nil
	case "mute":
		return PenaltyMute, nil
	case "ban", "kick":
		return PenaltyBan, nil
	}
	return PenaltyNone, fmt.Errorf("unknown penalty kind %q", s)
}

// Penalty is the action attached to a SuppressAndPenalize verdict.
type Penalty struct {
	Kind        PenaltyKind   `json:"kind"`
	BanDuration time.Duration `json:"ban_duration,omitempty"` // used for PenaltyBan only
}

// Response is a result of a single check.
type Response struct {
	Name    string   `json:"name"`              // name of the check
	Spam    bool     `json:"spam"`              // true if the check flagged the message
	Details string   `json:"details"`           // details of the check
	Matched []string `json:"matched,omitempty"` // keywords matched, set by the keyword check only
	Error   error    `json:"-"`                 // check failure, if any. Do not serialize it
}

func (r *Response) String() string {
	spamOrHam := "ham"
	if r.Spam {
		spamOrHam = "spam"
	}
	if len(r.Matched) > 0 {
		return fmt.Sprintf("%s: %s, %s, matched: [%s]", r.Name, spamOrHam, r.Details, strings.Join(r.Matched, ", "))
	}
	return fmt.Sprintf("%s: %s, %s", r.Name, spamOrHam, r.Details)
}

// ChecksToString converts a slice of checks to a string
func ChecksToString(checks []Response) string {
	elems := []string{}
	for _, r := range checks {
		elems = append(elems, "{"+r.String()+"}")
	}
	return fmt.Sprintf("[%s]", strings.Join(elems, ", "))
}

// MatchedKeywords collects keywords from all responses, preserving order.
func MatchedKeywords(checks []Response) []string {
	var res []string
	for _, r := range checks {
		res = append(res, r.Matched...)
	}
	return res
}
