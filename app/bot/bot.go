package bot

import (
	"fmt"
	"strings"
	"time"

	"github.com/radmirus/tg-adfilter/lib/modcheck"
)

// Response describes bot's reaction on particular message
type Response struct {
	Text          string
	Send          bool                // true if the Text warning should be posted to the group
	ReplyTo       int                 // message to reply to, if 0 then no reply but common message
	DeleteReplyTo bool                // delete message what bot replies to
	User          User                // user to penalize
	Verdict       modcheck.Verdict    // engine classification of the message
	Penalty       modcheck.Penalty    // penalty to apply, PenaltyNone means delete only
	CheckResults  []modcheck.Response // check results for the message
}

// Message is primary record to pass data from/to bots
type Message struct {
	ID     int
	From   User
	ChatID int64
	Sent   time.Time
	Text   string `json:",omitempty"`
}

// User defines user info of the Message
type User struct {
	ID          int64  `json:"id"`
	Username    string `json:"user_name,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
}

// DisplayName returns user's display name or username or id
func DisplayName(msg Message) string {
	displayUsername := msg.From.DisplayName
	if displayUsername == "" {
		displayUsername = msg.From.Username
	}
	if displayUsername == "" {
		displayUsername = fmt.Sprintf("%d", msg.From.ID)
	}
	return strings.TrimSpace(displayUsername)
}
