// Package events provide event handlers for telegram bot and all the high-level event handlers.
// It parses messages, sends them to the ad detector and handles the results: deletes flagged
// messages, warns the group, mutes or bans senders and processes superuser commands.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	tbapi "github.com/OvyFlash/telegram-bot-api"
	"github.com/go-pkgz/repeater/v2"
	"github.com/hashicorp/go-multierror"

	"github.com/radmirus/tg-adfilter/app/bot"
	"github.com/radmirus/tg-adfilter/lib/modcheck"
)

// TelegramListener listens to tg update, forward to bots and send back responses
// Not thread safe
type TelegramListener struct {
	TbAPI      TbAPI
	AdLogger   AdLogger
	Bot        Bot
	Group      string // can be int64 or public group username (without "@" prefix)
	SuperUsers SuperUser
	StartupMsg string

	WarnCleanupDelay time.Duration // delete bot's warning messages after this delay, 0 keeps them forever
	RetryAttempts    int           // network retries for telegram calls
	RetryDelay       time.Duration // initial retry delay, doubles on each attempt
	NoWarnReply      bool          // do not post warnings to the group
	Dry              bool

	chatID int64

	cleanups struct {
		once   sync.Once
		mu     sync.Mutex
		timers map[int]*time.Timer // pending warning deletions, by warning message id
	}
}

// Do process all events, blocked call
func (l *TelegramListener) Do(ctx context.Context) error {
	log.Printf("[INFO] start telegram listener for %q", l.Group)

	if l.Dry {
		log.Printf("[WARN] dry mode, no deletes and no penalties")
	}

	// get chat ID for the group we are monitoring
	var getChatErr error
	if l.chatID, getChatErr = l.getChatID(l.Group); getChatErr != nil {
		return fmt.Errorf("failed to get chat ID for group %q: %w", l.Group, getChatErr)
	}

	if err := l.updateSupers(); err != nil {
		log.Printf("[WARN] failed to update superusers: %v", err)
	}

	l.cleanups.once.Do(func() {
		l.cleanups.timers = map[int]*time.Timer{}
		if l.RetryAttempts == 0 {
			l.RetryAttempts = 10
		}
		if l.RetryDelay == 0 {
			l.RetryDelay = 5 * time.Second
		}
	})
	defer l.stopCleanups()

	// send startup message if any set
	if l.StartupMsg != "" && !l.Dry {
		if err := l.sendBotResponse(bot.Response{Send: true, Text: l.StartupMsg}, l.chatID); err != nil {
			log.Printf("[WARN] failed to send startup message, %v", err)
		}
	}

	u := tbapi.NewUpdate(0)
	u.Timeout = 60

	updates := l.TbAPI.GetUpdatesChan(u)

	for {
		select {

		case <-ctx.Done():
			return ctx.Err()

		case update, ok := <-updates:
			if !ok {
				return fmt.Errorf("telegram update chan closed")
			}

			if update.Message == nil {
				continue
			}

			if err := l.procEvents(ctx, update); err != nil {
				log.Printf("[WARN] failed to process update: %v", err)
				continue
			}
		}
	}
}

func (l *TelegramListener) procEvents(ctx context.Context, update tbapi.Update) error {
	msgJSON, errJSON := json.Marshal(update.Message)
	if errJSON != nil {
		return fmt.Errorf("failed to marshal update.Message to json: %w", errJSON)
	}
	log.Printf("[DEBUG] %s", string(msgJSON))
	msg := transform(update.Message)
	fromChat := update.Message.Chat.ID

	// ignore messages from other chats except the one we are monitor
	if fromChat != l.chatID {
		return nil
	}

	// superuser commands handled before any checks, supers are never moderated
	if l.SuperUsers.IsSuper(msg.From.Username) {
		if strings.HasPrefix(strings.TrimSpace(msg.Text), "/") {
			return l.procSuperCommand(ctx, msg)
		}
		log.Printf("[DEBUG] superuser %s message passed without checks", msg.From.Username)
		return nil
	}

	log.Printf("[DEBUG] incoming msg: %+v", strings.ReplaceAll(msg.Text, "\n", " "))
	resp := l.Bot.OnMessage(*msg)

	if resp.Verdict == modcheck.Allow {
		return nil
	}

	errs := new(multierror.Error)

	// delete flagged message if requested by bot
	if resp.DeleteReplyTo && resp.ReplyTo != 0 && !l.Dry {
		if err := l.deleteMessage(ctx, fromChat, resp.ReplyTo); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("failed to delete message %d: %w", resp.ReplyTo, err))
		}
	}

	// quiet-hours removals are silent, no warning, no penalty and no log record
	if resp.Verdict == modcheck.SuppressSilent {
		return errs.ErrorOrNil()
	}

	if l.AdLogger != nil {
		l.AdLogger.Save(msg, &resp)
	}

	if resp.Penalty.Kind != modcheck.PenaltyNone {
		penaltyReq := penaltyRequest{penalty: resp.Penalty, userID: resp.User.ID, userName: resp.User.Username,
			chatID: fromChat, dry: l.Dry, tbAPI: l.TbAPI}
		if err := applyPenalty(penaltyReq); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("failed to penalize %s: %w", bot.DisplayName(*msg), err))
		}
	}

	// post the warning reply after delete and penalty so the group sees the final state
	if resp.Send && !l.NoWarnReply {
		warnID, err := l.sendWarning(ctx, resp, fromChat)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("failed to respond on update: %w", err))
		}
		if err == nil && warnID != 0 && l.WarnCleanupDelay > 0 {
			l.scheduleWarningCleanup(fromChat, warnID)
		}
	}

	return errs.ErrorOrNil()
}

// procSuperCommand handles moderation commands issued by superusers in the group
func (l *TelegramListener) procSuperCommand(ctx context.Context, msg *bot.Message) error {
	cmd := strings.ToLower(strings.TrimSpace(msg.Text))
	if i := strings.IndexAny(cmd, " @"); i > 0 { // strip args and the @botname suffix
		cmd = cmd[:i]
	}

	switch cmd {
	case "/reload_keywords":
		if err := l.Bot.ResetKeywords(); err != nil {
			return fmt.Errorf("reload keywords failed: %w", err)
		}
		return l.replyTo(ctx, msg, "✅ 关键词列表已刷新")

	case "/nightmode_on":
		l.Bot.EnableQuietHours()
		log.Printf("[INFO] night mode enabled by %s", msg.From.Username)
		return l.replyTo(ctx, msg, "🌙 夜间模式已开启")

	case "/nightmode_off":
		l.Bot.DisableQuietHours()
		log.Printf("[INFO] night mode disabled by %s", msg.From.Username)
		return l.replyTo(ctx, msg, "☀️ 夜间模式已关闭")
	}

	log.Printf("[DEBUG] unknown command %q from %s ignored", cmd, msg.From.Username)
	return nil
}

func (l *TelegramListener) replyTo(ctx context.Context, msg *bot.Message, text string) error {
	resp := bot.Response{Send: true, Text: text, ReplyTo: msg.ID}
	return l.withRetry(ctx, "reply", func() error { return l.sendBotResponse(resp, msg.ChatID) })
}

// sendWarning posts the warning reply and returns its message id for the delayed cleanup
func (l *TelegramListener) sendWarning(ctx context.Context, resp bot.Response, chatID int64) (msgID int, err error) {
	log.Printf("[DEBUG] bot response - %+v, reply-to:%d", strings.ReplaceAll(resp.Text, "\n", "\\n"), resp.ReplyTo)

	err = l.withRetry(ctx, "send warning", func() error {
		// the original message is already deleted, the warning is a standalone post
		tbMsg := tbapi.NewMessage(chatID, escapeMarkDownV1Text(resp.Text))
		tbMsg.ParseMode = tbapi.ModeMarkdown
		tbMsg.LinkPreviewOptions = tbapi.LinkPreviewOptions{IsDisabled: true}
		sent, sendErr := l.TbAPI.Send(tbMsg)
		if sendErr != nil {
			return sendErr
		}
		msgID = sent.MessageID
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("can't send warning to telegram %q: %w", resp.Text, err)
	}
	return msgID, nil
}

// scheduleWarningCleanup arranges deletion of the bot's own warning message after WarnCleanupDelay
func (l *TelegramListener) scheduleWarningCleanup(chatID int64, msgID int) {
	l.cleanups.mu.Lock()
	defer l.cleanups.mu.Unlock()

	l.cleanups.timers[msgID] = time.AfterFunc(l.WarnCleanupDelay, func() {
		if _, err := l.TbAPI.Request(tbapi.NewDeleteMessage(chatID, msgID)); err != nil {
			log.Printf("[WARN] failed to delete warning message %d: %v", msgID, err)
		}
		l.cleanups.mu.Lock()
		delete(l.cleanups.timers, msgID)
		l.cleanups.mu.Unlock()
	})
}

// stopCleanups cancels pending warning deletions on listener shutdown
func (l *TelegramListener) stopCleanups() {
	l.cleanups.mu.Lock()
	defer l.cleanups.mu.Unlock()
	for id, timer := range l.cleanups.timers {
		timer.Stop()
		delete(l.cleanups.timers, id)
	}
}

func (l *TelegramListener) deleteMessage(ctx context.Context, chatID int64, msgID int) error {
	return l.withRetry(ctx, "delete message", func() error {
		_, err := l.TbAPI.Request(tbapi.NewDeleteMessage(chatID, msgID))
		return err
	})
}

// withRetry runs a telegram call with exponential backoff, flaky network is
// the normal operating condition for long-lived group bots
func (l *TelegramListener) withRetry(ctx context.Context, name string, fn func() error) error {
	attempt := 0
	err := repeater.NewBackoff(l.RetryAttempts, l.RetryDelay).Do(ctx, func() error {
		attempt++
		if err := fn(); err != nil {
			log.Printf("[WARN] %s failed, attempt %d/%d: %v", name, attempt, l.RetryAttempts, err)
			return err
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s failed after %d attempts: %w", name, attempt, err)
	}
	return nil
}

// sendBotResponse sends bot's answer to tg channel
func (l *TelegramListener) sendBotResponse(resp bot.Response, chatID int64) error {
	if !resp.Send {
		return nil
	}

	log.Printf("[DEBUG] bot response - %+v, reply-to:%d", strings.ReplaceAll(resp.Text, "\n", "\\n"), resp.ReplyTo)
	tbMsg := tbapi.NewMessage(chatID, resp.Text)
	tbMsg.ParseMode = tbapi.ModeMarkdown
	tbMsg.LinkPreviewOptions = tbapi.LinkPreviewOptions{IsDisabled: true}
	if resp.ReplyTo != 0 {
		tbMsg.ReplyParameters = tbapi.ReplyParameters{MessageID: resp.ReplyTo}
	}

	if err := send(tbMsg, l.TbAPI); err != nil {
		return fmt.Errorf("can't send message to telegram %q: %w", resp.Text, err)
	}

	return nil
}

func (l *TelegramListener) getChatID(group string) (int64, error) {
	chatID, err := strconv.ParseInt(group, 10, 64)
	if err == nil {
		return chatID, nil
	}

	chat, err := l.TbAPI.GetChat(tbapi.ChatInfoConfig{ChatConfig: tbapi.ChatConfig{SuperGroupUsername: "@" + group}})
	if err != nil {
		return 0, fmt.Errorf("can't get chat for %s: %w", group, err)
	}

	return chat.ID, nil
}

// updateSupers updates the list of super-users based on the chat administrators fetched from the Telegram API.
func (l *TelegramListener) updateSupers() error {
	isSuper := func(username string) bool {
		for _, super := range l.SuperUsers {
			if super == username {
				return true
			}
		}
		return false
	}

	admins, err := l.TbAPI.GetChatAdministrators(tbapi.ChatAdministratorsConfig{ChatConfig: tbapi.ChatConfig{ChatID: l.chatID}})
	if err != nil {
		return fmt.Errorf("failed to get chat administrators: %w", err)
	}

	for _, admin := range admins {
		if strings.TrimSpace(admin.User.UserName) == "" {
			continue
		}
		if isSuper(admin.User.UserName) {
			continue // already in the list
		}
		l.SuperUsers = append(l.SuperUsers, admin.User.UserName)
	}

	log.Printf("[INFO] added admins, full list of supers: {%s}", strings.Join(l.SuperUsers, ", "))
	return err
}
