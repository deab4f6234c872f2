package events

import (
	"context"
	"testing"
	"time"

	tbapi "github.com/OvyFlash/telegram-bot-api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radmirus/tg-adfilter/app/bot"
	"github.com/radmirus/tg-adfilter/app/events/mocks"
	"github.com/radmirus/tg-adfilter/lib/modcheck"
)

func TestTelegramListener_Do(t *testing.T) {
	mockLogger := &mocks.AdLoggerMock{SaveFunc: func(msg *bot.Message, response *bot.Response) {}}
	mockAPI := &mocks.TbAPIMock{
		GetChatFunc: func(config tbapi.ChatInfoConfig) (tbapi.ChatFullInfo, error) {
			return tbapi.ChatFullInfo{Chat: tbapi.Chat{ID: 123}}, nil
		},
		GetChatAdministratorsFunc: func(config tbapi.ChatAdministratorsConfig) ([]tbapi.ChatMember, error) {
			return nil, nil
		},
		SendFunc: func(c tbapi.Chattable) (tbapi.Message, error) {
			return tbapi.Message{MessageID: 987, Text: c.(tbapi.MessageConfig).Text}, nil
		},
		RequestFunc: func(c tbapi.Chattable) (*tbapi.APIResponse, error) {
			return &tbapi.APIResponse{Ok: true}, nil
		},
	}
	botMock := &mocks.BotMock{
		OnMessageFunc: func(msg bot.Message) bot.Response {
			if msg.Text == "有兴趣的加微信" {
				return bot.Response{
					Text: "@user ⚠️ 消息已删除（广告检测）", Send: true, ReplyTo: msg.ID, DeleteReplyTo: true,
					Verdict: modcheck.SuppressAndPenalize,
					Penalty: modcheck.Penalty{Kind: modcheck.PenaltyMute},
					User:    bot.User{ID: msg.From.ID, Username: msg.From.Username},
				}
			}
			return bot.Response{Verdict: modcheck.Allow}
		},
	}

	l := TelegramListener{
		TbAPI:         mockAPI,
		AdLogger:      mockLogger,
		Bot:           botMock,
		Group:         "gr",
		RetryAttempts: 1,
		RetryDelay:    time.Millisecond,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	updMsg := tbapi.Update{
		Message: &tbapi.Message{
			MessageID: 321,
			Chat:      tbapi.Chat{ID: 123},
			Text:      "有兴趣的加微信",
			From:      &tbapi.User{ID: 666, UserName: "user"},
			Date:      int(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC).Unix()),
		},
	}

	updChan := make(chan tbapi.Update, 1)
	updChan <- updMsg
	close(updChan)
	mockAPI.GetUpdatesChanFunc = func(config tbapi.UpdateConfig) tbapi.UpdatesChannel { return updChan }

	err := l.Do(ctx)
	assert.EqualError(t, err, "telegram update chan closed")

	require.Equal(t, 1, len(mockLogger.SaveCalls()))
	assert.Equal(t, "有兴趣的加微信", mockLogger.SaveCalls()[0].Msg.Text)
	assert.Equal(t, "user", mockLogger.SaveCalls()[0].Msg.From.Username)

	// delete the flagged message, then mute the sender
	require.Equal(t, 2, len(mockAPI.RequestCalls()))
	assert.Equal(t, 321, mockAPI.RequestCalls()[0].C.(tbapi.DeleteMessageConfig).MessageID)
	assert.Equal(t, int64(123), mockAPI.RequestCalls()[0].C.(tbapi.DeleteMessageConfig).ChatID)
	restrict, ok := mockAPI.RequestCalls()[1].C.(tbapi.RestrictChatMemberConfig)
	require.True(t, ok)
	assert.Equal(t, int64(666), restrict.UserID)
	assert.False(t, restrict.Permissions.CanSendMessages)

	// warning reply posted to the group
	require.Equal(t, 1, len(mockAPI.SendCalls()))
	assert.Contains(t, mockAPI.SendCalls()[0].C.(tbapi.MessageConfig).Text, "消息已删除")
}

func TestTelegramListener_DoQuietHours(t *testing.T) {
	mockLogger := &mocks.AdLoggerMock{SaveFunc: func(msg *bot.Message, response *bot.Response) {}}
	mockAPI := &mocks.TbAPIMock{
		GetChatFunc: func(config tbapi.ChatInfoConfig) (tbapi.ChatFullInfo, error) {
			return tbapi.ChatFullInfo{Chat: tbapi.Chat{ID: 123}}, nil
		},
		GetChatAdministratorsFunc: func(config tbapi.ChatAdministratorsConfig) ([]tbapi.ChatMember, error) {
			return nil, nil
		},
		RequestFunc: func(c tbapi.Chattable) (*tbapi.APIResponse, error) {
			return &tbapi.APIResponse{Ok: true}, nil
		},
	}
	botMock := &mocks.BotMock{
		OnMessageFunc: func(msg bot.Message) bot.Response {
			return bot.Response{ReplyTo: msg.ID, DeleteReplyTo: true, Verdict: modcheck.SuppressSilent}
		},
	}

	l := TelegramListener{
		TbAPI:         mockAPI,
		AdLogger:      mockLogger,
		Bot:           botMock,
		Group:         "gr",
		RetryAttempts: 1,
		RetryDelay:    time.Millisecond,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	updChan := make(chan tbapi.Update, 1)
	updChan <- tbapi.Update{
		Message: &tbapi.Message{
			MessageID: 77,
			Chat:      tbapi.Chat{ID: 123},
			Text:      "hello",
			From:      &tbapi.User{ID: 1, UserName: "user"},
		},
	}
	close(updChan)
	mockAPI.GetUpdatesChanFunc = func(config tbapi.UpdateConfig) tbapi.UpdatesChannel { return updChan }

	err := l.Do(ctx)
	assert.EqualError(t, err, "telegram update chan closed")

	// message deleted silently, no warning, no penalty, nothing logged
	require.Equal(t, 1, len(mockAPI.RequestCalls()))
	assert.Equal(t, 77, mockAPI.RequestCalls()[0].C.(tbapi.DeleteMessageConfig).MessageID)
	assert.Empty(t, mockAPI.SendCalls())
	assert.Empty(t, mockLogger.SaveCalls())
}

func TestTelegramListener_DoAllowedMessage(t *testing.T) {
	mockAPI := &mocks.TbAPIMock{
		GetChatFunc: func(config tbapi.ChatInfoConfig) (tbapi.ChatFullInfo, error) {
			return tbapi.ChatFullInfo{Chat: tbapi.Chat{ID: 123}}, nil
		},
		GetChatAdministratorsFunc: func(config tbapi.ChatAdministratorsConfig) ([]tbapi.ChatMember, error) {
			return nil, nil
		},
	}
	botMock := &mocks.BotMock{
		OnMessageFunc: func(msg bot.Message) bot.Response { return bot.Response{Verdict: modcheck.Allow} },
	}

	l := TelegramListener{TbAPI: mockAPI, Bot: botMock, Group: "123", RetryAttempts: 1, RetryDelay: time.Millisecond}

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	updChan := make(chan tbapi.Update, 2)
	updChan <- tbapi.Update{Message: &tbapi.Message{MessageID: 1, Chat: tbapi.Chat{ID: 123},
		Text: "how is everyone", From: &tbapi.User{ID: 2, UserName: "user"}}}
	updChan <- tbapi.Update{Message: &tbapi.Message{MessageID: 2, Chat: tbapi.Chat{ID: 999},
		Text: "other chat ignored", From: &tbapi.User{ID: 2, UserName: "user"}}}
	close(updChan)
	mockAPI.GetUpdatesChanFunc = func(config tbapi.UpdateConfig) tbapi.UpdatesChannel { return updChan }

	err := l.Do(ctx)
	assert.EqualError(t, err, "telegram update chan closed")

	require.Equal(t, 1, len(botMock.OnMessageCalls()), "message from other chat not checked")
	assert.Empty(t, mockAPI.RequestCalls())
	assert.Empty(t, mockAPI.SendCalls())
}

func TestTelegramListener_DoSuperCommands(t *testing.T) {
	mkUpdate := func(text string) tbapi.Update {
		return tbapi.Update{Message: &tbapi.Message{MessageID: 5, Chat: tbapi.Chat{ID: 123},
			Text: text, From: &tbapi.User{ID: 99, UserName: "admin"}}}
	}

	tests := []struct {
		name          string
		command       string
		expectedReply string
		checkBot      func(t *testing.T, b *mocks.BotMock)
	}{
		{
			name: "nightmode on", command: "/nightmode_on", expectedReply: "🌙 夜间模式已开启",
			checkBot: func(t *testing.T, b *mocks.BotMock) { assert.Len(t, b.EnableQuietHoursCalls(), 1) },
		},
		{
			name: "nightmode off", command: "/nightmode_off", expectedReply: "☀️ 夜间模式已关闭",
			checkBot: func(t *testing.T, b *mocks.BotMock) { assert.Len(t, b.DisableQuietHoursCalls(), 1) },
		},
		{
			name: "reload keywords", command: "/reload_keywords", expectedReply: "✅ 关键词列表已刷新",
			checkBot: func(t *testing.T, b *mocks.BotMock) { assert.Len(t, b.ResetKeywordsCalls(), 1) },
		},
		{
			name: "command with bot name suffix", command: "/nightmode_on@adfilter_bot", expectedReply: "🌙 夜间模式已开启",
			checkBot: func(t *testing.T, b *mocks.BotMock) { assert.Len(t, b.EnableQuietHoursCalls(), 1) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockAPI := &mocks.TbAPIMock{
				GetChatFunc: func(config tbapi.ChatInfoConfig) (tbapi.ChatFullInfo, error) {
					return tbapi.ChatFullInfo{Chat: tbapi.Chat{ID: 123}}, nil
				},
				GetChatAdministratorsFunc: func(config tbapi.ChatAdministratorsConfig) ([]tbapi.ChatMember, error) {
					return nil, nil
				},
				SendFunc: func(c tbapi.Chattable) (tbapi.Message, error) {
					return tbapi.Message{MessageID: 6, Text: c.(tbapi.MessageConfig).Text}, nil
				},
			}
			botMock := &mocks.BotMock{
				EnableQuietHoursFunc:  func() {},
				DisableQuietHoursFunc: func() {},
				ResetKeywordsFunc:     func() error { return nil },
			}

			l := TelegramListener{TbAPI: mockAPI, Bot: botMock, Group: "gr", SuperUsers: SuperUser{"admin"},
				RetryAttempts: 1, RetryDelay: time.Millisecond}

			ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
			defer cancel()

			updChan := make(chan tbapi.Update, 1)
			updChan <- mkUpdate(tt.command)
			close(updChan)
			mockAPI.GetUpdatesChanFunc = func(config tbapi.UpdateConfig) tbapi.UpdatesChannel { return updChan }

			err := l.Do(ctx)
			assert.EqualError(t, err, "telegram update chan closed")

			tt.checkBot(t, botMock)
			require.Equal(t, 1, len(mockAPI.SendCalls()))
			assert.Equal(t, tt.expectedReply, mockAPI.SendCalls()[0].C.(tbapi.MessageConfig).Text)
		})
	}
}

func TestTelegramListener_DoSuperUserPassed(t *testing.T) {
	mockAPI := &mocks.TbAPIMock{
		GetChatFunc: func(config tbapi.ChatInfoConfig) (tbapi.ChatFullInfo, error) {
			return tbapi.ChatFullInfo{Chat: tbapi.Chat{ID: 123}}, nil
		},
		GetChatAdministratorsFunc: func(config tbapi.ChatAdministratorsConfig) ([]tbapi.ChatMember, error) {
			return nil, nil
		},
	}
	botMock := &mocks.BotMock{
		OnMessageFunc: func(msg bot.Message) bot.Response {
			return bot.Response{Verdict: modcheck.SuppressAndPenalize, Send: true, DeleteReplyTo: true, ReplyTo: msg.ID}
		},
	}

	l := TelegramListener{TbAPI: mockAPI, Bot: botMock, Group: "gr", SuperUsers: SuperUser{"admin"},
		RetryAttempts: 1, RetryDelay: time.Millisecond}

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	updChan := make(chan tbapi.Update, 1)
	updChan <- tbapi.Update{Message: &tbapi.Message{MessageID: 3, Chat: tbapi.Chat{ID: 123},
		Text: "有兴趣的加微信", From: &tbapi.User{ID: 99, UserName: "admin"}}}
	close(updChan)
	mockAPI.GetUpdatesChanFunc = func(config tbapi.UpdateConfig) tbapi.UpdatesChannel { return updChan }

	err := l.Do(ctx)
	assert.EqualError(t, err, "telegram update chan closed")

	// superuser messages are never checked or deleted
	assert.Empty(t, botMock.OnMessageCalls())
	assert.Empty(t, mockAPI.RequestCalls())
	assert.Empty(t, mockAPI.SendCalls())
}

func TestTelegramListener_WarningCleanup(t *testing.T) {
	mockLogger := &mocks.AdLoggerMock{SaveFunc: func(msg *bot.Message, response *bot.Response) {}}
	mockAPI := &mocks.TbAPIMock{
		GetChatFunc: func(config tbapi.ChatInfoConfig) (tbapi.ChatFullInfo, error) {
			return tbapi.ChatFullInfo{Chat: tbapi.Chat{ID: 123}}, nil
		},
		GetChatAdministratorsFunc: func(config tbapi.ChatAdministratorsConfig) ([]tbapi.ChatMember, error) {
			return nil, nil
		},
		SendFunc: func(c tbapi.Chattable) (tbapi.Message, error) {
			return tbapi.Message{MessageID: 987}, nil
		},
		RequestFunc: func(c tbapi.Chattable) (*tbapi.APIResponse, error) {
			return &tbapi.APIResponse{Ok: true}, nil
		},
	}
	botMock := &mocks.BotMock{
		OnMessageFunc: func(msg bot.Message) bot.Response {
			return bot.Response{Text: "@user ⚠️ 消息已删除（广告检测）", Send: true, ReplyTo: msg.ID, DeleteReplyTo: true,
				Verdict: modcheck.SuppressAndPenalize, User: bot.User{ID: msg.From.ID, Username: msg.From.Username}}
		},
	}

	l := TelegramListener{
		TbAPI:            mockAPI,
		AdLogger:         mockLogger,
		Bot:              botMock,
		Group:            "gr",
		WarnCleanupDelay: 50 * time.Millisecond,
		RetryAttempts:    1,
		RetryDelay:       time.Millisecond,
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	updChan := make(chan tbapi.Update, 1)
	updChan <- tbapi.Update{Message: &tbapi.Message{MessageID: 321, Chat: tbapi.Chat{ID: 123},
		Text: "有兴趣的加微信", From: &tbapi.User{ID: 666, UserName: "user"}}}
	mockAPI.GetUpdatesChanFunc = func(config tbapi.UpdateConfig) tbapi.UpdatesChannel { return updChan }

	go func() {
		// let the cleanup timer fire before the listener shuts down
		time.Sleep(300 * time.Millisecond)
		close(updChan)
	}()

	err := l.Do(ctx)
	assert.EqualError(t, err, "telegram update chan closed")

	// first request deletes the ad, the delayed one deletes the bot's own warning
	require.Equal(t, 2, len(mockAPI.RequestCalls()))
	assert.Equal(t, 321, mockAPI.RequestCalls()[0].C.(tbapi.DeleteMessageConfig).MessageID)
	assert.Equal(t, 987, mockAPI.RequestCalls()[1].C.(tbapi.DeleteMessageConfig).MessageID)
	assert.Equal(t, int64(123), mockAPI.RequestCalls()[1].C.(tbapi.DeleteMessageConfig).ChatID)
}

func TestTelegramListener_DoRetriesOnFailure(t *testing.T) {
	requestAttempts := 0
	mockAPI := &mocks.TbAPIMock{
		GetChatFunc: func(config tbapi.ChatInfoConfig) (tbapi.ChatFullInfo, error) {
			return tbapi.ChatFullInfo{Chat: tbapi.Chat{ID: 123}}, nil
		},
		GetChatAdministratorsFunc: func(config tbapi.ChatAdministratorsConfig) ([]tbapi.ChatMember, error) {
			return nil, nil
		},
		RequestFunc: func(c tbapi.Chattable) (*tbapi.APIResponse, error) {
			requestAttempts++
			if requestAttempts < 3 {
				return nil, assert.AnError
			}
			return &tbapi.APIResponse{Ok: true}, nil
		},
	}
	botMock := &mocks.BotMock{
		OnMessageFunc: func(msg bot.Message) bot.Response {
			return bot.Response{ReplyTo: msg.ID, DeleteReplyTo: true, Verdict: modcheck.SuppressSilent}
		},
	}

	l := TelegramListener{TbAPI: mockAPI, Bot: botMock, Group: "gr",
		RetryAttempts: 5, RetryDelay: time.Millisecond}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	updChan := make(chan tbapi.Update, 1)
	updChan <- tbapi.Update{Message: &tbapi.Message{MessageID: 10, Chat: tbapi.Chat{ID: 123},
		Text: "hello", From: &tbapi.User{ID: 1, UserName: "user"}}}
	close(updChan)
	mockAPI.GetUpdatesChanFunc = func(config tbapi.UpdateConfig) tbapi.UpdatesChannel { return updChan }

	err := l.Do(ctx)
	assert.EqualError(t, err, "telegram update chan closed")
	assert.Equal(t, 3, requestAttempts, "delete retried until it succeeded")
}

func TestTelegramListener_getChatID(t *testing.T) {
	mockAPI := &mocks.TbAPIMock{
		GetChatFunc: func(config tbapi.ChatInfoConfig) (tbapi.ChatFullInfo, error) {
			if config.SuperGroupUsername == "@group" {
				return tbapi.ChatFullInfo{Chat: tbapi.Chat{ID: 10}}, nil
			}
			return tbapi.ChatFullInfo{}, assert.AnError
		},
	}
	l := TelegramListener{TbAPI: mockAPI}

	id, err := l.getChatID("12345")
	require.NoError(t, err)
	assert.Equal(t, int64(12345), id)

	id, err = l.getChatID("group")
	require.NoError(t, err)
	assert.Equal(t, int64(10), id)

	_, err = l.getChatID("bad")
	assert.Error(t, err)
}
