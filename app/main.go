package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	tbapi "github.com/OvyFlash/telegram-bot-api"
	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
	"github.com/sashabaranov/go-openai"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/radmirus/tg-adfilter/app/bot"
	"github.com/radmirus/tg-adfilter/app/events"
	"github.com/radmirus/tg-adfilter/lib/adfilter"
	"github.com/radmirus/tg-adfilter/lib/modcheck"
)

type options struct {
	Telegram struct {
		Token   string        `long:"token" env:"TOKEN" description:"telegram bot token" required:"true"`
		Group   string        `long:"group" env:"GROUP" description:"group name/id" required:"true"`
		Timeout time.Duration `long:"timeout" env:"TIMEOUT" default:"30s" description:"http client timeout for telegram"`
	} `group:"telegram" namespace:"telegram" env-namespace:"TELEGRAM"`

	Logger struct {
		Enabled    bool   `long:"enabled" env:"ENABLED" description:"enable ad-detection rotated logs"`
		FileName   string `long:"file" env:"FILE"  default:"tg-adfilter.log" description:"location of detection log"`
		MaxSize    string `long:"max-size" env:"MAX_SIZE" default:"100M" description:"maximum size before it gets rotated"`
		MaxBackups int    `long:"max-backups" env:"MAX_BACKUPS" default:"10" description:"maximum number of old log files to retain"`
	} `group:"logger" namespace:"logger" env-namespace:"LOGGER"`

	SuperUsers  events.SuperUser `long:"super" env:"SUPER_USER" env-delim:"," description:"super-users"`
	NoWarnReply bool             `long:"no-warn-reply" env:"NO_WARN_REPLY" description:"do not post warnings on removed messages"`

	OpenAI struct {
		Token             string `long:"token" env:"TOKEN" description:"openai token, advisor disabled if not set"`
		Prompt            string `long:"prompt" env:"PROMPT" default:"" description:"openai system prompt, if empty uses builtin default"`
		Model             string `long:"model" env:"MODEL" default:"gpt-4o-mini" description:"openai model"`
		MaxTokensResponse int    `long:"max-tokens-response" env:"MAX_TOKENS_RESPONSE" default:"1024" description:"openai max tokens in response"`
		MaxTokensRequest  int    `long:"max-tokens-request" env:"MAX_TOKENS_REQUEST" default:"2048" description:"openai max tokens in request"`
		MaxSymbolsRequest int    `long:"max-symbols-request" env:"MAX_SYMBOLS_REQUEST" default:"8192" description:"openai max symbols in request, failback if tokenizer failed"`
	} `group:"openai" namespace:"openai" env-namespace:"OPENAI"`

	Files struct {
		KeywordsFile string `long:"keywords" env:"KEYWORDS" default:"" description:"keywords file, one per line, builtin set if not set"`
	} `group:"files" namespace:"files" env-namespace:"FILES"`

	SimilarityThreshold float64       `long:"similarity-threshold" env:"SIMILARITY_THRESHOLD" default:"0.65" description:"fuzzy match threshold"`
	MessageLimit        int           `long:"message-limit" env:"MESSAGE_LIMIT" default:"5" description:"similar messages in the window to call it a burst, 0 to disable"`
	TimeWindow          time.Duration `long:"time-window" env:"TIME_WINDOW" default:"30s" description:"sliding window for the frequency check"`
	MaxEmoji            int           `long:"max-emoji" env:"MAX_EMOJI" default:"-1" description:"max emoji count in message, -1 to disable check"`

	Night struct {
		Enabled bool   `long:"enabled" env:"ENABLED" description:"start with night mode on"`
		Start   int    `long:"start" env:"START" default:"23" description:"first quiet hour, 0-23"`
		End     int    `long:"end" env:"END" default:"7" description:"first non-quiet hour, 0-23"`
		TZ      string `long:"tz" env:"TZ" default:"Asia/Shanghai" description:"timezone for quiet hours"`
	} `group:"night" namespace:"night" env-namespace:"NIGHT"`

	Penalty struct {
		Action      string        `long:"action" env:"ACTION" default:"delete" choice:"delete" choice:"mute" choice:"ban" choice:"kick" description:"action on detected ad"`
		BanDuration time.Duration `long:"ban-duration" env:"BAN_DURATION" default:"60s" description:"ban duration for kick action"`
	} `group:"penalty" namespace:"penalty" env-namespace:"PENALTY"`

	Message struct {
		Startup string `long:"startup" env:"STARTUP" default:"" description:"startup message"`
		Warn    string `long:"warn" env:"WARN" default:"⚠️ 消息已删除（广告检测）" description:"warning posted after a removed ad"`
		Dry     string `long:"dry" env:"DRY" default:"检测到广告（dry mode）" description:"warning posted in dry mode"`
	} `group:"message" namespace:"message" env-namespace:"MESSAGE"`

	WarnCleanup   time.Duration `long:"warn-cleanup" env:"WARN_CLEANUP" default:"14m" description:"delete bot warnings after this delay, 0 to keep"`
	RetryAttempts int           `long:"retry-attempts" env:"RETRY_ATTEMPTS" default:"10" description:"network retries for telegram calls"`
	RetryDelay    time.Duration `long:"retry-delay" env:"RETRY_DELAY" default:"5s" description:"initial retry delay, doubles on each attempt"`

	Dry   bool `long:"dry" env:"DRY" description:"dry mode, no deletes and no penalties"`
	Dbg   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	TGDbg bool `long:"tg-dbg" env:"TG_DEBUG" description:"telegram debug mode"`
}

var revision = "local"

func main() {
	fmt.Printf("tg-adfilter %s\n", revision)
	var opts options
	p := flags.NewParser(&opts, flags.PrintErrors|flags.PassDoubleDash|flags.HelpFlag)
	p.SubcommandsOptional = true
	if _, err := p.Parse(); err != nil {
		if err.(*flags.Error).Type != flags.ErrHelp {
			log.Printf("[ERROR] cli error: %v", err)
		}
		os.Exit(2)
	}

	setupLog(opts.Dbg, opts.Telegram.Token, opts.OpenAI.Token)
	log.Printf("[DEBUG] options: %+v", opts)

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		// catch signal and invoke graceful termination
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop
		log.Printf("[WARN] interrupt signal")
		cancel()
	}()

	if err := execute(ctx, opts); err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}
}

func execute(ctx context.Context, opts options) error {
	if opts.Dry {
		log.Print("[WARN] dry mode, no actual deletes or penalties")
	}

	// make telegram bot
	tbAPI, err := tbapi.NewBotAPI(opts.Telegram.Token)
	if err != nil {
		return fmt.Errorf("can't make telegram bot, %w", err)
	}
	tbAPI.Debug = opts.TGDbg

	keywords, err := loadKeywords(opts.Files.KeywordsFile)
	if err != nil {
		return fmt.Errorf("can't load keywords, %w", err)
	}

	// make detector
	detector, err := makeDetector(opts, keywords)
	if err != nil {
		return fmt.Errorf("can't make detector, %w", err)
	}

	penalty, err := makePenalty(opts)
	if err != nil {
		return fmt.Errorf("can't make penalty, %w", err)
	}

	// make ad-filter bot
	adBotParams := bot.AdConfig{
		Keywords:   keywords,
		WarnMsg:    opts.Message.Warn,
		WarnDryMsg: opts.Message.Dry,
		Penalty:    penalty,
		Dry:        opts.Dry,
	}
	adBot := bot.NewAdFilter(detector, adBotParams)
	log.Printf("[DEBUG] ad filter config: %+v", adBotParams)

	// make detection logger
	loggerWr, err := makeDetectionLogWriter(opts)
	if err != nil {
		return fmt.Errorf("can't make detection log writer, %w", err)
	}
	defer loggerWr.Close()

	// make telegram listener
	tgListener := events.TelegramListener{
		TbAPI:            tbAPI,
		Group:            opts.Telegram.Group,
		SuperUsers:       opts.SuperUsers,
		Bot:              adBot,
		StartupMsg:       opts.Message.Startup,
		NoWarnReply:      opts.NoWarnReply,
		AdLogger:         makeDetectionLogger(loggerWr),
		WarnCleanupDelay: opts.WarnCleanup,
		RetryAttempts:    opts.RetryAttempts,
		RetryDelay:       opts.RetryDelay,
		Dry:              opts.Dry,
	}
	log.Printf("[DEBUG] telegram listener config: {group: %s, super: %v, no-warn-reply: %v, warn-cleanup: %v, dry: %v}",
		tgListener.Group, tgListener.SuperUsers, tgListener.NoWarnReply, tgListener.WarnCleanupDelay, tgListener.Dry)

	// run telegram listener and event processor loop
	if err := tgListener.Do(ctx); err != nil {
		return fmt.Errorf("telegram listener failed, %w", err)
	}
	return nil
}

func makeDetector(opts options, keywords []string) (*adfilter.Detector, error) {
	loc, err := time.LoadLocation(opts.Night.TZ)
	if err != nil {
		return nil, fmt.Errorf("can't load timezone %q: %w", opts.Night.TZ, err)
	}

	detectorConfig := adfilter.Config{
		SimilarityThreshold: opts.SimilarityThreshold,
		MessageLimit:        opts.MessageLimit,
		TimeWindow:          opts.TimeWindow,
		MaxAllowedEmoji:     opts.MaxEmoji,
		Quiet:               adfilter.QuietHours{Start: opts.Night.Start, End: opts.Night.End, Location: loc},
		QuietEnabled:        opts.Night.Enabled,
		OpenAIVeto:          opts.OpenAI.Token != "",
	}

	detector, err := adfilter.NewDetector(detectorConfig, keywords)
	if err != nil {
		return nil, fmt.Errorf("can't make detector: %w", err)
	}
	log.Printf("[DEBUG] detector config: %+v", detectorConfig)

	if opts.OpenAI.Token != "" {
		log.Printf("[WARN] openai advisor enabled")
		openAIConfig := adfilter.OpenAIConfig{
			SystemPrompt:      opts.OpenAI.Prompt,
			Model:             opts.OpenAI.Model,
			MaxTokensResponse: opts.OpenAI.MaxTokensResponse,
			MaxTokensRequest:  opts.OpenAI.MaxTokensRequest,
			MaxSymbolsRequest: opts.OpenAI.MaxSymbolsRequest,
			Timeout:           opts.Telegram.Timeout,
		}
		log.Printf("[DEBUG] openai config: %+v", openAIConfig)
		detector.WithOpenAIChecker(openai.NewClient(opts.OpenAI.Token), openAIConfig)
	}
	return detector, nil
}

func makePenalty(opts options) (modcheck.Penalty, error) {
	kind, err := modcheck.ParsePenaltyKind(opts.Penalty.Action)
	if err != nil {
		return modcheck.Penalty{}, err
	}
	return modcheck.Penalty{Kind: kind, BanDuration: opts.Penalty.BanDuration}, nil
}

// loadKeywords reads the keyword list, one per line with #-comments, or falls
// back to the builtin set if no file given
func loadKeywords(fileName string) ([]string, error) {
	if fileName == "" {
		log.Printf("[DEBUG] using builtin keywords, %d entries", len(adfilter.DefaultKeywords))
		return adfilter.DefaultKeywords, nil
	}

	fh, err := os.Open(fileName) //nolint:gosec // the file path is an operator-provided config value
	if err != nil {
		return nil, fmt.Errorf("can't open keywords file %q: %w", fileName, err)
	}
	defer fh.Close()

	var res []string
	scanner := bufio.NewScanner(fh)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		res = append(res, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("can't read keywords file %q: %w", fileName, err)
	}
	log.Printf("[INFO] loaded %d keywords from %s", len(res), fileName)
	return res, nil
}

// makeDetectionLogger creates logger to keep reports about removed messages
// it writes json lines to the provided writer
func makeDetectionLogger(wr io.Writer) events.AdLogger {
	return events.AdLoggerFunc(func(msg *bot.Message, response *bot.Response) {
		text := strings.ReplaceAll(msg.Text, "\n", " ")
		text = strings.TrimSpace(text)
		log.Printf("[INFO] advertisement detected from %v, text: %s", msg.From, text)
		m := struct {
			TimeStamp   string `json:"ts"`
			DisplayName string `json:"display_name"`
			UserName    string `json:"user_name"`
			UserID      int64  `json:"user_id"`
			Verdict     string `json:"verdict"`
			Checks      string `json:"checks"`
			Text        string `json:"text"`
		}{
			TimeStamp:   time.Now().In(time.Local).Format(time.RFC3339),
			DisplayName: msg.From.DisplayName,
			UserName:    msg.From.Username,
			UserID:      msg.From.ID,
			Verdict:     response.Verdict.String(),
			Checks:      modcheck.ChecksToString(response.CheckResults),
			Text:        text,
		}
		line, err := json.Marshal(&m)
		if err != nil {
			log.Printf("[WARN] can't marshal json, %v", err)
			return
		}
		if _, err := wr.Write(append(line, '\n')); err != nil {
			log.Printf("[WARN] can't write to log, %v", err)
		}
	})
}

// makeDetectionLogWriter creates detection log writer to keep reports about removed messages
// it parses options and makes lumberjack logger with rotation
func makeDetectionLogWriter(opts options) (accessLog io.WriteCloser, err error) {
	if !opts.Logger.Enabled {
		return nopWriteCloser{io.Discard}, nil
	}

	sizeParse := func(inp string) (uint64, error) {
		if inp == "" {
			return 0, errors.New("empty value")
		}
		for i, sfx := range []string{"k", "m", "g", "t"} {
			if strings.HasSuffix(inp, strings.ToUpper(sfx)) || strings.HasSuffix(inp, strings.ToLower(sfx)) {
				val, err := strconv.Atoi(inp[:len(inp)-1])
				if err != nil {
					return 0, fmt.Errorf("can't parse %s: %w", inp, err)
				}
				return uint64(float64(val) * math.Pow(float64(1024), float64(i+1))), nil
			}
		}
		return strconv.ParseUint(inp, 10, 64)
	}

	maxSize, perr := sizeParse(opts.Logger.MaxSize)
	if perr != nil {
		return nil, fmt.Errorf("can't parse logger MaxSize: %w", perr)
	}

	maxSize /= 1048576

	log.Printf("[INFO] logger enabled for %s, max size %dM", opts.Logger.FileName, maxSize)
	return &lumberjack.Logger{
		Filename:   opts.Logger.FileName,
		MaxSize:    int(maxSize), // in MB
		MaxBackups: opts.Logger.MaxBackups,
		Compress:   true,
		LocalTime:  true,
	}, nil
}

type nopWriteCloser struct{ io.Writer }

func (n nopWriteCloser) Close() error { return nil }

func setupLog(dbg bool, secrets ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))

	if len(secrets) > 0 {
		logOpts = append(logOpts, lgr.Secret(secrets...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
