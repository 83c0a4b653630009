package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"

	"nuclight.org/content-planner-bot/app/scheduler"
	"nuclight.org/content-planner-bot/app/services"
	"nuclight.org/content-planner-bot/app/storage"
	"nuclight.org/content-planner-bot/app/telegram"
	"nuclight.org/content-planner-bot/app/web"
	"nuclight.org/content-planner-bot/pkg/ai"
	"nuclight.org/content-planner-bot/pkg/logger"
	"nuclight.org/content-planner-bot/pkg/photos"
)

var opts struct {
	BotToken    string `long:"bot-token" env:"BOT_TOKEN" required:"true" description:"telegram bot api token"`
	DatabaseURL string `long:"database-url" env:"DATABASE_URL" required:"true" description:"path to the content plan sqlite database"`
	ChannelID   string `long:"channel-id" env:"CHANNEL_ID" required:"true" description:"destination channel id or @username"`
	AdminID     int64  `long:"admin-id" env:"ADMIN_ID" required:"true" description:"administrator telegram user id"`
	UnsplashKey string `long:"unsplash-key" env:"UNSPLASH_KEY" required:"true" description:"unsplash access key"`
	OpenAIKey   string `long:"openai-key" env:"OPENAI_KEY" required:"true" description:"openai api key"`
	OpenAIModel string `long:"openai-model" env:"OPENAI_MODEL" default:"gpt-4o-mini" description:"chat completion model"`
	Port        int    `long:"port" env:"PORT" default:"10000" description:"liveness endpoint port"`
	Timezone    string `long:"timezone" env:"TZ_NAME" default:"Europe/Kyiv" description:"editorial timezone"`
	WorkersNum  int    `long:"workers-num" env:"WORKERS_NUM" default:"1" description:"number of update workers"`
	SentryDSN   string `long:"sentry-dsn" env:"SENTRY_DSN" description:"sentry dsn, reporting disabled when empty"`
}

var Revision = "dev"

func main() {
	_ = godotenv.Load()

	_, err := flags.Parse(&opts)
	if err != nil {
		os.Exit(1)
	}

	log := logger.NewLogger(slog.LevelDebug)
	log.Info("starting bot", "revision", Revision)

	if opts.SentryDSN != "" {
		err = sentry.Init(sentry.ClientOptions{
			Dsn:     opts.SentryDSN,
			Release: Revision,
		})
		if err != nil {
			log.Error("initializing sentry", "error", err)
			os.Exit(1)
		}
		defer sentry.Flush(2 * time.Second)
	}

	loc, err := time.LoadLocation(opts.Timezone)
	if err != nil {
		log.Error("loading timezone", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	calendar := &storage.Calendar{
		Path: opts.DatabaseURL,
		Log:  log,
	}
	if err := calendar.Init(ctx); err != nil {
		log.Error("initializing calendar database", "error", err)
		os.Exit(1)
	}

	planner := &services.Planner{
		Log:      log,
		Calendar: calendar,
		Photos: &photos.Client{
			AccessKey:  opts.UnsplashKey,
			HTTPClient: http.DefaultClient,
			Log:        log,
		},
		Writer: ai.NewClient(opts.OpenAIKey, opts.OpenAIModel),
	}

	bot := &telegram.Client{
		Log:        log,
		APIToken:   opts.BotToken,
		AdminID:    opts.AdminID,
		ChannelID:  opts.ChannelID,
		Location:   loc,
		WorkersNum: opts.WorkersNum,
		Planner:    planner,
	}

	if err := bot.Start(ctx); err != nil {
		log.Error("starting bot", "error", err)
		os.Exit(1)
	}

	sched := &scheduler.Schedule{
		Log:      log,
		Sender:   bot,
		Location: loc,
	}
	if err := sched.Start(ctx); err != nil {
		log.Error("starting scheduler", "error", err)
		os.Exit(1)
	}

	srv := &web.Server{
		Log:  log,
		Port: opts.Port,
	}
	srv.Start(ctx)

	<-ctx.Done()
	log.Info("stopping bot")

	sched.Stop()
	bot.Wait()

	os.Exit(0)
}
