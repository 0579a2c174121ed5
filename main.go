package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"botsend/crashlog"
	"botsend/dispatch"
	"botsend/models"
	"botsend/tui"
	"botsend/ui"
)

func main() {
	// .env is optional; real environment variables win over it.
	_ = godotenv.Load()

	crashPath := os.Getenv(models.EnvCrashLog)
	crash := crashlog.New(crashPath)

	if err := crash.Guard(run); err != nil {
		if errors.Is(err, crashlog.ErrPanicked) {
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, ui.ColorError("Error: ")+err.Error())
		os.Exit(1)
	}
}

func run() error {
	cfg, err := models.ConfigFromEnv()
	if err != nil {
		return err
	}

	var (
		token       = flag.String("token", "", "Bot token (default $"+models.EnvToken+")")
		channelID   = flag.String("channel", "", "Destination channel ID (default $"+models.EnvChannelID+")")
		message     = flag.String("m", "", "Message text")
		file        = flag.String("f", "", "Path of a file to attach")
		logFile     = flag.String("log", cfg.LogFile, "Path of the log file")
		interactive = flag.Bool("i", false, "Run the interactive form even when token and channel are given")
		verbose     = flag.Bool("v", false, "Verbose logging")
		help        = flag.Bool("h", false, "Show help")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Discord Bot Messenger - send one message as a Discord bot\n\n")
		fmt.Fprintf(os.Stderr, "Without flags an interactive form is shown. Passing -token and -channel\n")
		fmt.Fprintf(os.Stderr, "sends once from the command line and prints the outcome.\n\n")
		fmt.Fprintf(os.Stderr, "Usage: %s [flags]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if *help {
		flag.Usage()
		return nil
	}

	if *token != "" {
		cfg.Token = *token
	}
	if *channelID != "" {
		cfg.ChannelID = *channelID
	}
	cfg.LogFile = *logFile
	cfg.Verbose = *verbose
	cfg.TUI = *interactive || *token == "" || *channelID == ""
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogFile, cfg.Verbose)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	crash := crashlog.New(cfg.CrashLogFile)
	d := dispatch.New(dispatch.NewDiscordDialer(),
		dispatch.WithLogger(logger),
		dispatch.WithCrashLog(crash),
		dispatch.WithReadyTimeout(cfg.ReadyTimeout),
	)

	logger.Info("starting", zap.Bool("tui", cfg.TUI), zap.String("crash_log", crash.Path()))

	if cfg.TUI {
		return tui.Run(ctx, d, cfg, logger, crash)
	}
	return runCommandLineMode(ctx, d, cfg, *message, *file)
}

func runCommandLineMode(ctx context.Context, d *dispatch.Dispatcher, cfg models.Config, message, file string) error {
	req := models.NewSendRequest(cfg.Token, cfg.ChannelID, message, file)

	ui.PrintBanner(os.Stdout)
	ui.PrintRequest(os.Stdout, req)

	res := d.Send(ctx, req)
	ui.PrintResult(os.Stdout, res)

	if err := d.Shutdown(cfg.ShutdownTimeout); err != nil {
		return err
	}
	if !res.Success() {
		return errors.Errorf("send failed: %s", res.Kind())
	}
	return nil
}

// newLogger writes JSON logs to path. The terminal belongs to the UI, so
// nothing is logged to stdout or stderr.
func newLogger(path string, verbose bool) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	zcfg.OutputPaths = []string{path}
	zcfg.ErrorOutputPaths = []string{path}
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if verbose {
		zcfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	logger, err := zcfg.Build()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open log file %s", path)
	}
	return logger.With(zap.Int("pid", os.Getpid())), nil
}
