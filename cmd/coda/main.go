// Package main is the entry point for coda, an interactive AI code
// assistant for the terminal backed by Google's Gemini API.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"coda/internal/assistant"
	"coda/internal/config"
	"coda/internal/gemini"
	"coda/internal/logging"
	"coda/internal/term"
)

// errReported marks failures whose diagnostics already reached the user;
// main still exits non-zero but prints nothing further.
var errReported = errors.New("error already reported")

var rootCmd = &cobra.Command{
	Use:   "coda",
	Short: "Coda - Your AI Code Assistant",
	Long: `Coda is an interactive code assistant backed by Google's Gemini API.

It runs a single conversation in your terminal: type a message over as
many lines as you need, finish it with 'EOF' on its own line, and the
reply streams back as it is generated. Type 'quit' or 'exit' to leave.

Configuration comes from environment variables (GOOGLE_API_KEY,
GEMINI_MODEL_NAME, GEMINI_TEMPERATURE, GEMINI_TOP_P, GEMINI_TOP_K,
GEMINI_MAX_TOKENS), optionally loaded from a .env file in the working
directory. Set CODA_DEBUG=1 to write a debug log to coda.log.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runAssistant,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func runAssistant(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Interrupts cancel in-flight work; the loop turns that into a
	// graceful shutdown. At the prompt the line editor reports Ctrl+C
	// itself, so this path only matters while a reply is streaming.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	if err := loadDotEnv(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	renderer := term.NewRenderer(os.Stdout)

	cfg, err := config.Load(os.Getenv("CODA_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	if err := cfg.Validate(); err != nil {
		renderer.CredentialError()
		return errReported
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	logger.Info("coda starting", zap.String("model", cfg.Model))

	client, err := gemini.NewClient(ctx, cfg, logger)
	if err != nil {
		renderer.ConfigureError(err)
		logger.Error("client setup failed", zap.Error(err))
		return errReported
	}
	renderer.KeyConfigured()

	renderer.ModelInitializing(cfg.Model)
	session, err := client.StartChat(ctx, cfg)
	if err != nil {
		renderer.InitError(cfg.Model, err)
		logger.Error("chat setup failed", zap.Error(err))
		return errReported
	}
	renderer.ModelReady()

	source, closeSource, err := inputSource()
	if err != nil {
		return err
	}
	defer closeSource()

	renderer.Banner(cfg.Model, cfg.Generation.Summary())

	loop := assistant.New(&sessionAdapter{session: session}, term.NewCollector(source), renderer, logger)
	if err := loop.Run(ctx); err != nil {
		renderer.UnexpectedError(err)
		logger.Error("fatal loop error", zap.Error(err))
		return errReported
	}

	logger.Info("coda shut down")
	return nil
}

// loadDotEnv loads environment variables from path. Missing files are
// ignored so .env stays optional; variables already set keep their values.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// inputSource picks line editing when stdin is a terminal and a plain
// scanner for piped or redirected input.
func inputSource() (term.LineReader, func(), error) {
	fd := os.Stdin.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		rl, err := term.NewReadlineSource()
		if err != nil {
			return nil, nil, err
		}
		return rl, func() { _ = rl.Close() }, nil
	}
	return term.NewScannerSource(os.Stdin), func() {}, nil
}

// sessionAdapter narrows *gemini.Session to the loop's Session interface.
type sessionAdapter struct {
	session *gemini.Session
}

func (a *sessionAdapter) Send(ctx context.Context, message string) (assistant.Stream, error) {
	return a.session.Send(ctx, message)
}
