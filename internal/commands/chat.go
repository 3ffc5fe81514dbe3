package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/diogo/startupmentor/internal/config"
	"github.com/diogo/startupmentor/internal/mentor"
	"github.com/diogo/startupmentor/internal/render"
	"github.com/diogo/startupmentor/internal/tui"
)

// probeTimeout bounds the startup version check
const probeTimeout = 5 * time.Second

// NewChatCmd creates the interactive chat command
func NewChatCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive mentor session",
		Long: `Start an interactive chat with the startup mentor.

The whole conversation is sent with every idea, so follow-up questions
keep their context. Type 'exit', 'quit', or press Ctrl+C to end the session.
Type '/model <name>' to switch to another installed model.

Keys:
  Enter   send            Ctrl+Y  copy last reply
  Ctrl+L  clear chat      Ctrl+T  toggle light/dark theme`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(deps)
		},
	}
}

func runChat(deps *Dependencies) error {
	stderr := deps.errOut()

	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	// The TUI owns the terminal; verbose logs go to the default log file
	if verboseFlag && cfg.LogFile == "" {
		cfg.LogFile = logFileDefault
		cfg.LogLevel = "debug"
	}
	log, closer, err := setupLogger(cfg, nil)
	if err != nil {
		return err
	}
	defer closer.Close()

	client, err := deps.client(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	defer client.Close()

	spin := newSpinner(stderr, "Connecting to Ollama")
	spin.start()
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	version, err := client.Version(ctx)
	cancel()
	if err != nil {
		spin.stopWithError()
		fmt.Fprintln(stderr, tui.FormatError(fmt.Errorf("ollama did not answer: %w", err)))
		fmt.Fprintln(stderr, "Continuing; replies will fail until Ollama is reachable.")
		log.Warn().Err(err).Str("endpoint", cfg.Endpoint).Msg("startup probe failed")
	} else {
		spin.stopWithSuccess(fmt.Sprintf("Connected to Ollama %s", version))
	}

	applyTheme(cfg, log)

	conv := mentor.New(client,
		mentor.WithLogger(log),
		mentor.WithClipboard(deps.clipboard()),
	)

	return deps.TUI.RunChat(conv, cfg.Model, render.OptionsFromConfig(cfg))
}

// applyTheme selects the configured TUI theme, keeping the current one when
// the name is unknown.
func applyTheme(cfg config.Config, log zerolog.Logger) {
	if cfg.TUITheme != "" && !render.SetTUITheme(cfg.TUITheme) {
		log.Warn().Str("theme", cfg.TUITheme).Strs("available", render.TUIThemeNames()).Msg("unknown TUI theme, keeping default")
	}
	tui.UpdateTheme()
}
