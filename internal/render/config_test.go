package render

import (
	"testing"

	"github.com/diogo/startupmentor/internal/config"
)

func TestOptionsFromConfig(t *testing.T) {
	t.Setenv(EnvStyle, "")

	cfg := config.DefaultConfig()
	cfg.Markdown.Style = "dracula"
	cfg.Markdown.EnableEmoji = false
	cfg.Markdown.PreserveNewLines = false
	cfg.Markdown.EmphasizeLabels = false

	opts := OptionsFromConfig(cfg)

	if opts.Style != "dracula" {
		t.Errorf("expected Style='dracula', got %s", opts.Style)
	}
	if opts.FollowTheme {
		t.Error("a configured style should not follow the theme")
	}
	if opts.EnableEmoji {
		t.Error("expected EnableEmoji=false from config")
	}
	if opts.PreserveNewLines {
		t.Error("expected PreserveNewLines=false from config")
	}
	if opts.EmphasizeLabels {
		t.Error("expected EmphasizeLabels=false from config")
	}
	if opts.Width != 80 {
		t.Errorf("expected default width 80, got %d", opts.Width)
	}
}

func TestOptionsFromConfig_DefaultStyleFollowsTheme(t *testing.T) {
	t.Setenv(EnvStyle, "")

	for _, style := range []string{"", config.DefaultMarkdownStyle} {
		cfg := config.DefaultConfig()
		cfg.Markdown.Style = style

		opts := OptionsFromConfig(cfg)
		if opts.Style != "dark" {
			t.Errorf("style %q: expected Style='dark', got %s", style, opts.Style)
		}
		if !opts.FollowTheme {
			t.Errorf("style %q: expected FollowTheme", style)
		}
	}
}

func TestOptionsFromConfig_EnvOverride(t *testing.T) {
	t.Setenv(EnvStyle, "dark")

	cfg := config.DefaultConfig()
	cfg.Markdown.Style = "dracula"

	opts := OptionsFromConfig(cfg)
	if opts.Style != "dark" {
		t.Errorf("expected Style='dark' from env, got %s", opts.Style)
	}
	if opts.FollowTheme {
		t.Error("GLAMOUR_STYLE should pin the style")
	}
}

func TestForTheme(t *testing.T) {
	t.Run("follows theme by default", func(t *testing.T) {
		opts := DefaultOptions().ForTheme(TokyoNightDayTheme)
		if opts.Style != TokyoNightDayTheme.GlamourStyle {
			t.Errorf("Style = %s, want %s", opts.Style, TokyoNightDayTheme.GlamourStyle)
		}
		if back := opts.ForTheme(TokyoNightTheme); back.Style != TokyoNightTheme.GlamourStyle {
			t.Errorf("Style = %s after second theme, want %s", back.Style, TokyoNightTheme.GlamourStyle)
		}
	})

	t.Run("pinned style wins", func(t *testing.T) {
		t.Setenv(EnvStyle, "")
		cfg := config.DefaultConfig()
		cfg.Markdown.Style = "dracula"

		opts := OptionsFromConfig(cfg).ForTheme(TokyoNightDayTheme)
		if opts.Style != "dracula" {
			t.Errorf("Style = %s, want dracula", opts.Style)
		}
	})
}

func TestOptionsFromConfig_RendersWithWidth(t *testing.T) {
	t.Setenv(EnvStyle, "")

	opts := OptionsFromConfig(config.DefaultConfig()).WithWidth(120)
	if opts.Width != 120 {
		t.Errorf("expected width 120, got %d", opts.Width)
	}

	output, err := Markdown("# Test", opts)
	if err != nil {
		t.Fatalf("Markdown render failed with config options: %v", err)
	}
	if output == "" {
		t.Error("expected non-empty output")
	}
}
