package render

import (
	"os"

	"github.com/diogo/startupmentor/internal/config"
)

// EnvStyle overrides the markdown style
const EnvStyle = "GLAMOUR_STYLE"

// OptionsFromConfig builds render options from a loaded configuration.
// GLAMOUR_STYLE takes precedence over the file. Either one pins the style;
// otherwise the style follows the TUI theme.
func OptionsFromConfig(cfg config.Config) Options {
	md := cfg.Markdown
	opts := DefaultOptions().
		WithEmoji(md.EnableEmoji).
		WithPreserveNewLines(md.PreserveNewLines).
		WithTableWrap(md.TableWrap).
		WithEmphasizeLabels(md.EmphasizeLabels)

	if env := os.Getenv(EnvStyle); env != "" {
		opts = opts.WithStyle(env)
	} else if md.Style != "" && md.Style != config.DefaultMarkdownStyle {
		opts = opts.WithStyle(md.Style)
	}

	return opts
}
