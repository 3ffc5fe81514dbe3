// Package render turns mentor replies into styled terminal output.
package render

// Options configures the markdown renderer behavior.
type Options struct {
	// Width defines the maximum output width (default: 80)
	Width int

	// Style is a glamour style name ("dark", "light", "dracula", ...) or a path to a JSON style
	Style string

	// EnableEmoji converts :emoji: to unicode characters
	EnableEmoji bool

	// PreserveNewLines keeps the line breaks of the model reply
	PreserveNewLines bool

	// TableWrap enables word wrap in table cells
	TableWrap bool

	// EmphasizeLabels bolds the section labels of a mentor reply
	EmphasizeLabels bool

	// FollowTheme lets the TUI theme choose Style. WithStyle turns it off.
	FollowTheme bool
}

// DefaultOptions returns the default configuration.
func DefaultOptions() Options {
	return Options{
		Width:            80,
		Style:            "dark",
		EnableEmoji:      true,
		PreserveNewLines: true,
		TableWrap:        true,
		EmphasizeLabels:  true,
		FollowTheme:      true,
	}
}

// WithWidth returns Options with the specified width.
func (o Options) WithWidth(width int) Options {
	o.Width = width
	return o
}

// WithStyle returns Options with the specified style.
func (o Options) WithStyle(style string) Options {
	o.Style = style
	o.FollowTheme = false
	return o
}

// ForTheme returns Options using the theme's glamour style, unless a style
// was pinned with WithStyle.
func (o Options) ForTheme(theme TUITheme) Options {
	if o.FollowTheme {
		o.Style = theme.GlamourStyle
	}
	return o
}

// WithEmoji returns Options with emoji support enabled/disabled.
func (o Options) WithEmoji(enabled bool) Options {
	o.EnableEmoji = enabled
	return o
}

// WithPreserveNewLines returns Options with newline preservation enabled/disabled.
func (o Options) WithPreserveNewLines(enabled bool) Options {
	o.PreserveNewLines = enabled
	return o
}

// WithTableWrap returns Options with table wrap enabled/disabled.
func (o Options) WithTableWrap(enabled bool) Options {
	o.TableWrap = enabled
	return o
}

// WithEmphasizeLabels returns Options with label emphasis enabled/disabled.
func (o Options) WithEmphasizeLabels(enabled bool) Options {
	o.EmphasizeLabels = enabled
	return o
}
