package render

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// TUITheme defines the color scheme for the chat interface
type TUITheme struct {
	Name        string
	Description string

	// Light themes pair with the light glamour style
	Light bool
	// GlamourStyle is the markdown style used for replies under this theme
	GlamourStyle string

	// Base colors
	Background lipgloss.Color
	Surface    lipgloss.Color
	Border     lipgloss.Color

	// Accent colors
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color

	// Text colors
	Text     lipgloss.Color
	TextDim  lipgloss.Color
	TextMute lipgloss.Color
}

// Theme names used by the dark/light toggle
const (
	DarkThemeName  = "tokyonight"
	LightThemeName = "tokyonight-day"
)

var (
	// TokyoNightTheme is the default dark theme
	TokyoNightTheme = TUITheme{
		Name:         DarkThemeName,
		Description:  "Tokyo Night - dark theme with blue accents",
		GlamourStyle: "dark",

		Background: lipgloss.Color("#1a1b26"),
		Surface:    lipgloss.Color("#24283b"),
		Border:     lipgloss.Color("#414868"),

		Primary:   lipgloss.Color("#7aa2f7"),
		Secondary: lipgloss.Color("#9ece6a"),
		Accent:    lipgloss.Color("#bb9af7"),
		Warning:   lipgloss.Color("#e0af68"),
		Error:     lipgloss.Color("#f7768e"),

		Text:     lipgloss.Color("#c0caf5"),
		TextDim:  lipgloss.Color("#565f89"),
		TextMute: lipgloss.Color("#3b4261"),
	}

	// TokyoNightDayTheme is the light counterpart of TokyoNightTheme
	TokyoNightDayTheme = TUITheme{
		Name:         LightThemeName,
		Description:  "Tokyo Night Day - light theme for bright terminals",
		Light:        true,
		GlamourStyle: "light",

		Background: lipgloss.Color("#e1e2e7"),
		Surface:    lipgloss.Color("#d0d5e3"),
		Border:     lipgloss.Color("#a8aecb"),

		Primary:   lipgloss.Color("#2e7de9"),
		Secondary: lipgloss.Color("#587539"),
		Accent:    lipgloss.Color("#9854f1"),
		Warning:   lipgloss.Color("#8c6c3e"),
		Error:     lipgloss.Color("#f52a65"),

		Text:     lipgloss.Color("#3760bf"),
		TextDim:  lipgloss.Color("#6172b0"),
		TextMute: lipgloss.Color("#a1a6c5"),
	}

	// DraculaTheme is a dark purple theme for users who prefer it
	DraculaTheme = TUITheme{
		Name:         "dracula",
		Description:  "Dracula - dark theme with vibrant colors",
		GlamourStyle: "dracula",

		Background: lipgloss.Color("#282a36"),
		Surface:    lipgloss.Color("#44475a"),
		Border:     lipgloss.Color("#6272a4"),

		Primary:   lipgloss.Color("#bd93f9"),
		Secondary: lipgloss.Color("#50fa7b"),
		Accent:    lipgloss.Color("#ff79c6"),
		Warning:   lipgloss.Color("#f1fa8c"),
		Error:     lipgloss.Color("#ff5555"),

		Text:     lipgloss.Color("#f8f8f2"),
		TextDim:  lipgloss.Color("#6272a4"),
		TextMute: lipgloss.Color("#44475a"),
	}
)

var allTUIThemes = []TUITheme{TokyoNightTheme, TokyoNightDayTheme, DraculaTheme}

var (
	themeMu         sync.RWMutex
	currentTUITheme = TokyoNightTheme
)

// GetTUITheme returns the current TUI theme.
func GetTUITheme() TUITheme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return currentTUITheme
}

// SetTUITheme sets the current TUI theme by name.
// Returns false if the theme is not found.
func SetTUITheme(name string) bool {
	theme, ok := GetTUIThemeByName(name)
	if !ok {
		return false
	}
	themeMu.Lock()
	currentTUITheme = theme
	themeMu.Unlock()
	return true
}

// ToggleTUITheme flips between the dark and light themes and returns the new one.
// Any light theme toggles to dark; any dark theme toggles to light.
func ToggleTUITheme() TUITheme {
	themeMu.Lock()
	defer themeMu.Unlock()
	if currentTUITheme.Light {
		currentTUITheme = TokyoNightTheme
	} else {
		currentTUITheme = TokyoNightDayTheme
	}
	return currentTUITheme
}

// GetTUIThemeByName returns a TUI theme by name.
func GetTUIThemeByName(name string) (TUITheme, bool) {
	for _, theme := range allTUIThemes {
		if theme.Name == name {
			return theme, true
		}
	}
	return TUITheme{}, false
}

// AvailableTUIThemes returns all available TUI themes.
func AvailableTUIThemes() []TUITheme {
	themes := make([]TUITheme, len(allTUIThemes))
	copy(themes, allTUIThemes)
	return themes
}

// TUIThemeNames returns the names of all available TUI themes.
func TUIThemeNames() []string {
	themes := AvailableTUIThemes()
	names := make([]string, len(themes))
	for i, theme := range themes {
		names[i] = theme.Name
	}
	return names
}
