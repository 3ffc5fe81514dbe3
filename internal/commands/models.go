package commands

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/diogo/startupmentor/internal/models"
)

// NewModelsCmd creates the command listing local Ollama models
func NewModelsCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List models available on the Ollama server",
		Long: `List the models pulled on the Ollama server. The model used for
chat is marked with an asterisk; pick another one with --model.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runModels(deps)
		},
	}
}

func runModels(deps *Dependencies) error {
	stdout, stderr := deps.out(), deps.errOut()

	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	var verboseOut io.Writer
	if verboseFlag {
		verboseOut = stderr
	}
	log, closer, err := setupLogger(cfg, verboseOut)
	if err != nil {
		return err
	}
	defer closer.Close()

	client, err := deps.client(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	defer client.Close()

	list, err := client.ListModels(context.Background())
	if err != nil {
		fmt.Fprintln(stderr, formatErrorMessage(err, "Failed to list models"))
		return fmt.Errorf("failed to list models: %w", err)
	}

	if len(list) == 0 {
		fmt.Fprintln(stderr, "No models found. Pull one with 'ollama pull "+models.DefaultModel+"'")
		return nil
	}

	fmt.Fprint(stdout, formatModelTable(list, cfg.Model))
	return nil
}

// formatModelTable lays out models in aligned columns, marking current
func formatModelTable(list []models.LocalModel, current string) string {
	headers := []string{"NAME", "SIZE", "MODIFIED", "FAMILY"}
	rows := make([][]string, 0, len(list))
	for _, m := range list {
		name := m.Name
		if name == current {
			name += " *"
		}
		rows = append(rows, []string{name, formatSize(m.Size), formatModified(m.ModifiedAt), m.Family})
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	currentStyle := lipgloss.NewStyle().Foreground(colorSuccess)

	var sb strings.Builder
	line := func(cells []string, style lipgloss.Style) {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			parts[i] = style.Width(widths[i] + 2).Render(cell)
		}
		sb.WriteString(strings.TrimRight(strings.Join(parts, ""), " "))
		sb.WriteString("\n")
	}

	line(headers, headerStyle)
	for i, row := range rows {
		style := lipgloss.NewStyle()
		if list[i].Name == current {
			style = currentStyle
		}
		line(row, style)
	}
	return sb.String()
}

// formatSize renders a byte count with a binary unit
func formatSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}

// formatModified shortens the server timestamp to a date
func formatModified(ts string) string {
	if ts == "" {
		return "-"
	}
	t, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return ts
	}
	return t.Format("2006-01-02")
}
