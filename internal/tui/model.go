package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/startupmentor/internal/mentor"
	"github.com/diogo/startupmentor/internal/models"
	"github.com/diogo/startupmentor/internal/render"
)

// Animation tick message
type animationTickMsg time.Time

// replyMsg carries the assistant message appended by a finished turn
type replyMsg struct {
	reply models.Message
}

// Notices shown under the status bar
const (
	noticeCopied      = "Reply copied to clipboard"
	noticeNothingCopy = "No reply to copy yet"
	noticeCleared     = "Conversation cleared"
	noticeBusy        = "Still waiting for the mentor..."
	noticeModelUsage  = "Usage: /model <name>"
)

// Model represents the chat TUI state. The conversation owns the transcript;
// the model only projects it.
type Model struct {
	ctx        context.Context
	conv       *mentor.Conversation
	modelName  string
	renderOpts render.Options

	// UI components
	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	// State
	loading        bool
	ready          bool
	notice         string
	animationFrame int

	// Dimensions
	width  int
	height int
}

// NewChatModel creates a new chat TUI model around conv
func NewChatModel(conv *mentor.Conversation, modelName string) Model {
	ta := textarea.New()
	ta.Placeholder = "Describe your startup idea..."
	ta.CharLimit = models.MaxInputLength
	ta.ShowLineNumbers = false
	ta.SetHeight(2)
	// Enter submits; the idea is a single paragraph
	ta.KeyMap.InsertNewline.SetEnabled(false)
	ta.Focus()
	styleTextarea(&ta)

	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = loadingStyle

	return Model{
		ctx:        context.Background(),
		conv:       conv,
		modelName:  modelName,
		renderOpts: render.DefaultOptions().ForTheme(render.GetTUITheme()),
		textarea:   ta,
		spinner:    s,
	}
}

// WithRenderOptions sets the markdown options used for assistant replies.
// The style follows the theme toggle unless opts pins one.
func (m Model) WithRenderOptions(opts render.Options) Model {
	m.renderOpts = opts
	return m
}

func styleTextarea(ta *textarea.Model) {
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().Foreground(colorText)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(colorTextDim)
	ta.BlurredStyle = ta.FocusedStyle
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.spinner.Tick,
	)
}

// animationTick returns a command that sends animation tick messages
func animationTick() tea.Cmd {
	return tea.Tick(time.Millisecond*80, func(t time.Time) tea.Msg {
		return animationTickMsg(t)
	})
}

// runTurn performs the network call of an accepted submission
func runTurn(ctx context.Context, turn *mentor.Turn) tea.Cmd {
	return func() tea.Msg {
		return replyMsg{reply: turn.Run(ctx)}
	}
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 4 // Header panel with border
		inputHeight := 6  // Input panel with border
		statusHeight := 2 // Status bar and notice line
		padding := 2

		vpHeight := m.height - headerHeight - inputHeight - statusHeight - padding
		if vpHeight < 5 {
			vpHeight = 5
		}

		contentWidth := m.width - 4

		if !m.ready {
			m.viewport = viewport.New(contentWidth, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = contentWidth
			m.viewport.Height = vpHeight
		}
		m.textarea.SetWidth(contentWidth - 4)
		m.updateViewport()
		m.viewport.GotoBottom()

	case tea.KeyMsg:
		m.notice = ""

		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "esc":
			// Requests cannot be cancelled; esc only quits when idle
			if !m.loading {
				return m, tea.Quit
			}
			m.notice = noticeBusy
			return m, nil

		case "ctrl+t":
			m.toggleTheme()
			return m, nil

		case "ctrl+y":
			m.copyLastReply()
			return m, nil

		case "ctrl+l":
			m.clear()
			return m, nil

		case "enter":
			return m.submit()
		}

	case replyMsg:
		m.loading = m.conv.InFlight()
		m.updateViewport()
		m.viewport.GotoBottom()
		if !m.loading {
			m.textarea.Focus()
		}

	case spinner.TickMsg:
		if m.loading {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case animationTickMsg:
		if m.loading {
			m.animationFrame++
			cmds = append(cmds, animationTick())
		}
	}

	// Only pass KeyMsg to textarea to prevent escape sequence leaks
	if !m.loading {
		if _, ok := msg.(tea.KeyMsg); ok {
			m.textarea, cmd = m.textarea.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// submit handles the enter key. Input is disabled while a reply is awaited.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.loading {
		m.notice = noticeBusy
		return m, nil
	}

	input := strings.TrimSpace(m.textarea.Value())
	switch input {
	case "":
		return m, nil
	case "exit", "quit", "/exit", "/quit":
		return m, tea.Quit
	case "/clear":
		m.textarea.Reset()
		m.clear()
		return m, nil
	}

	if fields := strings.Fields(input); fields[0] == "/model" {
		m.textarea.Reset()
		m.switchModel(fields[1:])
		return m, nil
	}

	turn, ok := m.conv.Begin(input)
	if !ok {
		m.notice = noticeBusy
		return m, nil
	}

	m.textarea.Reset()
	m.textarea.Blur()
	m.loading = true
	m.animationFrame = 0
	m.updateViewport()
	m.viewport.GotoBottom()

	return m, tea.Batch(
		runTurn(m.ctx, turn),
		m.spinner.Tick,
		animationTick(),
	)
}

func (m *Model) toggleTheme() {
	theme := render.ToggleTUITheme()
	UpdateTheme()
	styleTextarea(&m.textarea)
	m.spinner.Style = loadingStyle
	m.renderOpts = m.renderOpts.ForTheme(theme)
	m.updateViewport()
}

func (m *Model) copyLastReply() {
	reply, ok := m.conv.LastReply()
	if !ok {
		m.notice = noticeNothingCopy
		return
	}
	m.conv.Copy(reply.Content)
	m.notice = noticeCopied
}

// clear resets the transcript. A reply still in flight lands in the new one.
// switchModel handles "/model <name>"
func (m *Model) switchModel(args []string) {
	if len(args) != 1 || !m.conv.SetModel(args[0]) {
		m.notice = noticeModelUsage
		return
	}
	m.modelName = args[0]
	m.notice = fmt.Sprintf("Model switched to %s", m.modelName)
}

func (m *Model) clear() {
	m.conv.Reset()
	m.notice = noticeCleared
	m.updateViewport()
	m.viewport.GotoTop()
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	var sections []string
	contentWidth := m.width - 4

	// Header
	headerContent := lipgloss.JoinHorizontal(lipgloss.Center,
		titleStyle.Render("🚀 Startup Mentor"),
		hintStyle.Render("  •  "),
		subtitleStyle.Render(m.modelName),
		hintStyle.Render("  •  "),
		subtitleStyle.Render(render.GetTUITheme().Name),
	)
	sections = append(sections, headerStyle.Width(contentWidth).Render(headerContent))

	// Messages
	messagesPanel := messagesAreaStyle.
		Width(contentWidth).
		Height(m.viewport.Height).
		Render(m.viewport.View())
	sections = append(sections, messagesPanel)

	// Input
	var inputContent string
	if m.loading {
		inputContent = m.renderLoadingAnimation()
	} else {
		label := lipgloss.JoinHorizontal(lipgloss.Top,
			inputLabelStyle.Render("Your idea"),
			counterStyle.Render(fmt.Sprintf("%d/%d", len([]rune(m.textarea.Value())), models.MaxInputLength)),
		)
		inputContent = lipgloss.JoinVertical(lipgloss.Left, label, m.textarea.View())
	}
	sections = append(sections, inputPanelStyle.Width(contentWidth).Render(inputContent))

	// Status bar
	sections = append(sections, m.renderStatusBar(contentWidth))

	if m.notice != "" {
		sections = append(sections, noticeStyle.Width(contentWidth).Align(lipgloss.Center).Render(m.notice))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderLoadingAnimation renders a colorful animated loading indicator
func (m Model) renderLoadingAnimation() string {
	chars := []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}
	barChars := []string{"█", "█", "█", "█", "█", "█", "█", "█", "▓", "▒", "░"}

	frame := m.animationFrame

	spinIdx := frame % len(chars)
	spinColor := gradientColors[frame%len(gradientColors)]
	spin := lipgloss.NewStyle().Foreground(spinColor).Bold(true).Render(chars[spinIdx])

	barWidth := 20
	var bar strings.Builder
	for i := 0; i < barWidth; i++ {
		colorIdx := (i + frame) % len(gradientColors)
		charIdx := (i + frame/2) % len(barChars)

		style := lipgloss.NewStyle().Foreground(gradientColors[colorIdx])
		bar.WriteString(style.Render(barChars[charIdx]))
	}

	var dots strings.Builder
	numDots := (frame / 3) % 4
	for i := 0; i < numDots; i++ {
		dotColor := gradientColors[(frame+i)%len(gradientColors)]
		dots.WriteString(lipgloss.NewStyle().Foreground(dotColor).Render("●"))
	}
	for i := numDots; i < 3; i++ {
		dots.WriteString(lipgloss.NewStyle().Foreground(colorTextMute).Render("○"))
	}

	text := lipgloss.NewStyle().Foreground(colorText).Render(" Analyzing your idea ")

	return fmt.Sprintf("%s %s %s %s", spin, bar.String(), text, dots.String())
}

// renderStatusBar renders the bottom status bar with shortcuts
func (m Model) renderStatusBar(width int) string {
	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Enter", "Send"},
		{"^Y", "Copy"},
		{"^L", "Clear"},
		{"^T", "Theme"},
		{"Esc", "Quit"},
	}

	var items []string
	for _, s := range shortcuts {
		item := lipgloss.JoinHorizontal(
			lipgloss.Center,
			statusKeyStyle.Render(s.key),
			statusDescStyle.Render(" "+s.desc),
		)
		items = append(items, item)
	}

	bar := strings.Join(items, "  │  ")
	return statusBarStyle.Width(width).Align(lipgloss.Center).Render(bar)
}

// updateViewport refreshes the viewport content from the transcript
func (m *Model) updateViewport() {
	var content strings.Builder
	bubbleWidth := m.viewport.Width - 6
	if bubbleWidth < 20 {
		bubbleWidth = 20
	}

	transcript := m.conv.Transcript()
	lastCopyable := -1
	for i := range transcript {
		if mentor.Copyable(transcript, i) {
			lastCopyable = i
		}
	}

	for i, msg := range transcript {
		if i > 0 {
			content.WriteString("\n")
		}

		if !msg.IsAssistant() {
			label := userLabelStyle.Render("● You")
			bubble := userBubbleStyle.Width(bubbleWidth).Render(msg.Content)
			content.WriteString(label + "\n" + bubble + "\n")
			continue
		}

		label := assistantLabelStyle.Render("🚀 Mentor")
		rendered := render.Reply(msg.Content, m.renderOpts.WithWidth(bubbleWidth-4))
		bubble := assistantBubbleStyle.Width(bubbleWidth).Render(rendered)
		content.WriteString(label + "\n" + bubble + "\n")

		if i == lastCopyable {
			content.WriteString(copyHintStyle.Render("  ⧉ ctrl+y to copy") + "\n")
		}
	}

	m.viewport.SetContent(content.String())
}

// RunChat starts the chat TUI for conv
func RunChat(conv *mentor.Conversation, modelName string, opts render.Options) error {
	m := NewChatModel(conv, modelName).WithRenderOptions(opts.ForTheme(render.GetTUITheme()))

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
