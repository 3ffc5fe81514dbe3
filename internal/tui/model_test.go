package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/diogo/startupmentor/internal/api"
	apierrors "github.com/diogo/startupmentor/internal/errors"
	"github.com/diogo/startupmentor/internal/mentor"
	"github.com/diogo/startupmentor/internal/models"
	"github.com/diogo/startupmentor/internal/render"
)

// fakeClipboard records writes
type fakeClipboard struct {
	written []string
}

func (f *fakeClipboard) WriteAll(text string) error {
	f.written = append(f.written, text)
	return nil
}

func newTestModel(t *testing.T, client *api.MockOllamaClient) (Model, *mentor.Conversation, *fakeClipboard) {
	t.Helper()
	clip := &fakeClipboard{}
	conv := mentor.New(client, mentor.WithClipboard(clip))
	m := NewChatModel(conv, models.DefaultModel)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(Model), conv, clip
}

func press(t *testing.T, m Model, key tea.KeyType) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(tea.KeyMsg{Type: key})
	return updated.(Model), cmd
}

// typeAndSend puts text in the input and presses enter
func typeAndSend(t *testing.T, m Model, text string) (Model, tea.Cmd) {
	t.Helper()
	m.textarea.SetValue(text)
	return press(t, m, tea.KeyEnter)
}

// findReply executes cmd and the commands of any batch until the turn reply shows up
func findReply(t *testing.T, cmd tea.Cmd) replyMsg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	switch msg := cmd().(type) {
	case replyMsg:
		return msg
	case tea.BatchMsg:
		for _, c := range msg {
			if c == nil {
				continue
			}
			if reply, ok := c().(replyMsg); ok {
				return reply
			}
		}
	}
	t.Fatal("command did not produce a reply")
	return replyMsg{}
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestNewChatModel(t *testing.T) {
	m, conv, _ := newTestModel(t, api.NewMockOllamaClientWithReply("ok"))

	if m.textarea.CharLimit != models.MaxInputLength {
		t.Errorf("CharLimit = %d, want %d", m.textarea.CharLimit, models.MaxInputLength)
	}
	if m.loading {
		t.Error("new model should not be loading")
	}
	if !m.ready {
		t.Error("model should be ready after a window size message")
	}
	if conv.Len() != 1 {
		t.Errorf("expected seed-only transcript, got %d messages", conv.Len())
	}
}

func TestModel_SubmitAndReply(t *testing.T) {
	client := api.NewMockOllamaClientWithReply("Problem: vets are hard to book. Pitch: book in one tap.")
	m, conv, _ := newTestModel(t, client)

	m, cmd := typeAndSend(t, m, "  pet care app  ")

	if !m.loading {
		t.Error("model should be loading after submit")
	}
	if !conv.InFlight() {
		t.Error("conversation should be in flight after submit")
	}
	transcript := conv.Transcript()
	if len(transcript) != 2 {
		t.Fatalf("expected 2 messages after submit, got %d", len(transcript))
	}
	if transcript[1].Role != models.RoleUser || transcript[1].Content != "pet care app" {
		t.Errorf("unexpected user message: %+v", transcript[1])
	}
	if m.textarea.Value() != "" {
		t.Errorf("input should be cleared, got %q", m.textarea.Value())
	}
	if client.Calls() != 0 {
		t.Error("network call should run inside the command, not in Update")
	}

	reply := findReply(t, cmd)
	updated, _ := m.Update(reply)
	m = updated.(Model)

	if m.loading {
		t.Error("model should stop loading after the reply")
	}
	transcript = conv.Transcript()
	if len(transcript) != 3 {
		t.Fatalf("expected 3 messages after reply, got %d", len(transcript))
	}
	if !strings.HasPrefix(transcript[2].Content, models.LabelProblem) {
		t.Errorf("reply should be normalized, got %q", transcript[2].Content)
	}
}

func TestModel_BlankInputIgnored(t *testing.T) {
	m, conv, _ := newTestModel(t, api.NewMockOllamaClientWithReply("ok"))

	for _, input := range []string{"", "   ", "\t"} {
		var cmd tea.Cmd
		m, cmd = typeAndSend(t, m, input)
		if cmd != nil {
			t.Errorf("blank input %q should not produce a command", input)
		}
	}
	if m.loading {
		t.Error("blank input should not start loading")
	}
	if conv.Len() != 1 {
		t.Errorf("transcript should be unchanged, got %d messages", conv.Len())
	}
}

func TestModel_InputDisabledWhileLoading(t *testing.T) {
	m, conv, _ := newTestModel(t, api.NewMockOllamaClientWithReply("ok"))

	m, _ = typeAndSend(t, m, "first idea")
	m, cmd := typeAndSend(t, m, "second idea")

	if cmd != nil {
		t.Error("submit while loading should not produce a command")
	}
	if m.notice != noticeBusy {
		t.Errorf("notice = %q, want %q", m.notice, noticeBusy)
	}
	if conv.Len() != 2 {
		t.Errorf("transcript should hold seed and first idea only, got %d", conv.Len())
	}
}

func TestModel_NetworkFailureShowsErrorText(t *testing.T) {
	client := &api.MockOllamaClient{ChatErr: errors.New("connection refused")}
	m, conv, _ := newTestModel(t, client)

	m, cmd := typeAndSend(t, m, "idea")
	updated, _ := m.Update(findReply(t, cmd))
	m = updated.(Model)

	if m.loading || conv.InFlight() {
		t.Error("in-flight state should be cleared after a failure")
	}
	transcript := conv.Transcript()
	if got := transcript[len(transcript)-1].Content; got != models.ErrorText {
		t.Errorf("last message = %q, want error text", got)
	}
}

func TestModel_ExitCommands(t *testing.T) {
	for _, input := range []string{"exit", "quit", "/exit", "/quit"} {
		t.Run(input, func(t *testing.T) {
			m, conv, _ := newTestModel(t, api.NewMockOllamaClientWithReply("ok"))
			_, cmd := typeAndSend(t, m, input)
			if !isQuit(cmd) {
				t.Errorf("%q should quit", input)
			}
			if conv.Len() != 1 {
				t.Error("exit command should not be sent as an idea")
			}
		})
	}
}

func TestModel_SwitchModel(t *testing.T) {
	testCases := []struct {
		name       string
		input      string
		wantModel  string
		wantNotice string
	}{
		{"switches", "/model mistral:7b", "mistral:7b", "Model switched to mistral:7b"},
		{"missing name", "/model", models.DefaultModel, noticeModelUsage},
		{"too many words", "/model a b", models.DefaultModel, noticeModelUsage},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mock := api.NewMockOllamaClientWithReply("ok")
			m, conv, _ := newTestModel(t, mock)

			m, cmd := typeAndSend(t, m, tc.input)
			if cmd != nil {
				t.Error("a model switch should not start a request")
			}
			if conv.Len() != 1 {
				t.Errorf("transcript length = %d, want 1", conv.Len())
			}
			if mock.GetModel() != tc.wantModel {
				t.Errorf("client model = %s, want %s", mock.GetModel(), tc.wantModel)
			}
			if m.modelName != tc.wantModel {
				t.Errorf("header model = %s, want %s", m.modelName, tc.wantModel)
			}
			if m.notice != tc.wantNotice {
				t.Errorf("notice = %q, want %q", m.notice, tc.wantNotice)
			}
			if m.textarea.Value() != "" {
				t.Error("input should be cleared")
			}
		})
	}
}

func TestModel_Clear(t *testing.T) {
	testCases := []struct {
		name  string
		clear func(t *testing.T, m Model) Model
	}{
		{
			name: "slash command",
			clear: func(t *testing.T, m Model) Model {
				m, _ = typeAndSend(t, m, "/clear")
				return m
			},
		},
		{
			name: "ctrl+l",
			clear: func(t *testing.T, m Model) Model {
				m, _ = press(t, m, tea.KeyCtrlL)
				return m
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m, conv, _ := newTestModel(t, api.NewMockOllamaClientWithReply("ok"))

			m, cmd := typeAndSend(t, m, "idea")
			updated, _ := m.Update(findReply(t, cmd))
			m = updated.(Model)

			m = tc.clear(t, m)

			transcript := conv.Transcript()
			if len(transcript) != 1 || transcript[0].Content != models.SeedGreeting {
				t.Errorf("expected seed-only transcript, got %+v", transcript)
			}
			if m.notice != noticeCleared {
				t.Errorf("notice = %q, want %q", m.notice, noticeCleared)
			}
		})
	}
}

func TestModel_CopyLastReply(t *testing.T) {
	m, _, clip := newTestModel(t, api.NewMockOllamaClientWithReply("Pitch: hi"))

	m, _ = press(t, m, tea.KeyCtrlY)
	if m.notice != noticeNothingCopy {
		t.Errorf("notice = %q, want %q", m.notice, noticeNothingCopy)
	}
	if len(clip.written) != 0 {
		t.Error("seed greeting should never be copied")
	}

	m, cmd := typeAndSend(t, m, "idea")
	updated, _ := m.Update(findReply(t, cmd))
	m = updated.(Model)

	m, _ = press(t, m, tea.KeyCtrlY)
	if m.notice != noticeCopied {
		t.Errorf("notice = %q, want %q", m.notice, noticeCopied)
	}
	if len(clip.written) != 1 || clip.written[0] != models.LabelPitch+"hi" {
		t.Errorf("unexpected clipboard writes: %q", clip.written)
	}
}

func TestModel_ToggleTheme(t *testing.T) {
	render.SetTUITheme(render.DarkThemeName)
	UpdateTheme()
	defer func() {
		render.SetTUITheme(render.DarkThemeName)
		UpdateTheme()
	}()

	m, _, _ := newTestModel(t, api.NewMockOllamaClientWithReply("ok"))
	if m.renderOpts.Style != "dark" {
		t.Fatalf("initial style = %q, want dark", m.renderOpts.Style)
	}

	m, _ = press(t, m, tea.KeyCtrlT)
	if render.GetTUITheme().Name != render.LightThemeName {
		t.Errorf("theme = %q, want %q", render.GetTUITheme().Name, render.LightThemeName)
	}
	if m.renderOpts.Style != "light" {
		t.Errorf("style = %q, want light", m.renderOpts.Style)
	}
	if colorPrimary != render.TokyoNightDayTheme.Primary {
		t.Error("styles should follow the light theme")
	}

	m, _ = press(t, m, tea.KeyCtrlT)
	if m.renderOpts.Style != "dark" {
		t.Errorf("style = %q, want dark after second toggle", m.renderOpts.Style)
	}
}

func TestModel_ToggleThemeKeepsPinnedStyle(t *testing.T) {
	render.SetTUITheme(render.DarkThemeName)
	UpdateTheme()
	defer func() {
		render.SetTUITheme(render.DarkThemeName)
		UpdateTheme()
	}()

	m, _, _ := newTestModel(t, api.NewMockOllamaClientWithReply("ok"))
	m = m.WithRenderOptions(render.DefaultOptions().WithStyle("dracula"))

	m, _ = press(t, m, tea.KeyCtrlT)
	if render.GetTUITheme().Name != render.LightThemeName {
		t.Errorf("theme = %q, want %q", render.GetTUITheme().Name, render.LightThemeName)
	}
	if m.renderOpts.Style != "dracula" {
		t.Errorf("style = %q, want the pinned dracula style", m.renderOpts.Style)
	}
}

func TestModel_Esc(t *testing.T) {
	t.Run("quits when idle", func(t *testing.T) {
		m, _, _ := newTestModel(t, api.NewMockOllamaClientWithReply("ok"))
		_, cmd := press(t, m, tea.KeyEsc)
		if !isQuit(cmd) {
			t.Error("esc should quit when idle")
		}
	})

	t.Run("ignored while loading", func(t *testing.T) {
		m, _, _ := newTestModel(t, api.NewMockOllamaClientWithReply("ok"))
		m, _ = typeAndSend(t, m, "idea")
		m, cmd := press(t, m, tea.KeyEsc)
		if cmd != nil {
			t.Error("esc should not quit while a reply is awaited")
		}
		if m.notice != noticeBusy {
			t.Errorf("notice = %q, want %q", m.notice, noticeBusy)
		}
	})

	t.Run("ctrl+c always quits", func(t *testing.T) {
		m, _, _ := newTestModel(t, api.NewMockOllamaClientWithReply("ok"))
		m, _ = typeAndSend(t, m, "idea")
		_, cmd := press(t, m, tea.KeyCtrlC)
		if !isQuit(cmd) {
			t.Error("ctrl+c should quit")
		}
	})
}

func TestModel_View(t *testing.T) {
	var m Model
	if !strings.Contains(m.View(), "Initializing") {
		t.Error("unsized model should show the initializing view")
	}

	m, _, _ = newTestModel(t, api.NewMockOllamaClientWithReply("ok"))
	view := m.View()
	for _, want := range []string{"Startup Mentor", models.DefaultModel, "Send"} {
		if !strings.Contains(view, want) {
			t.Errorf("view should contain %q", want)
		}
	}

	m, _ = typeAndSend(t, m, "idea")
	if !strings.Contains(m.View(), "Analyzing your idea") {
		t.Error("loading view should show the loading indicator")
	}
}

func TestFormatError(t *testing.T) {
	if FormatError(nil) != "" {
		t.Error("nil error should format to empty string")
	}

	testCases := []struct {
		name     string
		err      error
		contains string
	}{
		{
			name:     "network",
			err:      apierrors.NewNetworkErrorWithEndpoint("version", "http://localhost:11434/api/version", errors.New("refused")),
			contains: "ollama serve",
		},
		{
			name:     "api with body",
			err:      apierrors.NewAPIErrorWithBody(404, "/api/tags", "not found", "page missing"),
			contains: "page missing",
		},
		{
			name:     "parse",
			err:      apierrors.NewParseError("invalid JSON", ""),
			contains: "JSON",
		},
		{
			name:     "api without body",
			err:      apierrors.NewAPIError(500, "/api/chat", "failed"),
			contains: "mentor models",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatError(tc.err); !strings.Contains(got, tc.contains) {
				t.Errorf("FormatError() = %q, want it to contain %q", got, tc.contains)
			}
		})
	}
}
