package commands

import (
	"bytes"
	"testing"

	"github.com/diogo/startupmentor/internal/api"
	"github.com/diogo/startupmentor/internal/config"
	"github.com/diogo/startupmentor/internal/mentor"
	"github.com/diogo/startupmentor/internal/render"
)

// fakeClipboard records writes
type fakeClipboard struct {
	written []string
	err     error
}

func (f *fakeClipboard) WriteAll(text string) error {
	if f.err != nil {
		return f.err
	}
	f.written = append(f.written, text)
	return nil
}

// mockTUI records the chat it was asked to run
type mockTUI struct {
	conv      *mentor.Conversation
	modelName string
	opts      render.Options
	err       error
}

func (m *mockTUI) RunChat(conv *mentor.Conversation, modelName string, opts render.Options) error {
	m.conv = conv
	m.modelName = modelName
	m.opts = opts
	return m.err
}

type testEnv struct {
	deps   *Dependencies
	client *api.MockOllamaClient
	tui    *mockTUI
	clip   *fakeClipboard
	out    *bytes.Buffer
	err    *bytes.Buffer
}

// newTestEnv isolates HOME, environment and global flags for a command test
func newTestEnv(t *testing.T, client *api.MockOllamaClient) *testEnv {
	t.Helper()

	t.Setenv("HOME", t.TempDir())
	t.Setenv(config.EnvEndpoint, "")
	t.Setenv(render.EnvStyle, "")

	resetFlags()
	t.Cleanup(resetFlags)

	env := &testEnv{
		client: client,
		tui:    &mockTUI{},
		clip:   &fakeClipboard{},
		out:    &bytes.Buffer{},
		err:    &bytes.Buffer{},
	}
	env.deps = &Dependencies{
		Client:    client,
		TUI:       env.tui,
		Clipboard: env.clip,
		Out:       env.out,
		Err:       env.err,
	}
	return env
}

func resetFlags() {
	modelFlag = ""
	endpointFlag = ""
	outputFlag = ""
	fileFlag = ""
	rawFlag = false
	verboseFlag = false
}

// saveConfig writes cfg as the user configuration
func saveConfig(t *testing.T, mutate func(*config.Config)) {
	t.Helper()
	cfg := config.DefaultConfig()
	mutate(&cfg)
	if err := config.SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}
}
