package commands

import (
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/diogo/startupmentor/internal/api"
	"github.com/diogo/startupmentor/internal/config"
	"github.com/diogo/startupmentor/internal/models"
)

func TestRunConfig_ShowsResolvedConfig(t *testing.T) {
	env := newTestEnv(t, api.NewMockOllamaClientWithReply("ok"))
	t.Setenv(config.EnvEndpoint, "http://gpu-box:11434/api/chat")
	modelFlag = "phi3:mini"

	if err := runConfig(env.deps, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got config.Config
	if err := json.Unmarshal(env.out.Bytes(), &got); err != nil {
		t.Fatalf("stdout should be JSON: %v\n%s", err, env.out.String())
	}
	if got.Endpoint != "http://gpu-box:11434/api/chat" {
		t.Errorf("endpoint = %q, want the environment override", got.Endpoint)
	}
	if got.Model != "phi3:mini" {
		t.Errorf("model = %q, want the flag override", got.Model)
	}
	if !strings.Contains(env.err.String(), "config.json") {
		t.Errorf("stderr should show the config path, got %q", env.err.String())
	}

	path, _ := config.GetConfigPath()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("showing the config should not create the file")
	}
}

func TestRunConfig_Save(t *testing.T) {
	env := newTestEnv(t, api.NewMockOllamaClientWithReply("ok"))
	modelFlag = "phi3:mini"

	if err := runConfig(env.deps, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Model != "phi3:mini" {
		t.Errorf("saved model = %q, want phi3:mini", cfg.Model)
	}
	if cfg.Endpoint != models.DefaultChatURL {
		t.Errorf("saved endpoint = %q, want default", cfg.Endpoint)
	}
}

func TestNewConfigCmd_SaveFlag(t *testing.T) {
	cmd := NewConfigCmd(NewDependencies())
	if cmd.Flags().Lookup("save") == nil {
		t.Error("config command should have a --save flag")
	}
}
