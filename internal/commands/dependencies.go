package commands

import (
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/diogo/startupmentor/internal/api"
	"github.com/diogo/startupmentor/internal/config"
	"github.com/diogo/startupmentor/internal/mentor"
	"github.com/diogo/startupmentor/internal/render"
	"github.com/diogo/startupmentor/internal/tui"
)

// TUIInterface defines the methods required from the TUI package.
type TUIInterface interface {
	RunChat(conv *mentor.Conversation, modelName string, opts render.Options) error
}

// Dependencies holds the external dependencies for the commands.
// This allows for dependency injection and easier testing.
type Dependencies struct {
	// Client is the Ollama API client. When nil, one is built from the config.
	Client api.OllamaClientInterface

	// TUI is the terminal user interface.
	TUI TUIInterface

	// Clipboard receives copied replies.
	Clipboard mentor.Clipboard

	// Out and Err replace stdout and stderr.
	Out io.Writer
	Err io.Writer
}

// DefaultTUI is the production implementation of TUIInterface.
type DefaultTUI struct{}

func (d *DefaultTUI) RunChat(conv *mentor.Conversation, modelName string, opts render.Options) error {
	return tui.RunChat(conv, modelName, opts)
}

// NewDependencies creates a new Dependencies struct with default implementations.
func NewDependencies() *Dependencies {
	return &Dependencies{
		TUI:       &DefaultTUI{},
		Clipboard: mentor.SystemClipboard{},
		Out:       os.Stdout,
		Err:       os.Stderr,
	}
}

// client returns the injected client or builds one from cfg
func (d *Dependencies) client(cfg config.Config, log zerolog.Logger) (api.OllamaClientInterface, error) {
	if d.Client != nil {
		return d.Client, nil
	}
	return api.NewClient(
		api.WithEndpoint(cfg.Endpoint),
		api.WithModel(cfg.Model),
		api.WithTimeout(cfg.TimeoutSeconds),
		api.WithProxy(cfg.Proxy),
		api.WithInsecureSkipVerify(cfg.InsecureSkipVerify),
		api.WithLogger(log),
	)
}

func (d *Dependencies) clipboard() mentor.Clipboard {
	if d.Clipboard == nil {
		return mentor.SystemClipboard{}
	}
	return d.Clipboard
}

func (d *Dependencies) out() io.Writer {
	if d.Out == nil {
		return os.Stdout
	}
	return d.Out
}

func (d *Dependencies) errOut() io.Writer {
	if d.Err == nil {
		return os.Stderr
	}
	return d.Err
}
