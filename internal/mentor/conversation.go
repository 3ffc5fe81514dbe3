package mentor

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/diogo/startupmentor/internal/models"
)

// Chatter sends a conversation to the model and returns its reply
type Chatter interface {
	Chat(ctx context.Context, messages []models.ChatMessage) (*models.ChatReply, error)
}

// ModelSwitcher is implemented by clients that can change model between requests
type ModelSwitcher interface {
	SetModel(model string)
}

// Conversation owns the transcript and the in-flight flag.
//
// It is either idle or awaiting a reply. Begin moves it to awaiting-reply,
// Turn.Run moves it back. Submissions made while awaiting a reply are rejected.
type Conversation struct {
	client Chatter
	clip   Clipboard
	log    zerolog.Logger
	prompt string

	mu         sync.Mutex
	transcript []models.Message
	inFlight   bool
}

// Option configures a Conversation
type Option func(*Conversation)

// WithClipboard replaces the system clipboard
func WithClipboard(clip Clipboard) Option {
	return func(c *Conversation) {
		c.clip = clip
	}
}

// WithLogger sets the logger
func WithLogger(log zerolog.Logger) Option {
	return func(c *Conversation) {
		c.log = log
	}
}

// WithSystemPrompt replaces the mentor instruction
func WithSystemPrompt(prompt string) Option {
	return func(c *Conversation) {
		c.prompt = prompt
	}
}

// New creates a conversation seeded with the mentor greeting
func New(client Chatter, opts ...Option) *Conversation {
	c := &Conversation{
		client:     client,
		clip:       SystemClipboard{},
		log:        zerolog.Nop(),
		prompt:     SystemPrompt,
		transcript: []models.Message{seedMessage()},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func seedMessage() models.Message {
	return models.NewMessage(models.RoleAssistant, models.SeedGreeting)
}

// Turn is an accepted submission waiting for its reply
type Turn struct {
	conv    *Conversation
	user    models.Message
	payload []models.ChatMessage

	once  sync.Once
	reply models.Message
}

// User returns the user message the turn appended
func (t *Turn) User() models.Message {
	return t.user
}

// Begin validates text and, when accepted, appends the user message and marks
// the conversation in flight. It returns false for blank input or when a reply
// is already awaited; the transcript is unchanged in both cases.
func (c *Conversation) Begin(text string) (*Turn, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.inFlight {
		c.log.Debug().Msg("submission rejected: reply pending")
		return nil, false
	}

	user := models.NewMessage(models.RoleUser, text)
	c.transcript = append(c.transcript, user)
	c.inFlight = true

	payload := make([]models.ChatMessage, 0, len(c.transcript)+1)
	payload = append(payload, models.ChatMessage{Role: models.RoleSystem, Content: c.prompt})
	for _, m := range c.transcript {
		payload = append(payload, models.ChatMessage{Role: m.Role, Content: m.Content})
	}

	c.log.Info().Str("message_id", user.ID).Int("transcript_len", len(c.transcript)).Msg("idea submitted")

	return &Turn{conv: c, user: user, payload: payload}, true
}

// Run performs the network call and appends the assistant reply. Failures are
// turned into the fixed error message. The in-flight flag is always cleared.
// Calling Run again returns the same reply without another request.
func (t *Turn) Run(ctx context.Context) models.Message {
	t.once.Do(func() {
		reply, err := t.conv.client.Chat(ctx, t.payload)
		t.reply = models.NewMessage(models.RoleAssistant, t.conv.replyText(reply, err))
		t.conv.finish(t.reply)
	})
	return t.reply
}

func (c *Conversation) replyText(reply *models.ChatReply, err error) string {
	if err != nil {
		c.log.Warn().Err(err).Msg("chat request failed")
		return models.ErrorText
	}

	content := models.FallbackText
	if reply != nil && reply.Found {
		content = reply.Content
	} else if reply != nil {
		c.log.Warn().
			Int("status", reply.StatusCode).
			Str("server_error", reply.ServerError).
			Msg("chat response had no content")
	}
	return NormalizeLabels(content)
}

func (c *Conversation) finish(reply models.Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.transcript = append(c.transcript, reply)
	c.inFlight = false
}

// Submit is Begin followed by Run. It returns false when the submission was
// rejected.
func (c *Conversation) Submit(ctx context.Context, text string) (models.Message, bool) {
	turn, ok := c.Begin(text)
	if !ok {
		return models.Message{}, false
	}
	return turn.Run(ctx), true
}

// Reset replaces the transcript with the seed greeting
func (c *Conversation) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.transcript = []models.Message{seedMessage()}
	c.log.Info().Msg("conversation reset")
}

// SetModel switches the model used by later requests. It returns false for a
// blank name, while a reply is awaited, or when the client cannot switch.
func (c *Conversation) SetModel(model string) bool {
	model = strings.TrimSpace(model)
	if model == "" {
		return false
	}
	switcher, ok := c.client.(ModelSwitcher)
	if !ok {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inFlight {
		return false
	}
	switcher.SetModel(model)
	c.log.Info().Str("model", model).Msg("model switched")
	return true
}

// Copy writes text to the clipboard. Failures are logged, never returned.
func (c *Conversation) Copy(text string) {
	if err := c.clip.WriteAll(text); err != nil {
		c.log.Warn().Err(err).Msg("clipboard write failed")
	}
}

// Transcript returns a copy of the transcript in insertion order
func (c *Conversation) Transcript() []models.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Message, len(c.transcript))
	copy(out, c.transcript)
	return out
}

// Len returns the number of messages in the transcript
func (c *Conversation) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.transcript)
}

// InFlight reports whether a reply is awaited
func (c *Conversation) InFlight() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight
}

// Copyable reports whether the message at index i offers a copy action.
// Only assistant replies qualify; the seed greeting at index 0 never does.
func Copyable(transcript []models.Message, i int) bool {
	return i > 0 && i < len(transcript) && transcript[i].IsAssistant()
}

// LastReply returns the most recent copyable assistant message
func (c *Conversation) LastReply() (models.Message, bool) {
	transcript := c.Transcript()
	for i := len(transcript) - 1; i > 0; i-- {
		if Copyable(transcript, i) {
			return transcript[i], true
		}
	}
	return models.Message{}, false
}
