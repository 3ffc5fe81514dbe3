package api

import (
	"context"
	"sync"

	"github.com/diogo/startupmentor/internal/models"
)

// MockOllamaClient is a mock implementation of OllamaClientInterface for testing
type MockOllamaClient struct {
	// Mock return values
	ChatVal     *models.ChatReply
	ChatErr     error
	ModelsVal   []models.LocalModel
	ModelsErr   error
	VersionVal  string
	VersionErr  error
	Model       string
	Endpoint    string
	IsClosedVal bool
	// ChatFunc overrides ChatVal/ChatErr when set
	ChatFunc func(ctx context.Context, messages []models.ChatMessage) (*models.ChatReply, error)

	// Call recorders
	mu           sync.Mutex
	ChatCalls    int
	LastMessages []models.ChatMessage
	CloseCalled  bool
}

// Ensure MockOllamaClient implements OllamaClientInterface
var _ OllamaClientInterface = (*MockOllamaClient)(nil)

// NewMockOllamaClientWithReply returns a mock that answers every chat with content
func NewMockOllamaClientWithReply(content string) *MockOllamaClient {
	return &MockOllamaClient{
		ChatVal:  &models.ChatReply{Content: content, Found: content != "", Done: true, StatusCode: 200},
		Model:    models.DefaultModel,
		Endpoint: models.DefaultChatURL,
	}
}

func (m *MockOllamaClient) Chat(ctx context.Context, messages []models.ChatMessage) (*models.ChatReply, error) {
	m.mu.Lock()
	m.ChatCalls++
	m.LastMessages = append([]models.ChatMessage(nil), messages...)
	fn := m.ChatFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, messages)
	}
	return m.ChatVal, m.ChatErr
}

func (m *MockOllamaClient) ListModels(ctx context.Context) ([]models.LocalModel, error) {
	return m.ModelsVal, m.ModelsErr
}

func (m *MockOllamaClient) Version(ctx context.Context) (string, error) {
	return m.VersionVal, m.VersionErr
}

func (m *MockOllamaClient) GetModel() string {
	return m.Model
}

func (m *MockOllamaClient) SetModel(model string) {
	m.Model = model
}

func (m *MockOllamaClient) GetEndpoint() string {
	return m.Endpoint
}

func (m *MockOllamaClient) IsClosed() bool {
	return m.IsClosedVal
}

func (m *MockOllamaClient) Close() {
	m.CloseCalled = true
}

// Calls returns the number of Chat calls so far
func (m *MockOllamaClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ChatCalls
}

// Messages returns a copy of the messages sent with the last Chat call
func (m *MockOllamaClient) Messages() []models.ChatMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.ChatMessage(nil), m.LastMessages...)
}
