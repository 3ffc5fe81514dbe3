// Package models contains data types and constants for the Ollama chat API.
package models

// Ollama endpoints, relative to the server base URL
const (
	DefaultBaseURL  = "http://localhost:11434"
	EndpointChat    = "/api/chat"
	EndpointTags    = "/api/tags"
	EndpointVersion = "/api/version"
)

// DefaultChatURL is the full chat endpoint used when nothing is configured
const DefaultChatURL = DefaultBaseURL + EndpointChat

// DefaultModel is the model the mentor was tuned against
const DefaultModel = "llama3:latest"

// Fixed texts shown in the transcript
const (
	SeedGreeting = "Hi 👋! I'm your Startup Mentor. Share your startup idea, and I'll analyze it like an expert founder."
	FallbackText = "Sorry, I couldn't analyze your idea. Please try again!"
	ErrorText    = "❌ Error connecting to Ollama. Make sure Ollama is running and the Llama 3 model is pulled."
)

// MaxInputLength mirrors the input cap of the web client
const MaxInputLength = 400

// DefaultHeaders returns the headers sent with every chat request
func DefaultHeaders() map[string]string {
	return map[string]string{
		"Content-Type": "application/json",
		"Accept":       "application/json",
	}
}

// BaseURL derives the server base URL from a chat endpoint URL.
// "http://host:11434/api/chat" becomes "http://host:11434".
func BaseURL(chatURL string) string {
	n := len(chatURL) - len(EndpointChat)
	if n > 0 && chatURL[n:] == EndpointChat {
		return chatURL[:n]
	}
	return chatURL
}

// Section labels of a normalized mentor reply, in prompt order.
const (
	LabelProblem         = "🧩 Problem:"
	LabelTargetAudience  = "🎯 Target Audience:"
	LabelMarketPotential = "📊 Market Potential:"
	LabelCompetitors     = "⚔️ Competitors:"
	LabelRisks           = "⚠️ Risks:"
	LabelPitch           = "🚀 Pitch:"
)

// SectionLabels returns the reply labels in prompt order.
func SectionLabels() []string {
	return []string{
		LabelProblem,
		LabelTargetAudience,
		LabelMarketPotential,
		LabelCompetitors,
		LabelRisks,
		LabelPitch,
	}
}
