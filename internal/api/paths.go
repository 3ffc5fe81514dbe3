// Package api provides the Ollama HTTP client.
package api

// GJSON paths for extracting values from Ollama responses.
const (
	// POST /api/chat (stream: false)
	PathMessageContent = "message.content"
	PathModel          = "model"
	PathDone           = "done"
	PathError          = "error"

	// GET /api/tags
	PathModelsList      = "models"
	PathModelName       = "name"
	PathModelSize       = "size"
	PathModelModifiedAt = "modified_at"
	PathModelFamily     = "details.family"

	// GET /api/version
	PathVersion = "version"
)
