package render

import (
	"strings"

	"github.com/diogo/startupmentor/internal/models"
)

// Markdown renders markdown content for terminal display.
// Uses a pooled renderer for better performance and thread safety.
func Markdown(content string, opts Options) (string, error) {
	renderer, err := globalPool.get(opts)
	if err != nil {
		return "", err
	}
	defer globalPool.put(opts, renderer)

	if opts.EmphasizeLabels {
		content = EmphasizeLabels(content)
	}
	return renderer.Render(content)
}

// Reply renders an assistant reply, falling back to the raw text when
// rendering fails. Trailing newlines added by glamour are trimmed.
func Reply(content string, opts Options) string {
	rendered, err := Markdown(content, opts)
	if err != nil {
		return content
	}
	return strings.TrimRight(rendered, "\n")
}

// EmphasizeLabels wraps each section label in bold markup. A label is
// followed by a space when the reply glued it to the section body.
func EmphasizeLabels(content string) string {
	for _, label := range models.SectionLabels() {
		idx := strings.Index(content, label)
		if idx < 0 {
			continue
		}
		rest := content[idx+len(label):]
		sep := " "
		if rest == "" || strings.HasPrefix(rest, " ") || strings.HasPrefix(rest, "\n") {
			sep = ""
		}
		content = content[:idx] + "**" + label + "**" + sep + rest
	}
	return content
}
