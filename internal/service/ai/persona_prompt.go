package ai

import (
	"fmt"
	"strings"

	"github.com/chasingbytes/resume/backend/internal/model/profile"
)

// BuildPersonaDescriptor renders the fixed system message for the assistant.
// It is computed once at startup and shared by every session.
func BuildPersonaDescriptor(p profile.Profile) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("You are a helpful assistant that answers questions about %s.\n\n", p.Name))
	builder.WriteString(strings.TrimSpace(p.AssistantBrief))

	var docs []string
	for _, doc := range p.Documents {
		if strings.HasPrefix(doc.MIME, "image/") {
			continue
		}
		docs = append(docs, fmt.Sprintf("- %s (download: %s)", doc.Label, profile.DocumentPath(doc.Name)))
	}
	if len(docs) > 0 {
		builder.WriteString("\n\nSupplementary documents on the resume page:\n")
		builder.WriteString(strings.Join(docs, "\n"))
	}

	if p.Email != "" {
		builder.WriteString(fmt.Sprintf("\n\nIf a question is not covered above, say so and suggest contacting %s at %s.", p.Name, p.Email))
	}
	return builder.String()
}
