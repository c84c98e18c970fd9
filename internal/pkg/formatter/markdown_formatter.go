package formatter

import (
	"bytes"
	"fmt"

	"github.com/personalab/chat-backend/internal/entity"
)

const (
	markdownContentType   = "text/markdown; charset=utf-8"
	markdownFileExtension = ".md"
)

type MarkdownFormatter struct{}

func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

func (mf *MarkdownFormatter) Format(conversation *entity.Conversation) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n\n", baseTitle)
	fmt.Fprintf(&buf, "- Persona: %s\n", conversation.Persona)
	fmt.Fprintf(&buf, "- Purpose: %s\n", conversation.Purpose)
	fmt.Fprintf(&buf, "- Date: %s\n\n", conversation.CreatedAt.Format("2006-01-02 15:04"))

	for _, turn := range conversation.Messages {
		fmt.Fprintf(&buf, "**%s:** %s\n\n", roleLabel(turn.Role), turn.Content)
	}

	return buf.Bytes(), nil
}

func (mf *MarkdownFormatter) ContentType() string {
	return markdownContentType
}

func (mf *MarkdownFormatter) FileExtension() string {
	return markdownFileExtension
}
