package formatter

import (
	"fmt"

	"github.com/personalab/chat-backend/internal/entity"
)

const baseTitle = "Conversation transcript"

// Formatter renders an archived conversation for download.
type Formatter interface {
	Format(conversation *entity.Conversation) ([]byte, error)
	ContentType() string
	FileExtension() string
}

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) Create(format entity.ExportFormat) (Formatter, error) {
	switch format {
	case entity.FormatMarkdown:
		return NewMarkdownFormatter(), nil
	case entity.FormatJSON:
		return NewJSONFormatter(), nil
	case entity.FormatPDF:
		return NewPDFFormatter(), nil
	default:
		return nil, fmt.Errorf("%w: %s", entity.ErrInvalidFormat, format)
	}
}

// roleLabel renders a turn role for human readable transcripts.
func roleLabel(role entity.Role) string {
	switch role {
	case entity.RoleUser:
		return "You"
	case entity.RoleAssistant:
		return "Assistant"
	default:
		return string(role)
	}
}
