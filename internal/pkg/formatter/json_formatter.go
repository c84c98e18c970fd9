package formatter

import (
	"encoding/json"

	"github.com/personalab/chat-backend/internal/entity"
)

const (
	jsonContentType   = "application/json; charset=utf-8"
	jsonFileExtension = ".json"
)

type JSONFormatter struct{}

func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

func (jf *JSONFormatter) Format(conversation *entity.Conversation) ([]byte, error) {
	return json.MarshalIndent(conversation, "", "  ")
}

func (jf *JSONFormatter) ContentType() string {
	return jsonContentType
}

func (jf *JSONFormatter) FileExtension() string {
	return jsonFileExtension
}
