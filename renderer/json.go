package renderer

import (
	"encoding/json"
	"io"

	"github.com/pluglint/pluglint/analyzer"
)

// JSONRenderer renders messages in JSON format.
type JSONRenderer struct{}

func NewJSONRenderer() Renderer {
	return &JSONRenderer{}
}

func (r *JSONRenderer) Render(messages []*analyzer.Message, output io.Writer) error {
	if messages == nil {
		messages = []*analyzer.Message{}
	}
	return json.NewEncoder(output).Encode(messages)
}

func (r *JSONRenderer) Format() string {
	return "json"
}
