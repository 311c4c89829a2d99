package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"unicode/utf16"

	"wordapp/pkg/apperr"
)

// Block types and inline styles as the editor's raw format names them. Only
// BlockUnstyled is ever produced by the codec; richer types flow through at
// edit time untouched.
const (
	BlockUnstyled = "unstyled"

	StyleBold      = "BOLD"
	StyleItalic    = "ITALIC"
	StyleUnderline = "UNDERLINE"
)

// InlineStyleRange annotates a span of a block's text with a style. Offsets
// count UTF-16 code units, matching the editor's raw content format.
type InlineStyleRange struct {
	Style  string `json:"style"`
	Offset int    `json:"offset"`
	Length int    `json:"length"`
}

// EntityRange anchors an entity over a span of a block's text. The server
// never produces these but must not drop them on the way through.
type EntityRange struct {
	Key    int `json:"key"`
	Offset int `json:"offset"`
	Length int `json:"length"`
}

// Block is one paragraph-equivalent unit of a document.
type Block struct {
	Key               string             `json:"key,omitempty"`
	Text              string             `json:"text"`
	Type              string             `json:"type"`
	Depth             int                `json:"depth"`
	InlineStyleRanges []InlineStyleRange `json:"inlineStyleRanges"`
	EntityRanges      []EntityRange      `json:"entityRanges"`
	Data              map[string]any     `json:"data"`
}

// ContentState is the in-memory representation of a rich-text document: an
// ordered sequence of blocks plus the entity map the editor round-trips.
type ContentState struct {
	Blocks    []Block        `json:"blocks"`
	EntityMap map[string]any `json:"entityMap"`
}

// NewEmptyContent returns a content state with exactly one empty unstyled
// block, the smallest state the editor accepts.
func NewEmptyContent() *ContentState {
	return &ContentState{
		Blocks:    []Block{newBlock("")},
		EntityMap: map[string]any{},
	}
}

// NewContent builds a content state from blocks, rejecting any block whose
// style ranges fall outside its text.
func NewContent(blocks []Block) (*ContentState, error) {
	state := &ContentState{Blocks: blocks, EntityMap: map[string]any{}}
	if err := state.Validate(); err != nil {
		return nil, err
	}
	return state, nil
}

// Validate checks every inline style range against its block's text length.
// Overlapping ranges are fine; out-of-bounds offsets are not.
func (s *ContentState) Validate() error {
	if s == nil || len(s.Blocks) == 0 {
		return apperr.Validation("content must contain at least one block")
	}
	for i, b := range s.Blocks {
		textLen := utf16Len(b.Text)
		for _, r := range b.InlineStyleRanges {
			if r.Offset < 0 || r.Length < 0 || r.Offset+r.Length > textLen {
				return apperr.Validation(fmt.Sprintf(
					"block %d: style range %s [%d,%d) exceeds text length %d",
					i, r.Style, r.Offset, r.Offset+r.Length, textLen))
			}
		}
	}
	return nil
}

// ParseContent decodes the editor payload into a content state. The client
// sends either the raw object or the same object wrapped in a JSON string;
// both are accepted. The result is validated.
func ParseContent(raw json.RawMessage) (*ContentState, error) {
	data := bytes.TrimSpace(raw)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, apperr.Validation("content is required")
	}

	if data[0] == '"' {
		var unwrapped string
		if err := json.Unmarshal(data, &unwrapped); err != nil {
			return nil, apperr.Validation("content is not valid JSON")
		}
		data = []byte(unwrapped)
	}

	var state ContentState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, apperr.Validation("content could not be parsed")
	}
	if state.EntityMap == nil {
		state.EntityMap = map[string]any{}
	}
	if err := state.Validate(); err != nil {
		return nil, err
	}
	return &state, nil
}

// Serialize renders the content state as the JSON string the editor loads.
func (s *ContentState) Serialize() (string, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return "", apperr.Upstream("failed to serialize content", err)
	}
	return string(data), nil
}

func newBlock(text string) Block {
	return Block{
		Text:              text,
		Type:              BlockUnstyled,
		Depth:             0,
		InlineStyleRanges: []InlineStyleRange{},
		EntityRanges:      []EntityRange{},
		Data:              map[string]any{},
	}
}

// NewUnstyledBlock returns a plain block holding text.
func NewUnstyledBlock(text string) Block {
	return newBlock(text)
}

func utf16Len(s string) int {
	return len(utf16.Encode([]rune(s)))
}
