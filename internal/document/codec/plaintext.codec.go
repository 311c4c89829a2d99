// Package codec converts between the editor's rich content state and the
// plain-text files held in storage. The storage side is deliberately lossy:
// inline styling does not survive a save, only block text does.
package codec

import (
	"strings"

	"wordapp/internal/document/model"
)

// blockSeparator joins blocks in the stored plain text. Existing files were
// written with this exact separator, so it must not change.
const blockSeparator = "\n\n"

// Encode flattens a content state to plain text: each block's text in order,
// joined by a blank line. Every block is emitted verbatim, blank ones
// included; inline style ranges are discarded. Fails only when the content
// state itself is structurally invalid.
func Encode(state *model.ContentState) (string, error) {
	if err := state.Validate(); err != nil {
		return "", err
	}
	texts := make([]string, len(state.Blocks))
	for i, b := range state.Blocks {
		texts[i] = b.Text
	}
	return strings.Join(texts, blockSeparator), nil
}

// Decode rebuilds a content state from stored plain text. Each blank-line
// separated segment becomes one unstyled block; empty and whitespace-only
// segments are dropped. Never fails: the file may have been created outside
// this system, so anything unparseable degrades to a single empty block.
func Decode(plainText string) *model.ContentState {
	var blocks []model.Block
	for _, segment := range strings.Split(plainText, blockSeparator) {
		if strings.TrimSpace(segment) == "" {
			continue
		}
		blocks = append(blocks, model.NewUnstyledBlock(segment))
	}
	if len(blocks) == 0 {
		return model.NewEmptyContent()
	}
	return &model.ContentState{Blocks: blocks, EntityMap: map[string]any{}}
}
