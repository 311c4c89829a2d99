package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wordapp/pkg/apperr"
)

func TestNewEmptyContent(t *testing.T) {
	state := NewEmptyContent()
	require.Len(t, state.Blocks, 1)
	assert.Equal(t, "", state.Blocks[0].Text)
	assert.Equal(t, BlockUnstyled, state.Blocks[0].Type)
	assert.Empty(t, state.Blocks[0].InlineStyleRanges)
	assert.NoError(t, state.Validate())
}

func TestNewContentAcceptsOverlappingStyles(t *testing.T) {
	block := NewUnstyledBlock("Hello World")
	block.InlineStyleRanges = []InlineStyleRange{
		{Style: StyleBold, Offset: 0, Length: 11},
		{Style: StyleItalic, Offset: 6, Length: 5},
		{Style: StyleBold, Offset: 6, Length: 5}, // redundant, not contradictory
	}

	state, err := NewContent([]Block{block})
	require.NoError(t, err)
	assert.Len(t, state.Blocks, 1)
}

func TestNewContentRejectsOutOfBoundsRange(t *testing.T) {
	cases := []InlineStyleRange{
		{Style: StyleBold, Offset: -1, Length: 2},
		{Style: StyleBold, Offset: 0, Length: -1},
		{Style: StyleBold, Offset: 3, Length: 3},
	}
	for _, r := range cases {
		block := NewUnstyledBlock("hello")
		block.InlineStyleRanges = []InlineStyleRange{r}

		_, err := NewContent([]Block{block})
		require.Error(t, err, "range %+v", r)
		assert.True(t, apperr.IsValidation(err))
	}
}

func TestValidateCountsUTF16Units(t *testing.T) {
	// An emoji is one rune but two UTF-16 code units, which is how the
	// editor counts offsets.
	block := NewUnstyledBlock("😀")
	block.InlineStyleRanges = []InlineStyleRange{{Style: StyleBold, Offset: 0, Length: 2}}
	_, err := NewContent([]Block{block})
	assert.NoError(t, err)

	block.InlineStyleRanges = []InlineStyleRange{{Style: StyleBold, Offset: 0, Length: 3}}
	_, err = NewContent([]Block{block})
	assert.Error(t, err)
}

func TestValidateRejectsEmptyBlockSequence(t *testing.T) {
	state := &ContentState{Blocks: nil, EntityMap: map[string]any{}}
	err := state.Validate()
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
}

func TestParseContentObject(t *testing.T) {
	raw := json.RawMessage(`{"blocks":[{"text":"Hi","type":"unstyled","depth":0,"inlineStyleRanges":[],"entityRanges":[],"data":{}}],"entityMap":{}}`)
	state, err := ParseContent(raw)
	require.NoError(t, err)
	require.Len(t, state.Blocks, 1)
	assert.Equal(t, "Hi", state.Blocks[0].Text)
}

func TestParseContentStringWrappedObject(t *testing.T) {
	// The editor serializes its state before posting, so the content field
	// arrives as a JSON string containing JSON.
	inner := `{"blocks":[{"text":"Hi","type":"unstyled","depth":0,"inlineStyleRanges":[],"entityRanges":[],"data":{}}],"entityMap":{}}`
	wrapped, err := json.Marshal(inner)
	require.NoError(t, err)

	state, err := ParseContent(wrapped)
	require.NoError(t, err)
	require.Len(t, state.Blocks, 1)
	assert.Equal(t, "Hi", state.Blocks[0].Text)
}

func TestParseContentRejectsGarbage(t *testing.T) {
	for _, raw := range []string{``, `null`, `"not json"`, `[1,2,3]`, `{"blocks":[]}`} {
		_, err := ParseContent(json.RawMessage(raw))
		require.Error(t, err, "input %q", raw)
		assert.True(t, apperr.IsValidation(err), "input %q", raw)
	}
}

func TestParseContentRejectsInvalidRanges(t *testing.T) {
	raw := json.RawMessage(`{"blocks":[{"text":"hi","type":"unstyled","inlineStyleRanges":[{"style":"BOLD","offset":0,"length":10}]}],"entityMap":{}}`)
	_, err := ParseContent(raw)
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
}

func TestSerializeEmitsEditorShape(t *testing.T) {
	data, err := NewEmptyContent().Serialize()
	require.NoError(t, err)
	assert.JSONEq(t, `{"blocks":[{"text":"","type":"unstyled","depth":0,"inlineStyleRanges":[],"entityRanges":[],"data":{}}],"entityMap":{}}`, data)
}
