package scene

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestMarshalContentCarriesKind(t *testing.T) {
	c, err := DefaultContent(KindCodeBreaker)
	require.NoError(t, err)

	data, err := MarshalContent(c)
	require.NoError(t, err)
	assert.Equal(t, "CODEBREAKER", gjson.GetBytes(data, "kind").String())
	assert.Equal(t, int64(6), gjson.GetBytes(data, "maxGuesses").Int())

	back, err := UnmarshalContent(data)
	require.NoError(t, err)
	assert.Equal(t, c, back)
}

func TestUnmarshalContentErrors(t *testing.T) {
	_, err := UnmarshalContent([]byte(`{"question":"x"}`))
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = UnmarshalContent([]byte(`{"kind":"CROSSWORD"}`))
	assert.ErrorIs(t, err, ErrUnknownKind)

	_, err = UnmarshalContent([]byte(`{"kind":"MCQ","choices":"nope"}`))
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = UnmarshalContent([]byte(`not json`))
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestSceneJSON(t *testing.T) {
	in := Scene{ID: "s1", Content: Info{Text: "Welcome!", ContinueLabel: "Go"}}
	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.Equal(t, "INFO", gjson.GetBytes(data, "content.kind").String())

	var out Scene
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}
