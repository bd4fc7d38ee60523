package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONFencedBlock(t *testing.T) {
	text := "Sure! Here's the JSON: ```json\n[1,2,3]\n``` Hope that helps!"

	raw, err := ExtractJSON(text)
	require.NoError(t, err)
	assert.JSONEq(t, "[1,2,3]", string(raw))
}

func TestExtractJSONFencedWithoutLanguage(t *testing.T) {
	text := "```\n{\"a\": 1}\n```"

	raw, err := ExtractJSON(text)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(raw))
}

func TestExtractJSONProseWrapped(t *testing.T) {
	text := `Of course. The criteria are {"required_terms": ["python"]} as requested.`

	raw, err := ExtractJSON(text)
	require.NoError(t, err)
	assert.JSONEq(t, `{"required_terms":["python"]}`, string(raw))
}

func TestExtractJSONSmartQuotesAndTrailingComma(t *testing.T) {
	text := "{“key”: “value”,}"

	raw, err := ExtractJSON(text)
	require.NoError(t, err)
	assert.JSONEq(t, `{"key":"value"}`, string(raw))
}

func TestExtractJSONRepairsBareKeysAndSingleQuotes(t *testing.T) {
	text := "{level: 'beginner', focus: 'practical'}"

	raw, err := ExtractJSON(text)
	require.NoError(t, err)
	assert.JSONEq(t, `{"level":"beginner","focus":"practical"}`, string(raw))
}

func TestExtractJSONNoJSON(t *testing.T) {
	_, err := ExtractJSON("I'm sorry, I can't help with that.")

	var malformed *MalformedModelOutputError
	require.ErrorAs(t, err, &malformed)
	assert.Contains(t, malformed.Raw, "sorry")
}

func TestExtractJSONErrorPreviewTruncated(t *testing.T) {
	long := make([]byte, 500)
	for i := range long {
		long[i] = 'x'
	}

	_, err := ExtractJSON(string(long))
	require.Error(t, err)
	assert.Less(t, len(err.Error()), 200)
}

func TestDecodeStrictFirst(t *testing.T) {
	var out []string
	err := Decode(`["a", "b"]`, &out)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, out)
}

func TestDecodeFallsBackToExtraction(t *testing.T) {
	var out []int
	err := Decode("the answer is ```json\n[4, 5]\n``` done", &out)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 5}, out)
}

func TestDecodeShapeMismatch(t *testing.T) {
	var out []string
	err := Decode(`{"not": "an array"}`, &out)

	var malformed *MalformedModelOutputError
	assert.ErrorAs(t, err, &malformed)
}
