package skill

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSpeechlet(t *testing.T) {
	speechlet := buildSpeechlet("Welcome", "hello there", "say something", false)

	require.NotNil(t, speechlet.OutputSpeech)
	assert.Equal(t, "PlainText", speechlet.OutputSpeech.Type)
	assert.Equal(t, "hello there", speechlet.OutputSpeech.Text)

	require.NotNil(t, speechlet.Card)
	assert.Equal(t, "Simple", speechlet.Card.Type)
	assert.Equal(t, "SessionSpeechlet - Welcome", speechlet.Card.Title)
	assert.Equal(t, "SessionSpeechlet - hello there", speechlet.Card.Content)

	require.NotNil(t, speechlet.Reprompt)
	assert.Equal(t, "say something", speechlet.Reprompt.OutputSpeech.Text)
	assert.False(t, speechlet.ShouldEndSession)
}

func TestBuildSpeechletTerminal(t *testing.T) {
	speechlet := buildSpeechlet("Session Ended", "bye", "", true)

	assert.Nil(t, speechlet.Reprompt)
	assert.True(t, speechlet.ShouldEndSession)

	// a terminal turn still serializes all four response fields
	b, err := json.Marshal(speechlet)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"reprompt":null`)
	assert.Contains(t, string(b), `"outputSpeech"`)
	assert.Contains(t, string(b), `"card"`)
	assert.Contains(t, string(b), `"shouldEndSession":true`)
}

func TestBuildResponse(t *testing.T) {
	attrs := map[string]any{"lastIntent": "GetTemperature", "turns": 3}
	speechlet := buildSpeechlet("GetTemperature", "it is warm", "", true)

	resp := buildResponse(attrs, speechlet)

	assert.Equal(t, "1.0", resp.Version)
	assert.Equal(t, attrs, resp.SessionAttributes)
	assert.Equal(t, speechlet, resp.Response)
}
