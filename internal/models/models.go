package models

const (
	TypeLaunchRequest       = "LaunchRequest"
	TypeIntentRequest       = "IntentRequest"
	TypeSessionEndedRequest = "SessionEndedRequest"
)

// RequestEnvelope is the structure the voice platform posts once per turn.
type RequestEnvelope struct {
	Version string  `json:"version"`
	Session Session `json:"session"`
	Request Request `json:"request"`
}

type Session struct {
	New         bool           `json:"new"`
	SessionID   string         `json:"sessionId"`
	Application Application    `json:"application"`
	Attributes  map[string]any `json:"attributes"`
}

type Application struct {
	ApplicationID string `json:"applicationId"`
}

type Request struct {
	Type      string `json:"type"`
	RequestID string `json:"requestId"`
	Intent    Intent `json:"intent"`
}

type Intent struct {
	Name  string          `json:"name"`
	Slots map[string]Slot `json:"slots"`
}

type Slot struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// SlotValue reports whether the named slot was filled and returns its value.
func (i Intent) SlotValue(name string) (string, bool) {
	slot, ok := i.Slots[name]
	if !ok || slot.Value == "" {
		return "", false
	}
	return slot.Value, true
}

// ResponseEnvelope is returned to the voice platform for one turn.
type ResponseEnvelope struct {
	Version           string            `json:"version"`
	SessionAttributes map[string]any    `json:"sessionAttributes"`
	Response          SpeechletResponse `json:"response"`
}

// SpeechletResponse always serializes all four fields; a terminal turn
// carries a null reprompt rather than omitting it.
type SpeechletResponse struct {
	OutputSpeech     *OutputSpeech `json:"outputSpeech"`
	Card             *Card         `json:"card"`
	Reprompt         *Reprompt     `json:"reprompt"`
	ShouldEndSession bool          `json:"shouldEndSession"`
}

type OutputSpeech struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type Card struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type Reprompt struct {
	OutputSpeech OutputSpeech `json:"outputSpeech"`
}
