package skill

import "github.com/cuni-ai/cuni-control-skill/internal/models"

const (
	responseVersion = "1.0"

	speechTypePlainText = "PlainText"
	cardTypeSimple      = "Simple"

	// cardTitlePrefix goes in front of every card title and content line.
	cardTitlePrefix = "SessionSpeechlet - "
)

// buildSpeechlet assembles one spoken turn. An empty reprompt serializes as
// null, because a terminal response still carries the field.
func buildSpeechlet(title, text, reprompt string, endSession bool) models.SpeechletResponse {
	speechlet := models.SpeechletResponse{
		OutputSpeech: &models.OutputSpeech{
			Type: speechTypePlainText,
			Text: text,
		},
		Card: &models.Card{
			Type:    cardTypeSimple,
			Title:   cardTitlePrefix + title,
			Content: cardTitlePrefix + text,
		},
		ShouldEndSession: endSession,
	}

	if reprompt != "" {
		speechlet.Reprompt = &models.Reprompt{
			OutputSpeech: models.OutputSpeech{
				Type: speechTypePlainText,
				Text: reprompt,
			},
		}
	}

	return speechlet
}

// buildResponse wraps a speechlet into the versioned envelope, echoing the
// caller's session attributes unchanged.
func buildResponse(attrs map[string]any, speechlet models.SpeechletResponse) models.ResponseEnvelope {
	return models.ResponseEnvelope{
		Version:           responseVersion,
		SessionAttributes: attrs,
		Response:          speechlet,
	}
}
