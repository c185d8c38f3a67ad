package skill

import (
	"context"
	"strconv"

	"github.com/cuni-ai/cuni-control-skill/internal/logger"
	"github.com/cuni-ai/cuni-control-skill/internal/models"
	"go.uber.org/zap"
)

const (
	slotCocoLabel = "CocoLabel"
	slotAngle     = "angle"

	propFind        = "find"
	propPanAngle    = "panAngle"
	propTemperature = "TemperatureF"
	propHumidity    = "Humidity%"

	panAngleMin = 0
	panAngleMax = 180
)

const (
	welcomeSpeech = "Welcome to the Cuni Control. " +
		"You can find any COCO data set object by saying, Find a book, TV, Mouse, bottle or other objects. " +
		"You can also ask, What is the temperature or humidity."
	welcomeReprompt = "Please tell what to find, a fork, spoon, knife, chair, or potted plant."

	farewellSpeech = "Thank you for trying Cuni Control. Have a nice day!"

	deviceUnreachableSpeech = "Sorry, I am having trouble reaching the device right now. Please try again later."
)

func (s *Skill) welcome(_ context.Context, _ models.Intent, session models.Session) models.ResponseEnvelope {
	return buildResponse(session.Attributes,
		buildSpeechlet("Welcome", welcomeSpeech, welcomeReprompt, false))
}

func (s *Skill) farewell(_ context.Context, _ models.Intent, session models.Session) models.ResponseEnvelope {
	return buildResponse(session.Attributes,
		buildSpeechlet("Session Ended", farewellSpeech, "", true))
}

// findObject writes the requested label into the camera's desired state so
// the detector starts searching for it.
func (s *Skill) findObject(ctx context.Context, intent models.Intent, session models.Session) models.ResponseEnvelope {
	label, ok := intent.SlotValue(slotCocoLabel)
	if !ok {
		return buildResponse(session.Attributes, buildSpeechlet(intent.Name,
			"I'm not sure what you want me to find. Please try again.",
			"I'm not sure what you want me to find. You can ask me to look for objects by saying, Find a fork, knife, or spoon.",
			false))
	}

	if err := s.shadow.SetProperty(ctx, s.things.Camera, propFind, label); err != nil {
		return s.deviceUnreachable(intent.Name, session, err)
	}

	return buildResponse(session.Attributes, buildSpeechlet(intent.Name,
		"I am now looking for a "+label, "", true))
}

func (s *Skill) getTemperature(ctx context.Context, intent models.Intent, session models.Session) models.ResponseEnvelope {
	temp, err := s.shadow.GetProperty(ctx, s.things.Sensor, propTemperature)
	if err != nil {
		return s.deviceUnreachable(intent.Name, session, err)
	}

	return buildResponse(session.Attributes, buildSpeechlet(intent.Name,
		"The temperature is "+temp+" degrees. Goodbye.", "", true))
}

func (s *Skill) getHumidity(ctx context.Context, intent models.Intent, session models.Session) models.ResponseEnvelope {
	humidity, err := s.shadow.GetProperty(ctx, s.things.Sensor, propHumidity)
	if err != nil {
		return s.deviceUnreachable(intent.Name, session, err)
	}

	return buildResponse(session.Attributes, buildSpeechlet(intent.Name,
		"The humidity is "+humidity+" percent. Goodbye.", "", true))
}

// setPan points the camera assembly. The shadow schema bounds the angle to
// 0..180, so anything outside that re-prompts without touching the shadow.
func (s *Skill) setPan(ctx context.Context, intent models.Intent, session models.Session) models.ResponseEnvelope {
	raw, ok := intent.SlotValue(slotAngle)
	if !ok {
		return buildResponse(session.Attributes, buildSpeechlet(intent.Name,
			"I'm not sure what your pan angle is. Please try again.",
			"I'm not sure what your pan angle is. You can tell me your pan angle by saying, set pan angle to 90.",
			false))
	}

	angle, err := strconv.Atoi(raw)
	if err != nil || angle < panAngleMin || angle > panAngleMax {
		return buildResponse(session.Attributes, buildSpeechlet(intent.Name,
			"I can only set the pan angle between 0 and 180 degrees. Please try again.",
			"You can tell me your pan angle by saying, set pan angle to 90.",
			false))
	}

	if err := s.shadow.SetProperty(ctx, s.things.Camera, propPanAngle, raw); err != nil {
		return s.deviceUnreachable(intent.Name, session, err)
	}

	return buildResponse(session.Attributes, buildSpeechlet(intent.Name,
		"I am setting the pan angle to "+raw, "", false))
}

func (s *Skill) deviceUnreachable(title string, session models.Session, err error) models.ResponseEnvelope {
	logger.Log.Error("shadow call failed", zap.String("intent", title), zap.Error(err))

	return buildResponse(session.Attributes,
		buildSpeechlet(title, deviceUnreachableSpeech, "", true))
}
