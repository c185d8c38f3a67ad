package skill

import (
	"context"
	"testing"

	"github.com/cuni-ai/cuni-control-skill/internal/config"
	"github.com/cuni-ai/cuni-control-skill/internal/models"
	"github.com/cuni-ai/cuni-control-skill/internal/shadow"
	"github.com/cuni-ai/cuni-control-skill/internal/shadow/mock"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testThings = config.ThingsConfig{Camera: "cam0", Sensor: "MegaIf1"}

func intentRequest(name string, slots map[string]models.Slot) models.RequestEnvelope {
	return models.RequestEnvelope{
		Version: "1.0",
		Session: models.Session{SessionID: "s1"},
		Request: models.Request{
			Type:      models.TypeIntentRequest,
			RequestID: "r1",
			Intent:    models.Intent{Name: name, Slots: slots},
		},
	}
}

func TestDispatchEndSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewMockClient(ctrl)

	client.EXPECT().GetProperty(gomock.Any(), gomock.Any(), gomock.Any()).Return("42", nil).AnyTimes()
	client.EXPECT().SetProperty(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	s := New(client, testThings)

	testCases := []struct {
		intent     string
		slots      map[string]models.Slot
		endSession bool
	}{
		{intent: "FindObjectIntent", slots: map[string]models.Slot{"CocoLabel": {Value: "book"}}, endSession: true},
		{intent: "GetTemperature", endSession: true},
		{intent: "GetHumidity", endSession: true},
		{intent: "AMAZON.StopIntent", endSession: true},
		{intent: "AMAZON.CancelIntent", endSession: true},
		{intent: "AMAZON.HelpIntent", endSession: false},
		{intent: "SetPanIntent", slots: map[string]models.Slot{"angle": {Value: "90"}}, endSession: false},
	}

	for _, tc := range testCases {
		t.Run(tc.intent, func(t *testing.T) {
			resp, err := s.Dispatch(context.Background(), intentRequest(tc.intent, tc.slots))
			require.NoError(t, err)
			assert.Equal(t, tc.endSession, resp.Response.ShouldEndSession)
		})
	}
}

func TestFindObject(t *testing.T) {
	t.Run("with_label", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mock.NewMockClient(ctrl)

		client.EXPECT().
			SetProperty(gomock.Any(), "cam0", "find", "book").
			Return(nil).
			Times(1)

		s := New(client, testThings)

		resp, err := s.Dispatch(context.Background(), intentRequest("FindObjectIntent",
			map[string]models.Slot{"CocoLabel": {Value: "book"}}))
		require.NoError(t, err)

		assert.True(t, resp.Response.ShouldEndSession)
		assert.Contains(t, resp.Response.OutputSpeech.Text, "looking for a book")
	})

	t.Run("missing_label", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mock.NewMockClient(ctrl)
		// no EXPECT: any shadow call fails the test

		s := New(client, testThings)

		resp, err := s.Dispatch(context.Background(), intentRequest("FindObjectIntent", nil))
		require.NoError(t, err)

		assert.False(t, resp.Response.ShouldEndSession)
		require.NotNil(t, resp.Response.Reprompt)
		assert.Contains(t, resp.Response.Reprompt.OutputSpeech.Text, "Find a fork")
	})
}

func TestGetTemperature(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewMockClient(ctrl)

	client.EXPECT().
		GetProperty(gomock.Any(), "MegaIf1", "TemperatureF").
		Return("72", nil)

	s := New(client, testThings)

	resp, err := s.Dispatch(context.Background(), intentRequest("GetTemperature", nil))
	require.NoError(t, err)

	assert.Contains(t, resp.Response.OutputSpeech.Text, "72")
	assert.True(t, resp.Response.ShouldEndSession)
}

func TestGetHumidity(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewMockClient(ctrl)

	client.EXPECT().
		GetProperty(gomock.Any(), "MegaIf1", "Humidity%").
		Return("55", nil)

	s := New(client, testThings)

	resp, err := s.Dispatch(context.Background(), intentRequest("GetHumidity", nil))
	require.NoError(t, err)

	assert.Contains(t, resp.Response.OutputSpeech.Text, "The humidity is 55 percent")
	assert.True(t, resp.Response.ShouldEndSession)
}

func TestSetPan(t *testing.T) {
	t.Run("valid_angle", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mock.NewMockClient(ctrl)

		client.EXPECT().
			SetProperty(gomock.Any(), "cam0", "panAngle", "90").
			Return(nil).
			Times(1)

		s := New(client, testThings)

		resp, err := s.Dispatch(context.Background(), intentRequest("SetPanIntent",
			map[string]models.Slot{"angle": {Value: "90"}}))
		require.NoError(t, err)

		assert.False(t, resp.Response.ShouldEndSession)
		assert.Contains(t, resp.Response.OutputSpeech.Text, "setting the pan angle to 90")
	})

	t.Run("missing_angle", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mock.NewMockClient(ctrl)

		s := New(client, testThings)

		resp, err := s.Dispatch(context.Background(), intentRequest("SetPanIntent", nil))
		require.NoError(t, err)

		assert.False(t, resp.Response.ShouldEndSession)
		require.NotNil(t, resp.Response.Reprompt)
	})

	t.Run("out_of_range", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mock.NewMockClient(ctrl)
		// out-of-range angles must not reach the shadow

		s := New(client, testThings)

		resp, err := s.Dispatch(context.Background(), intentRequest("SetPanIntent",
			map[string]models.Slot{"angle": {Value: "270"}}))
		require.NoError(t, err)

		assert.False(t, resp.Response.ShouldEndSession)
		assert.Contains(t, resp.Response.OutputSpeech.Text, "between 0 and 180")
	})

	t.Run("not_a_number", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mock.NewMockClient(ctrl)

		s := New(client, testThings)

		resp, err := s.Dispatch(context.Background(), intentRequest("SetPanIntent",
			map[string]models.Slot{"angle": {Value: "sideways"}}))
		require.NoError(t, err)

		assert.False(t, resp.Response.ShouldEndSession)
		assert.Contains(t, resp.Response.OutputSpeech.Text, "between 0 and 180")
	})
}

func TestDispatchUnrecognizedIntent(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewMockClient(ctrl)

	s := New(client, testThings)

	_, err := s.Dispatch(context.Background(), intentRequest("OrderPizzaIntent", nil))
	assert.ErrorIs(t, err, ErrUnrecognizedIntent)
}

func TestDispatchLaunchAndSessionEnd(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewMockClient(ctrl)

	s := New(client, testThings)

	launch := models.RequestEnvelope{
		Request: models.Request{Type: models.TypeLaunchRequest, RequestID: "r1"},
		Session: models.Session{New: true, SessionID: "s1"},
	}

	resp, err := s.Dispatch(context.Background(), launch)
	require.NoError(t, err)
	assert.False(t, resp.Response.ShouldEndSession)
	assert.Contains(t, resp.Response.OutputSpeech.Text, "Welcome to the Cuni Control")

	ended := models.RequestEnvelope{
		Request: models.Request{Type: models.TypeSessionEndedRequest, RequestID: "r2"},
	}

	resp, err = s.Dispatch(context.Background(), ended)
	require.NoError(t, err)
	assert.True(t, resp.Response.ShouldEndSession)
	assert.Contains(t, resp.Response.OutputSpeech.Text, "Have a nice day")
}

func TestRemoteFailureFallback(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewMockClient(ctrl)

	client.EXPECT().
		GetProperty(gomock.Any(), "MegaIf1", "TemperatureF").
		Return("", shadow.ErrRemoteUnavailable)

	s := New(client, testThings)

	resp, err := s.Dispatch(context.Background(), intentRequest("GetTemperature", nil))
	require.NoError(t, err)

	assert.True(t, resp.Response.ShouldEndSession)
	assert.Contains(t, resp.Response.OutputSpeech.Text, "trouble reaching the device")
}
