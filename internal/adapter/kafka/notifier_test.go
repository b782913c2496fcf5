package kafka

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stormpetrel/bomwatch/internal/domain"
)

func sampleWarning() domain.Warning {
	return domain.Warning{
		ID:       "http://www.bom.gov.au/products/IDN21037.shtml",
		Title:    "Severe Thunderstorm Warning for NSW",
		Link:     "http://www.bom.gov.au/products/IDN21037.shtml",
		Region:   domain.RegionNSW,
		Type:     domain.TypeSevereThunderstorm,
		Severity: domain.SeveritySevere,
		Origin:   "feed",
	}
}

func TestSerializeAlert_SevereEscalatesUrgency(t *testing.T) {
	sentAt := time.Date(2025, 2, 24, 6, 0, 0, 0, time.UTC)
	domain.SetClock(clockwork.NewFakeClockAt(sentAt))
	defer domain.SetClock(nil)

	msg, err := serializeAlert(sampleWarning(), "Sydney")
	require.NoError(t, err)

	assert.Equal(t, []byte("http://www.bom.gov.au/products/IDN21037.shtml"), msg.Key)

	var payload alertPayload
	require.NoError(t, json.Unmarshal(msg.Value, &payload))
	assert.Equal(t, "Severe Thunderstorm warning active for Sydney", payload.Message)
	assert.Equal(t, "critical", payload.Urgency)
	assert.True(t, payload.RequireInteraction)
	assert.Equal(t, "Sydney", payload.LocationName)
	assert.True(t, payload.SentAt.Equal(sentAt))
	assert.Equal(t, sampleWarning(), payload.Warning)
}

func TestSerializeAlert_ModerateStaysNormal(t *testing.T) {
	w := sampleWarning()
	w.Title = "Sheep Graziers Warning"
	w.Type = domain.TypeSheepGraziers
	w.Severity = domain.SeverityModerate

	msg, err := serializeAlert(w, "Hobart")
	require.NoError(t, err)

	var payload alertPayload
	require.NoError(t, json.Unmarshal(msg.Value, &payload))
	assert.Equal(t, "normal", payload.Urgency)
	assert.False(t, payload.RequireInteraction)
}

func TestSerializeAlert_FallsBackToRegion(t *testing.T) {
	msg, err := serializeAlert(sampleWarning(), "")
	require.NoError(t, err)

	var payload alertPayload
	require.NoError(t, json.Unmarshal(msg.Value, &payload))
	assert.Equal(t, "Severe Thunderstorm warning active for NSW", payload.Message)
}

func TestSerializeAlert_Headers(t *testing.T) {
	msg, err := serializeAlert(sampleWarning(), "Sydney")
	require.NoError(t, err)

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, "Severe", headers["severity"])
	assert.Equal(t, "Severe Thunderstorm", headers["warning_type"])
	assert.Equal(t, "NSW", headers["state"])
}
