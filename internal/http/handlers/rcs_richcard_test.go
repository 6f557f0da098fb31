package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfman30/rcs-richcard-demo/internal/messaging/vonageclient"
	observemetrics "github.com/wolfman30/rcs-richcard-demo/internal/observability/metrics"
	"github.com/wolfman30/rcs-richcard-demo/internal/rcs"
)

func newRichCardHandler(m *stubMessenger) *RichCardHandler {
	return NewRichCardHandler(RichCardConfig{
		Messenger: m,
		SenderID:  testSender,
		Logger:    quietLogger(),
	})
}

func TestSendStandaloneRichCard_Success(t *testing.T) {
	messenger := &stubMessenger{}
	handler := newRichCardHandler(messenger)

	req := httptest.NewRequest(http.MethodPost, "/send-standalone-rich-card", strings.NewReader(`{"to":"447700900000"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.SendStandaloneRichCard(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Standalone rich card sent successfully.", resp["message"])

	calls := messenger.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, rcs.StandaloneCardMessage("447700900000", testSender), calls[0])
}

func TestSendStandaloneRichCard_SendFailure(t *testing.T) {
	messenger := &stubMessenger{err: &vonageclient.TransportError{StatusCode: 422, Title: "Invalid params"}}
	handler := newRichCardHandler(messenger)

	req := httptest.NewRequest(http.MethodPost, "/send-standalone-rich-card", strings.NewReader(`{"to":"not-a-number"}`))
	rec := httptest.NewRecorder()
	require.NotPanics(t, func() { handler.SendStandaloneRichCard(rec, req) })

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Failed to send standalone rich card.", resp["error"])
	assert.NotContains(t, resp["error"], "Invalid params", "vendor detail must not leak")
	assert.Len(t, messenger.calls(), 1)
}

func TestSendStandaloneRichCard_MalformedBodyDelegatesToClient(t *testing.T) {
	messenger := &stubMessenger{err: &vonageclient.TransportError{Detail: "to is required"}}
	handler := newRichCardHandler(messenger)

	req := httptest.NewRequest(http.MethodPost, "/send-standalone-rich-card", strings.NewReader(`{not json`))
	rec := httptest.NewRecorder()
	handler.SendStandaloneRichCard(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	calls := messenger.calls()
	require.Len(t, calls, 1)
	assert.Empty(t, calls[0].To)
}

func TestSendStandaloneRichCard_NilResponse(t *testing.T) {
	messenger := &nilRespMessenger{}
	handler := NewRichCardHandler(RichCardConfig{Messenger: messenger, SenderID: testSender, Logger: quietLogger()})

	rec := httptest.NewRecorder()
	handler.SendStandaloneRichCard(rec, httptest.NewRequest(http.MethodPost, "/send-standalone-rich-card", strings.NewReader(`{"to":"1"}`)))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSendStandaloneRichCard_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := observemetrics.NewMessagingMetrics(reg)
	handler := NewRichCardHandler(RichCardConfig{
		Messenger: &stubMessenger{},
		SenderID:  testSender,
		Logger:    quietLogger(),
		Metrics:   metrics,
	})

	rec := httptest.NewRecorder()
	handler.SendStandaloneRichCard(rec, httptest.NewRequest(http.MethodPost, "/send-standalone-rich-card", strings.NewReader(`{"to":"1"}`)))

	expected := `
# HELP rcsdemo_messaging_outbound_total Total outbound Vonage sends by message type and outcome
# TYPE rcsdemo_messaging_outbound_total counter
rcsdemo_messaging_outbound_total{message_type="custom",status="sent"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "rcsdemo_messaging_outbound_total"))
}

func TestNewRichCardHandlerRequiresMessenger(t *testing.T) {
	assert.Panics(t, func() { NewRichCardHandler(RichCardConfig{}) })
}
