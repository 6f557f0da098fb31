package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	observemetrics "github.com/wolfman30/rcs-richcard-demo/internal/observability/metrics"
	"github.com/wolfman30/rcs-richcard-demo/internal/rcs"
	"github.com/wolfman30/rcs-richcard-demo/pkg/logging"
)

var rcsTracer = otel.Tracer("rcsdemo.internal.http.handlers.rcs")

const (
	richCardSentMessage   = "Standalone rich card sent successfully."
	richCardFailedMessage = "Failed to send standalone rich card."
)

// SendRichCardRequest is the body accepted by POST /send-standalone-rich-card.
type SendRichCardRequest struct {
	To string `json:"to"`
}

// RichCardHandler triggers the outbound standalone rich card.
type RichCardHandler struct {
	messenger vonageMessenger
	senderID  string
	logger    *logging.Logger
	metrics   *observemetrics.MessagingMetrics
}

type RichCardConfig struct {
	Messenger vonageMessenger
	SenderID  string
	Logger    *logging.Logger
	Metrics   *observemetrics.MessagingMetrics
}

func NewRichCardHandler(cfg RichCardConfig) *RichCardHandler {
	if cfg.Messenger == nil {
		panic("handlers: rich card messenger cannot be nil")
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	return &RichCardHandler{
		messenger: cfg.Messenger,
		senderID:  cfg.SenderID,
		logger:    cfg.Logger,
		metrics:   cfg.Metrics,
	}
}

// SendStandaloneRichCard handles POST /send-standalone-rich-card.
func (h *RichCardHandler) SendStandaloneRichCard(w http.ResponseWriter, r *http.Request) {
	ctx, span := rcsTracer.Start(r.Context(), "rcs.richcard.send")
	defer span.End()

	var req SendRichCardRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		// The empty recipient is rejected by the messaging client below.
		h.logger.Warn("invalid rich card request body", "error", err)
	}
	span.SetAttributes(attribute.String("rcsdemo.rcs.to", req.To))

	msg := rcs.StandaloneCardMessage(req.To, h.senderID)
	resp, err := h.messenger.SendMessage(ctx, msg)
	if err != nil {
		h.logger.Error("error sending standalone rich card", "error", err, "to", req.To)
		h.metrics.ObserveOutbound(msg.MessageType, "failed")
		span.RecordError(err)
		span.SetStatus(codes.Error, "send failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": richCardFailedMessage})
		return
	}

	messageUUID := ""
	if resp != nil {
		messageUUID = resp.MessageUUID
	}
	h.metrics.ObserveOutbound(msg.MessageType, "sent")
	h.logger.Info("standalone rich card sent", "to", req.To, "message_uuid", messageUUID)
	writeJSON(w, http.StatusOK, map[string]string{"message": richCardSentMessage})
}
