package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/wolfman30/rcs-richcard-demo/internal/messaging/vonageclient"
	observemetrics "github.com/wolfman30/rcs-richcard-demo/internal/observability/metrics"
	"github.com/wolfman30/rcs-richcard-demo/internal/rcs"
	"github.com/wolfman30/rcs-richcard-demo/pkg/logging"
)

// InboundRCSHandler receives Vonage inbound message webhooks and answers chip
// replies with a canned confirmation.
type InboundRCSHandler struct {
	messenger         vonageMessenger
	verifier          SignatureVerifier
	signatureSecret   string
	verifyPayloadHash bool
	senderID          string
	logger            *logging.Logger
	metrics           *observemetrics.MessagingMetrics
}

type InboundRCSConfig struct {
	Messenger       vonageMessenger
	Verifier        SignatureVerifier
	SignatureSecret string
	// VerifyPayloadHash requires the token's payload_hash claim to match the
	// body. The verifier must implement PayloadHashVerifier.
	VerifyPayloadHash bool
	SenderID          string
	Logger            *logging.Logger
	Metrics           *observemetrics.MessagingMetrics
}

func NewInboundRCSHandler(cfg InboundRCSConfig) *InboundRCSHandler {
	if cfg.Messenger == nil {
		panic("handlers: inbound messenger cannot be nil")
	}
	if cfg.Verifier == nil {
		panic("handlers: signature verifier cannot be nil")
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	return &InboundRCSHandler{
		messenger:         cfg.Messenger,
		verifier:          cfg.Verifier,
		signatureSecret:   cfg.SignatureSecret,
		verifyPayloadHash: cfg.VerifyPayloadHash,
		senderID:          cfg.SenderID,
		logger:            cfg.Logger,
		metrics:           cfg.Metrics,
	}
}

// HandleInbound handles POST /inbound_rcs. Once the signature is verified the
// response is always 200: send failures are logged only, so Vonage does not
// re-deliver the webhook.
func (h *InboundRCSHandler) HandleInbound(w http.ResponseWriter, r *http.Request) {
	ctx, span := rcsTracer.Start(r.Context(), "rcs.inbound")
	defer span.End()
	start := time.Now()

	token := bearerToken(r.Header.Get("Authorization"))
	if token == "" || !h.verifier.Verify(token, h.signatureSecret) {
		h.reject(w, "invalid webhook signature")
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		h.logger.Warn("failed to read inbound webhook body", "error", err)
		h.metrics.ObserveInbound("unknown", "unreadable")
		w.WriteHeader(http.StatusOK)
		return
	}
	if h.verifyPayloadHash {
		hv, ok := h.verifier.(PayloadHashVerifier)
		if !ok || !hv.VerifyPayloadHash(token, h.signatureSecret, body) {
			h.reject(w, "webhook payload hash mismatch")
			return
		}
	}

	var inbound vonageclient.InboundMessage
	if err := json.Unmarshal(body, &inbound); err != nil {
		h.logger.Warn("ignoring malformed inbound webhook", "error", err)
		h.metrics.ObserveInbound("unknown", "malformed")
		w.WriteHeader(http.StatusOK)
		return
	}
	messageType := inbound.MessageType
	if messageType == "" {
		messageType = "unknown"
	}
	span.SetAttributes(
		attribute.String("rcsdemo.rcs.channel", inbound.Channel),
		attribute.String("rcsdemo.rcs.message_type", messageType),
		attribute.String("rcsdemo.rcs.message_uuid", inbound.MessageUUID),
	)
	defer func() {
		h.metrics.ObserveWebhookLatency(messageType, time.Since(start).Seconds())
	}()

	reply, ok := rcs.ParseChipReply(inbound)
	if !ok {
		h.logger.Debug("inbound webhook ignored",
			"channel", inbound.Channel,
			"message_type", inbound.MessageType,
			"message_uuid", inbound.MessageUUID,
		)
		h.metrics.ObserveInbound(messageType, "ignored")
		w.WriteHeader(http.StatusOK)
		return
	}

	h.logger.Info("user selected reply", "from", reply.From, "selection", reply.Token)
	msg := rcs.ConfirmationMessage(reply, h.senderID)
	resp, err := h.messenger.SendMessage(ctx, msg)
	if err != nil {
		h.logger.Error("error sending confirmation", "error", err, "to", reply.From, "selection", reply.Token)
		h.metrics.ObserveOutbound(msg.MessageType, "failed")
		h.metrics.ObserveInbound(messageType, "reply_failed")
		span.RecordError(err)
		w.WriteHeader(http.StatusOK)
		return
	}

	messageUUID := ""
	if resp != nil {
		messageUUID = resp.MessageUUID
	}
	h.logger.Info("confirmation sent", "to", reply.From, "message_uuid", messageUUID)
	h.metrics.ObserveOutbound(msg.MessageType, "sent")
	h.metrics.ObserveInbound(messageType, "replied")
	w.WriteHeader(http.StatusOK)
}

func (h *InboundRCSHandler) reject(w http.ResponseWriter, reason string) {
	h.logger.Warn(reason)
	h.metrics.ObserveInbound("unknown", "unauthorized")
	w.WriteHeader(http.StatusUnauthorized)
}
