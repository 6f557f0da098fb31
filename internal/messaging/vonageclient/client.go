package vonageclient

import (
	"bytes"
	"context"
	"crypto/rsa"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	defaultBaseURL   = "https://api.nexmo.com"
	defaultUserAgent = "rcs-richcard-demo/0.1"
	defaultTokenTTL  = 15 * time.Minute
	messagesPath     = "/v1/messages"
)

var sendTracer = otel.Tracer("rcsdemo.internal.messaging.vonageclient")

// Config controls how the Vonage client behaves.
type Config struct {
	BaseURL       string
	ApplicationID string
	// PrivateKey is the PEM encoded RSA key downloaded with the application.
	PrivateKey []byte
	Timeout    time.Duration
	TokenTTL   time.Duration
	HTTPClient *http.Client
	Logger     *slog.Logger
	UserAgent  string
	Now        func() time.Time
}

// Client sends messages through the Vonage Messages API using application
// (JWT) authentication. It is safe for concurrent use.
type Client struct {
	applicationID string
	privateKey    *rsa.PrivateKey
	baseURL       string
	httpClient    *http.Client
	tokenTTL      time.Duration
	logger        *slog.Logger
	userAgent     string
	now           func() time.Time
}

// New creates a configured Client with sane defaults.
func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.ApplicationID) == "" {
		return nil, errors.New("vonageclient: application id is required")
	}
	if len(cfg.PrivateKey) == 0 {
		return nil, errors.New("vonageclient: private key is required")
	}
	key, err := jwt.ParseRSAPrivateKeyFromPEM(cfg.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("vonageclient: parse private key: %w", err)
	}
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	tokenTTL := cfg.TokenTTL
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Client{
		applicationID: strings.TrimSpace(cfg.ApplicationID),
		privateKey:    key,
		baseURL:       baseURL,
		httpClient:    httpClient,
		tokenTTL:      tokenTTL,
		logger:        logger,
		userAgent:     userAgent,
		now:           now,
	}, nil
}

// SendMessage submits a single message. Every failure is a *TransportError;
// nothing is retried.
func (c *Client) SendMessage(ctx context.Context, req MessageRequest) (*MessageResponse, error) {
	ctx, span := sendTracer.Start(ctx, "vonage.messages.send")
	defer span.End()
	span.SetAttributes(
		attribute.String("rcsdemo.vonage.channel", req.Channel),
		attribute.String("rcsdemo.vonage.message_type", req.MessageType),
	)

	resp, err := c.send(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "send failed")
		return nil, err
	}
	span.SetAttributes(attribute.String("rcsdemo.vonage.message_uuid", resp.MessageUUID))
	return resp, nil
}

func (c *Client) send(ctx context.Context, req MessageRequest) (*MessageResponse, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("marshal send body: %w", err)}
	}
	token, err := c.applicationToken()
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+messagesPath, bytes.NewReader(body))
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("build request: %w", err)}
	}
	httpReq.Header.Set("Authorization", "Bearer "+token)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("http error: %w", err)}
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{StatusCode: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := decodeAPIError(resp.StatusCode, data)
		c.logger.Warn("vonage send rejected",
			"status", resp.StatusCode,
			"title", apiErr.Title,
			"channel", req.Channel,
			"message_type", req.MessageType,
		)
		return nil, apiErr
	}

	var out MessageResponse
	if len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, &out); err != nil {
			return nil, &TransportError{StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
		}
	}
	return &out, nil
}

// applicationToken mints a short lived RS256 JWT for one request.
func (c *Client) applicationToken() (string, error) {
	issued := c.now()
	claims := jwt.MapClaims{
		"application_id": c.applicationID,
		"iat":            issued.Unix(),
		"exp":            issued.Add(c.tokenTTL).Unix(),
		"jti":            uuid.NewString(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(c.privateKey)
	if err != nil {
		return "", fmt.Errorf("sign application token: %w", err)
	}
	return signed, nil
}

func decodeAPIError(status int, body []byte) *TransportError {
	var parsed TransportError
	if err := json.Unmarshal(body, &parsed); err != nil {
		return &TransportError{StatusCode: status, Detail: strings.TrimSpace(string(body))}
	}
	parsed.StatusCode = status
	return &parsed
}
