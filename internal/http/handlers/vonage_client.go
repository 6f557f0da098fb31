package handlers

import (
	"context"

	"github.com/wolfman30/rcs-richcard-demo/internal/messaging/vonageclient"
)

type vonageMessenger interface {
	SendMessage(ctx context.Context, req vonageclient.MessageRequest) (*vonageclient.MessageResponse, error)
}

// SignatureVerifier checks a webhook bearer token against the shared secret.
type SignatureVerifier interface {
	Verify(token, secret string) bool
}

// PayloadHashVerifier additionally binds the token to the raw request body.
type PayloadHashVerifier interface {
	VerifyPayloadHash(token, secret string, body []byte) bool
}

var (
	_ vonageMessenger     = (*vonageclient.Client)(nil)
	_ SignatureVerifier   = vonageclient.JWTVerifier{}
	_ PayloadHashVerifier = vonageclient.JWTVerifier{}
)
