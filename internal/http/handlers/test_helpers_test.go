package handlers

import (
	"bytes"
	"context"
	"sync"

	"github.com/wolfman30/rcs-richcard-demo/internal/messaging/vonageclient"
	"github.com/wolfman30/rcs-richcard-demo/pkg/logging"
)

const (
	testSecret = "signature-secret"
	testSender = "PuppyAgent"
	validToken = "valid-token"
)

type stubMessenger struct {
	mu   sync.Mutex
	sent []vonageclient.MessageRequest
	resp *vonageclient.MessageResponse
	err  error
}

func (s *stubMessenger) SendMessage(_ context.Context, req vonageclient.MessageRequest) (*vonageclient.MessageResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, req)
	if s.err != nil {
		return nil, s.err
	}
	if s.resp != nil {
		return s.resp, nil
	}
	return &vonageclient.MessageResponse{MessageUUID: "msg-uuid-1"}, nil
}

func (s *stubMessenger) calls() []vonageclient.MessageRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]vonageclient.MessageRequest(nil), s.sent...)
}

// stubVerifier accepts validToken for testSecret only.
type stubVerifier struct {
	calls int
}

func (v *stubVerifier) Verify(token, secret string) bool {
	v.calls++
	return token == validToken && secret == testSecret
}

// hashVerifier additionally implements PayloadHashVerifier.
type hashVerifier struct {
	stubVerifier
	wantBody []byte
}

func (v *hashVerifier) VerifyPayloadHash(token, secret string, body []byte) bool {
	return v.Verify(token, secret) && bytes.Equal(body, v.wantBody)
}

func quietLogger() *logging.Logger {
	return logging.NewWithWriter("error", &bytes.Buffer{})
}

type nilRespMessenger struct{}

func (nilRespMessenger) SendMessage(context.Context, vonageclient.MessageRequest) (*vonageclient.MessageResponse, error) {
	return nil, nil
}
