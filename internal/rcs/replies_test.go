package rcs

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wolfman30/rcs-richcard-demo/internal/messaging/vonageclient"
)

func TestConfirmationText(t *testing.T) {
	tests := []struct {
		token string
		want  string
	}{
		{TokenPetPuppy, "🐶 Oscar loves pets!"},
		{TokenGiveTreat, "🍪 Treat accepted! Oscar is wagging his tail."},
		{TokenTakeSelfie, "📸 Smile! Oscar’s photogenic and ready."},
		{TokenAdoptPuppy, "Wow! Oscar is so lucky! You're a real hero 🦸"},
		{"feed_cat", FallbackConfirmation},
		{"", FallbackConfirmation},
		{"PET_PUPPY", FallbackConfirmation},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			assert.Equal(t, tt.want, ConfirmationText(tt.token))
		})
	}
}

func TestEveryChipHasConfirmation(t *testing.T) {
	for _, chip := range Chips() {
		assert.NotEqual(t, FallbackConfirmation, ConfirmationText(chip.Token), chip.Token)
	}
}

func TestParseChipReply(t *testing.T) {
	reply := &vonageclient.InboundReply{ID: TokenGiveTreat, Title: "Give a treat"}
	tests := []struct {
		name   string
		msg    vonageclient.InboundMessage
		wantOK bool
	}{
		{"rcs reply", vonageclient.InboundMessage{Channel: "rcs", MessageType: "reply", From: "447700900000", Reply: reply}, true},
		{"text message", vonageclient.InboundMessage{Channel: "rcs", MessageType: "text", From: "447700900000", Text: "hi"}, false},
		{"other channel", vonageclient.InboundMessage{Channel: "whatsapp", MessageType: "reply", From: "447700900000", Reply: reply}, false},
		{"missing reply", vonageclient.InboundMessage{Channel: "rcs", MessageType: "reply", From: "447700900000"}, false},
		{"missing sender", vonageclient.InboundMessage{Channel: "rcs", MessageType: "reply", Reply: reply}, false},
		{"empty payload", vonageclient.InboundMessage{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseChipReply(tt.msg)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, ChipReply{From: "447700900000", Token: TokenGiveTreat}, got)
			}
		})
	}
}

func TestConfirmationMessage(t *testing.T) {
	msg := ConfirmationMessage(ChipReply{From: "447700900000", Token: "unknown"}, "PuppyAgent")
	assert.Equal(t, vonageclient.MessageRequest{
		To:          "447700900000",
		From:        "PuppyAgent",
		Channel:     vonageclient.ChannelRCS,
		MessageType: vonageclient.MessageTypeText,
		Text:        FallbackConfirmation,
	}, msg)
}
