package rcs

import (
	"strings"

	"github.com/wolfman30/rcs-richcard-demo/internal/messaging/vonageclient"
)

// FallbackConfirmation is sent for reply tokens missing from the table.
const FallbackConfirmation = "Oscar appreciates the love! 🐾"

var confirmations = map[string]string{
	TokenPetPuppy:   "🐶 Oscar loves pets!",
	TokenGiveTreat:  "🍪 Treat accepted! Oscar is wagging his tail.",
	TokenTakeSelfie: "📸 Smile! Oscar’s photogenic and ready.",
	TokenAdoptPuppy: "Wow! Oscar is so lucky! You're a real hero 🦸",
}

// ConfirmationText maps a reply token to its canned confirmation.
func ConfirmationText(token string) string {
	if text, ok := confirmations[token]; ok {
		return text
	}
	return FallbackConfirmation
}

// ChipReply is a verified inbound chip selection.
type ChipReply struct {
	From  string
	Token string
}

// ParseChipReply extracts the chip selection from an inbound RCS reply. ok is
// false for every other payload shape.
func ParseChipReply(msg vonageclient.InboundMessage) (ChipReply, bool) {
	if msg.Channel != vonageclient.ChannelRCS || msg.MessageType != vonageclient.MessageTypeReply {
		return ChipReply{}, false
	}
	if msg.Reply == nil || strings.TrimSpace(msg.From) == "" {
		return ChipReply{}, false
	}
	return ChipReply{From: msg.From, Token: msg.Reply.ID}, true
}

// ConfirmationMessage builds the text reply for a chip selection.
func ConfirmationMessage(reply ChipReply, from string) vonageclient.MessageRequest {
	return vonageclient.MessageRequest{
		To:          reply.From,
		From:        from,
		Channel:     vonageclient.ChannelRCS,
		MessageType: vonageclient.MessageTypeText,
		Text:        ConfirmationText(reply.Token),
	}
}
