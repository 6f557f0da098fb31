package vonageclient

import (
	"strings"
)

// Channels and message types understood by the Messages API.
const (
	ChannelRCS = "rcs"

	MessageTypeText   = "text"
	MessageTypeCustom = "custom"
	MessageTypeReply  = "reply"
)

// MessageRequest describes an outbound Messages API payload. Text is used for
// text messages, Custom for RCS custom (rich card) messages.
type MessageRequest struct {
	To          string         `json:"to"`
	From        string         `json:"from"`
	Channel     string         `json:"channel"`
	MessageType string         `json:"message_type"`
	Text        string         `json:"text,omitempty"`
	Custom      *CustomContent `json:"custom,omitempty"`
	ClientRef   string         `json:"client_ref,omitempty"`
}

func (r MessageRequest) validate() error {
	switch {
	case strings.TrimSpace(r.To) == "":
		return &TransportError{Detail: "to is required"}
	case strings.TrimSpace(r.From) == "":
		return &TransportError{Detail: "from is required"}
	case strings.TrimSpace(r.Channel) == "":
		return &TransportError{Detail: "channel is required"}
	}
	switch r.MessageType {
	case MessageTypeText:
		if strings.TrimSpace(r.Text) == "" {
			return &TransportError{Detail: "text is required for text messages"}
		}
	case MessageTypeCustom:
		if r.Custom == nil {
			return &TransportError{Detail: "custom content is required for custom messages"}
		}
	default:
		return &TransportError{Detail: "unsupported message_type " + r.MessageType}
	}
	return nil
}

// MessageResponse is the 202 body returned by the Messages API.
type MessageResponse struct {
	MessageUUID string `json:"message_uuid"`
}

// CustomContent wraps an RCS content message.
type CustomContent struct {
	ContentMessage ContentMessage `json:"contentMessage"`
}

type ContentMessage struct {
	RichCard *RichCard `json:"richCard,omitempty"`
}

type RichCard struct {
	StandaloneCard *StandaloneCard `json:"standaloneCard,omitempty"`
}

// StandaloneCard is a single RCS rich card.
type StandaloneCard struct {
	ThumbnailImageAlignment string      `json:"thumbnailImageAlignment,omitempty"`
	CardOrientation         string      `json:"cardOrientation"`
	CardContent             CardContent `json:"cardContent"`
}

type CardContent struct {
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	Media       *Media       `json:"media,omitempty"`
	Suggestions []Suggestion `json:"suggestions,omitempty"`
}

type Media struct {
	Height      string      `json:"height"`
	ContentInfo ContentInfo `json:"contentInfo"`
}

type ContentInfo struct {
	FileURL      string `json:"fileUrl"`
	ForceRefresh bool   `json:"forceRefresh"`
}

// Suggestion is a tappable chip. Only suggested replies are modelled.
type Suggestion struct {
	Reply *SuggestedReply `json:"reply,omitempty"`
}

type SuggestedReply struct {
	Text         string `json:"text"`
	PostbackData string `json:"postbackData"`
}

// InboundMessage is the webhook body Vonage posts for inbound messages.
type InboundMessage struct {
	Channel     string        `json:"channel"`
	MessageUUID string        `json:"message_uuid"`
	To          string        `json:"to"`
	From        string        `json:"from"`
	Timestamp   string        `json:"timestamp"`
	MessageType string        `json:"message_type"`
	Text        string        `json:"text,omitempty"`
	Reply       *InboundReply `json:"reply,omitempty"`
}

// InboundReply carries the postback data of the chip the user tapped.
type InboundReply struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}
