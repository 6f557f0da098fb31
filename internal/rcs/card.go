package rcs

import (
	"github.com/wolfman30/rcs-richcard-demo/internal/messaging/vonageclient"
)

const (
	CardTitle       = "Meet our office puppy!"
	CardDescription = "What would you like to do next?"
	CardMediaURL    = "https://raw.githubusercontent.com/Vonage-Community/tutorial-messages-node-rcs_standalone-rich-card/refs/heads/main/puppy_dev.gif"
)

// Reply tokens carried in the suggestion chips' postback data.
const (
	TokenPetPuppy   = "pet_puppy"
	TokenGiveTreat  = "give_treat"
	TokenTakeSelfie = "take_selfie"
	TokenAdoptPuppy = "adopt_puppy"
)

// Chip is a suggestion chip: display text plus the opaque reply token echoed
// back when the user taps it.
type Chip struct {
	Text  string
	Token string
}

// Chips returns the card's suggestion chips in display order.
func Chips() []Chip {
	return []Chip{
		{Text: "Pet the puppy", Token: TokenPetPuppy},
		{Text: "Give a treat", Token: TokenGiveTreat},
		{Text: "Take a selfie", Token: TokenTakeSelfie},
		{Text: "Adopt me!", Token: TokenAdoptPuppy},
	}
}

// StandaloneCardMessage builds the fixed rich card addressed to to. The
// recipient is not validated here; the messaging client rejects bad input.
func StandaloneCardMessage(to, from string) vonageclient.MessageRequest {
	chips := Chips()
	suggestions := make([]vonageclient.Suggestion, 0, len(chips))
	for _, chip := range chips {
		suggestions = append(suggestions, vonageclient.Suggestion{
			Reply: &vonageclient.SuggestedReply{Text: chip.Text, PostbackData: chip.Token},
		})
	}
	return vonageclient.MessageRequest{
		To:          to,
		From:        from,
		Channel:     vonageclient.ChannelRCS,
		MessageType: vonageclient.MessageTypeCustom,
		Custom: &vonageclient.CustomContent{
			ContentMessage: vonageclient.ContentMessage{
				RichCard: &vonageclient.RichCard{
					StandaloneCard: &vonageclient.StandaloneCard{
						ThumbnailImageAlignment: "RIGHT",
						CardOrientation:         "VERTICAL",
						CardContent: vonageclient.CardContent{
							Title:       CardTitle,
							Description: CardDescription,
							Media: &vonageclient.Media{
								Height: "TALL",
								ContentInfo: vonageclient.ContentInfo{
									FileURL:      CardMediaURL,
									ForceRefresh: false,
								},
							},
							Suggestions: suggestions,
						},
					},
				},
			},
		},
	}
}
