package room

import (
	"holdem-server/pkg/deck"
	"holdem-server/pkg/table"
)

type holeCardsData struct {
	Seat  int         `json:"seat"`
	Cards []deck.Card `json:"cards"`
}

type promptData struct {
	Seat int `json:"seat"`
}

func newPromptResponse(p table.Prompt) *Response {
	return &Response{
		Key:   "promptAction",
		Value: p.Kind.String(),
		Data:  promptData{Seat: p.Seat},
	}
}
