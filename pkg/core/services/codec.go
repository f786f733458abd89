package services

import (
	"encoding/json"

	"github.com/wadjakorntonsri/affiliate-hub/pkg/core/domain"
)

// EncodeCards serialises a card collection into the form kept in the cards slot.
func EncodeCards(cards []domain.Card) (string, error) {
	if cards == nil {
		cards = []domain.Card{}
	}
	data, err := json.Marshal(cards)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DecodeCards parses the cards slot. An empty slot decodes to an empty
// collection; malformed data returns an empty collection and the parse error.
func DecodeCards(raw string) ([]domain.Card, error) {
	if raw == "" {
		return []domain.Card{}, nil
	}
	var cards []domain.Card
	if err := json.Unmarshal([]byte(raw), &cards); err != nil {
		return []domain.Card{}, err
	}
	if cards == nil {
		cards = []domain.Card{}
	}
	return cards, nil
}
