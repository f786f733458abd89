package ports

import (
	"context"

	"github.com/wadjakorntonsri/affiliate-hub/pkg/core/domain"
)

// Slot keys used by the card service
const (
	CardsSlot   = "cards"
	StoreIDSlot = "storeId"
)

// SlotStore defines durable string-keyed storage.
// Get reports false when the key has never been written.
type SlotStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Clipboard reads and writes plain text
type Clipboard interface {
	ReadText(ctx context.Context) (string, error)
	WriteText(ctx context.Context, text string) error
}

// Confirmer asks the user a yes/no question before destructive actions
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer
type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) (bool, error) {
	return f(ctx, prompt)
}

// CardService defines the card store operations
type CardService interface {
	Load(ctx context.Context) error
	Cards() []domain.Card
	Snapshot(ctx context.Context) ([]domain.Card, error)
	Card(id int64) (*domain.Card, bool)
	StoreID() string
	SetStoreID(ctx context.Context, storeID string) error
	AddCard(ctx context.Context, link, rawURL string) (*domain.Card, error)
	StartEdit(card domain.Card) domain.EditState
	SaveEdit(ctx context.Context, id int64, title, image string) (*domain.Card, error)
	DeleteCard(ctx context.Context, id int64, confirmer Confirmer) (bool, error)
	ImportCards(ctx context.Context, cards []domain.Card) (int, error)
	ReplaceCards(ctx context.Context, cards []domain.Card) error
}
