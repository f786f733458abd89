package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/wadjakorntonsri/affiliate-hub/pkg/core/affiliate"
	"github.com/wadjakorntonsri/affiliate-hub/pkg/core/domain"
	"github.com/wadjakorntonsri/affiliate-hub/pkg/ports"
)

// Workbench holds the staging state in front of the card store: the pasted
// URL, the last generated link and the card being edited, if any.
type Workbench struct {
	mu        sync.Mutex
	cards     ports.CardService
	clipboard ports.Clipboard

	input   string
	link    string
	editing *domain.EditState
}

func NewWorkbench(cards ports.CardService, clipboard ports.Clipboard) *Workbench {
	return &Workbench{cards: cards, clipboard: clipboard}
}

func (w *Workbench) SetInput(rawURL string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.input = rawURL
}

func (w *Workbench) Input() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.input
}

// Link returns the pending generated link.
func (w *Workbench) Link() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.link
}

// Paste replaces the input with the clipboard contents.
func (w *Workbench) Paste(ctx context.Context) (string, error) {
	text, err := w.clipboard.ReadText(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrClipboard, err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.input = text
	return text, nil
}

// Generate tags the current input with the configured store identifier.
func (w *Workbench) Generate() (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	link, err := affiliate.GenerateSimpleTag(w.input, w.cards.StoreID())
	if err != nil {
		return "", err
	}
	w.link = link
	return link, nil
}

// Copy writes text to the clipboard. Empty text is ignored.
func (w *Workbench) Copy(ctx context.Context, text string) error {
	if text == "" {
		return nil
	}
	if err := w.clipboard.WriteText(ctx, text); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrClipboard, err)
	}
	return nil
}

// AddCard turns the pending link into a card and clears the staging fields.
func (w *Workbench) AddCard(ctx context.Context) (*domain.Card, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	card, err := w.cards.AddCard(ctx, w.link, w.input)
	if err != nil {
		return nil, err
	}
	w.input = ""
	w.link = ""
	return card, nil
}

// StartEdit moves the card with the given id into editing. It reports false
// when no such card exists.
func (w *Workbench) StartEdit(id int64) (domain.EditState, bool) {
	card, ok := w.cards.Card(id)
	if !ok {
		return domain.EditState{}, false
	}
	state := w.cards.StartEdit(*card)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.editing = &state
	return state, true
}

// Editing returns the staged edit, if a card is being edited.
func (w *Workbench) Editing() (domain.EditState, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.editing == nil {
		return domain.EditState{}, false
	}
	return *w.editing, true
}

func (w *Workbench) SetEditFields(title, image string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.editing == nil {
		return domain.ErrNotEditing
	}
	w.editing.Title = title
	w.editing.Image = image
	return nil
}

// SaveEdit commits the staged edit and leaves editing. On failure the
// staged fields are kept.
func (w *Workbench) SaveEdit(ctx context.Context) (*domain.Card, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.editing == nil {
		return nil, domain.ErrNotEditing
	}

	card, err := w.cards.SaveEdit(ctx, w.editing.ID, w.editing.Title, w.editing.Image)
	if err != nil {
		return nil, err
	}
	w.editing = nil
	return card, nil
}

// CancelEdit discards the staged edit.
func (w *Workbench) CancelEdit() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.editing = nil
}
