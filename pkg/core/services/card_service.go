package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/wadjakorntonsri/affiliate-hub/pkg/core/affiliate"
	"github.com/wadjakorntonsri/affiliate-hub/pkg/core/domain"
	"github.com/wadjakorntonsri/affiliate-hub/pkg/ports"
)

const deletePrompt = "Delete this card?"

// CardService owns the card collection and the store identifier.
// Every mutation re-reads the stored collection, derives a new one from it
// and only swaps it in after it has been saved. Other processes may share
// the same repository.
type CardService struct {
	mu             sync.Mutex
	repo           ports.SlotStore
	defaultStoreID string
	now            func() time.Time

	cards   []domain.Card
	storeID string
	lastID  int64
}

func NewCardService(repo ports.SlotStore, defaultStoreID string) *CardService {
	if defaultStoreID == "" {
		defaultStoreID = domain.DefaultStoreID
	}
	return &CardService{
		repo:           repo,
		defaultStoreID: defaultStoreID,
		now:            time.Now,
		cards:          []domain.Card{},
		storeID:        defaultStoreID,
	}
}

// Load restores the collection and store identifier from the repository.
// Missing or corrupt card data is treated as an empty collection.
func (s *CardService) Load(ctx context.Context) error {
	rawCards, _, err := s.repo.Get(ctx, ports.CardsSlot)
	if err != nil {
		return fmt.Errorf("load cards: %w", err)
	}
	storeID, _, err := s.repo.Get(ctx, ports.StoreIDSlot)
	if err != nil {
		return fmt.Errorf("load store id: %w", err)
	}

	if storeID == "" {
		storeID = s.defaultStoreID
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastID = 0
	s.adopt(rawCards)
	s.storeID = storeID
	return nil
}

// Snapshot re-reads the stored collection and returns a copy of it.
func (s *CardService) Snapshot(ctx context.Context) ([]domain.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.refresh(ctx); err != nil {
		return nil, err
	}
	out := make([]domain.Card, len(s.cards))
	copy(out, s.cards)
	return out, nil
}

// Cards returns a copy of the collection, newest first.
func (s *CardService) Cards() []domain.Card {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Card, len(s.cards))
	copy(out, s.cards)
	return out
}

func (s *CardService) Card(id int64) (*domain.Card, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := indexOf(s.cards, id); i >= 0 {
		c := s.cards[i]
		return &c, true
	}
	return nil, false
}

func (s *CardService) StoreID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.storeID
}

// SetStoreID overwrites the affiliate tag. An empty value is stored as is
// and reads back as the default on the next Load.
func (s *CardService) SetStoreID(ctx context.Context, storeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Set(ctx, ports.StoreIDSlot, storeID); err != nil {
		return fmt.Errorf("%w: store id: %v", domain.ErrPersist, err)
	}
	s.storeID = storeID
	return nil
}

// AddCard creates a card for a previously generated link and puts it at the
// front of the collection. rawURL is only used to find the product identifier.
func (s *CardService) AddCard(ctx context.Context, link, rawURL string) (*domain.Card, error) {
	if strings.TrimSpace(link) == "" {
		return nil, domain.ErrNoLink
	}

	asin, _ := affiliate.ExtractProductID(rawURL)
	asin = strings.ToUpper(asin)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.refresh(ctx); err != nil {
		return nil, err
	}

	card := domain.Card{
		ID:    s.nextID(),
		ASIN:  asin,
		Title: domain.DefaultTitle(asin),
		Link:  link,
		Image: domain.PlaceholderImage,
	}

	next := make([]domain.Card, 0, len(s.cards)+1)
	next = append(next, card)
	next = append(next, s.cards...)
	if err := s.commit(ctx, next); err != nil {
		return nil, err
	}
	s.lastID = card.ID
	return &card, nil
}

// StartEdit returns the fields an editor starts from. The placeholder image
// is shown as an empty field.
func (s *CardService) StartEdit(card domain.Card) domain.EditState {
	image := card.Image
	if image == domain.PlaceholderImage {
		image = ""
	}
	return domain.EditState{ID: card.ID, Title: card.Title, Image: image}
}

// SaveEdit replaces the title and image of the card with the given id.
// An empty title keeps the old one and an empty image resets it to the
// placeholder. An unknown id is a no-op and returns a nil card.
func (s *CardService) SaveEdit(ctx context.Context, id int64, title, image string) (*domain.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.refresh(ctx); err != nil {
		return nil, err
	}

	i := indexOf(s.cards, id)
	if i < 0 {
		return nil, nil
	}

	next := make([]domain.Card, len(s.cards))
	copy(next, s.cards)

	updated := next[i]
	if title != "" {
		updated.Title = title
	}
	updated.Image = domain.ImageOrPlaceholder(image)
	next[i] = updated

	if err := s.commit(ctx, next); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteCard removes the card with the given id once confirmer agrees.
// It reports whether a card was removed; a declined prompt or a nil
// confirmer removes nothing.
func (s *CardService) DeleteCard(ctx context.Context, id int64, confirmer ports.Confirmer) (bool, error) {
	if confirmer == nil {
		return false, nil
	}
	ok, err := confirmer.Confirm(ctx, deletePrompt)
	if err != nil {
		return false, fmt.Errorf("confirm delete: %w", err)
	}
	if !ok {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.refresh(ctx); err != nil {
		return false, err
	}

	next := make([]domain.Card, 0, len(s.cards))
	for _, c := range s.cards {
		if c.ID != id {
			next = append(next, c)
		}
	}
	if len(next) == len(s.cards) {
		return false, nil
	}

	if err := s.commit(ctx, next); err != nil {
		return false, err
	}
	return true, nil
}

// ImportCards merges cards into the collection. Cards whose id is already
// present are skipped and cards without an id get a fresh one. The result
// is ordered newest first.
func (s *CardService) ImportCards(ctx context.Context, cards []domain.Card) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.refresh(ctx); err != nil {
		return 0, err
	}

	seen := make(map[int64]bool, len(s.cards)+len(cards))
	for _, c := range s.cards {
		seen[c.ID] = true
	}

	next := make([]domain.Card, len(s.cards), len(s.cards)+len(cards))
	copy(next, s.cards)

	lastID := s.lastID
	imported := 0
	for _, c := range cards {
		if c.ID == 0 {
			c.ID = s.nextIDAfter(lastID)
		}
		if seen[c.ID] {
			log.Debugf("skipping existing card %d", c.ID)
			continue
		}
		seen[c.ID] = true
		if c.ID > lastID {
			lastID = c.ID
		}
		c.Image = domain.ImageOrPlaceholder(c.Image)
		next = append(next, c)
		imported++
	}
	if imported == 0 {
		return 0, nil
	}

	sort.SliceStable(next, func(i, j int) bool { return next[i].ID > next[j].ID })

	if err := s.commit(ctx, next); err != nil {
		return 0, err
	}
	s.lastID = lastID
	return imported, nil
}

// ReplaceCards swaps the whole collection for cards. Duplicate ids keep the
// first occurrence and cards without an id get a fresh one.
func (s *CardService) ReplaceCards(ctx context.Context, cards []domain.Card) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[int64]bool, len(cards))
	next := make([]domain.Card, 0, len(cards))
	lastID := s.lastID
	for _, c := range cards {
		if c.ID > lastID {
			lastID = c.ID
		}
	}
	for _, c := range cards {
		if c.ID == 0 {
			c.ID = s.nextIDAfter(lastID)
			lastID = c.ID
		}
		if seen[c.ID] {
			continue
		}
		seen[c.ID] = true
		c.Image = domain.ImageOrPlaceholder(c.Image)
		next = append(next, c)
	}
	sort.SliceStable(next, func(i, j int) bool { return next[i].ID > next[j].ID })

	if err := s.commit(ctx, next); err != nil {
		return err
	}
	s.lastID = lastID
	return nil
}

// refresh reloads the cards slot so a mutation starts from the latest
// stored value. Callers must hold s.mu.
func (s *CardService) refresh(ctx context.Context) error {
	raw, _, err := s.repo.Get(ctx, ports.CardsSlot)
	if err != nil {
		return fmt.Errorf("load cards: %w", err)
	}
	s.adopt(raw)
	return nil
}

// adopt decodes raw into the current collection. lastID never moves
// backwards so ids stay unique after deletes.
func (s *CardService) adopt(raw string) {
	cards, err := DecodeCards(raw)
	if err != nil {
		log.Warnf("discarding unreadable cards slot: %v", err)
	}
	s.cards = cards
	for _, c := range cards {
		if c.ID > s.lastID {
			s.lastID = c.ID
		}
	}
}

// commit saves next and, only if that worked, makes it the current collection.
// Callers must hold s.mu.
func (s *CardService) commit(ctx context.Context, next []domain.Card) error {
	raw, err := EncodeCards(next)
	if err != nil {
		return fmt.Errorf("%w: encode cards: %v", domain.ErrPersist, err)
	}
	if err := s.repo.Set(ctx, ports.CardsSlot, raw); err != nil {
		return fmt.Errorf("%w: cards: %v", domain.ErrPersist, err)
	}
	s.cards = next
	return nil
}

func (s *CardService) nextID() int64 {
	return s.nextIDAfter(s.lastID)
}

// nextIDAfter returns the current time in milliseconds, or last+1 when the
// clock has not moved past last.
func (s *CardService) nextIDAfter(last int64) int64 {
	id := s.now().UnixMilli()
	if id <= last {
		id = last + 1
	}
	return id
}

func indexOf(cards []domain.Card, id int64) int {
	for i, c := range cards {
		if c.ID == id {
			return i
		}
	}
	return -1
}

var _ ports.CardService = (*CardService)(nil)
