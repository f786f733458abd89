package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	log "github.com/sirupsen/logrus"

	"github.com/wadjakorntonsri/affiliate-hub/pkg/core/affiliate"
	"github.com/wadjakorntonsri/affiliate-hub/pkg/core/domain"
	"github.com/wadjakorntonsri/affiliate-hub/pkg/ports"
)

type HTTPHandler struct {
	service ports.CardService
}

func NewHTTPHandler(service ports.CardService) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// GenerateRequest payload
type GenerateRequest struct {
	URL string `json:"url"`
}

// CreateCardRequest payload
type CreateCardRequest struct {
	Link string `json:"link"`
	URL  string `json:"url"`
}

// UpdateCardRequest payload
type UpdateCardRequest struct {
	Title string `json:"title"`
	Image string `json:"image"`
}

// StoreIDRequest payload
type StoreIDRequest struct {
	StoreID string `json:"store_id"`
}

// Generate an affiliate link
func (h *HTTPHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	res, err := affiliate.Resolve(req.URL, h.service.StoreID())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// Get store ID
func (h *HTTPHandler) GetStoreID(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, domain.StoreConfig{StoreID: h.service.StoreID()})
}

// Set store ID
func (h *HTTPHandler) SetStoreID(w http.ResponseWriter, r *http.Request) {
	var req StoreIDRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.SetStoreID(r.Context(), req.StoreID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, domain.StoreConfig{StoreID: h.service.StoreID()})
}

// List cards
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	cards, err := h.service.Snapshot(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	resp := map[string]interface{}{
		"data":  cards,
		"total": len(cards),
	}
	writeJSON(w, http.StatusOK, resp)
}

// Create card
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	card, err := h.service.AddCard(r.Context(), req.Link, req.URL)
	if err != nil {
		writeError(w, err)
		return
	}

	log.Infof("card %d created", card.ID)
	writeJSON(w, http.StatusCreated, card)
}

// Get card
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := cardID(w, r)
	if !ok {
		return
	}

	card, err := h.findCard(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if card == nil {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, card)
}

// Get the fields an editor starts from
func (h *HTTPHandler) StartEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := cardID(w, r)
	if !ok {
		return
	}

	card, err := h.findCard(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if card == nil {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.service.StartEdit(*card))
}

// Update card
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := cardID(w, r)
	if !ok {
		return
	}

	var req UpdateCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid body", http.StatusBadRequest)
		return
	}

	card, err := h.service.SaveEdit(r.Context(), id, req.Title, req.Image)
	if err != nil {
		writeError(w, err)
		return
	}
	if card == nil {
		// unknown ids are a no-op
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, http.StatusOK, card)
}

// Delete card. The caller confirms with ?confirm=true.
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := cardID(w, r)
	if !ok {
		return
	}

	confirmed, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))
	confirmer := ports.ConfirmFunc(func(context.Context, string) (bool, error) {
		return confirmed, nil
	})

	removed, err := h.service.DeleteCard(r.Context(), id, confirmer)
	if err != nil {
		writeError(w, err)
		return
	}
	if !confirmed {
		http.Error(w, "Delete this card? Repeat with confirm=true", http.StatusPreconditionRequired)
		return
	}
	if removed {
		log.Infof("card %d deleted", id)
	}

	w.WriteHeader(http.StatusNoContent)
}

// Export cards
func (h *HTTPHandler) Export(w http.ResponseWriter, r *http.Request) {
	cards, err := h.service.Snapshot(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Disposition", `attachment; filename="cards.json"`)
	writeJSON(w, http.StatusOK, cards)
}

// Import cards. With ?replace=true the upload becomes the whole collection,
// otherwise it is merged.
func (h *HTTPHandler) Import(w http.ResponseWriter, r *http.Request) {
	var cards []domain.Card
	if err := json.NewDecoder(r.Body).Decode(&cards); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if replace, _ := strconv.ParseBool(r.URL.Query().Get("replace")); replace {
		if err := h.service.ReplaceCards(r.Context(), cards); err != nil {
			writeError(w, err)
			return
		}
		log.Infof("replaced collection with %d cards", len(cards))
		writeJSON(w, http.StatusOK, map[string]int{"imported": len(cards)})
		return
	}

	n, err := h.service.ImportCards(r.Context(), cards)
	if err != nil {
		writeError(w, err)
		return
	}

	log.Infof("imported %d cards", n)
	writeJSON(w, http.StatusOK, map[string]int{"imported": n})
}

// findCard looks id up in the latest stored collection. A miss returns nil.
func (h *HTTPHandler) findCard(ctx context.Context, id int64) (*domain.Card, error) {
	cards, err := h.service.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range cards {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, nil
}

func cardID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrEmptyInput), errors.Is(err, domain.ErrNoLink):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		log.Errorf("request failed: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
