package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"Storefront/internal/cart"
	"Storefront/internal/catalog"
	"Storefront/internal/receipt"
	"Storefront/internal/shop"
	"Storefront/pkg/kit"
)

type Server struct {
	Log      *zap.Logger
	Catalog  *catalog.Catalog
	Receipts receipt.Store
	TaxRate  decimal.Decimal
	Now      func() time.Time
	Metrics  *kit.Metrics

	sessions *sessionTable
}

type viewResponse struct {
	SessionID string     `json:"session_id"`
	State     shop.State `json:"state"`
	Model     shop.Model `json:"model"`
}

type eventRequest struct {
	Type      string            `json:"type"`
	ProductID int64             `json:"product_id,omitempty"`
	Category  string            `json:"category,omitempty"`
	Query     string            `json:"query,omitempty"`
	FullText  bool              `json:"full_text,omitempty"`
	Shipping  cart.ShippingInfo `json:"shipping"`
	Payment   cart.PaymentInfo  `json:"payment"`
}

func (e eventRequest) event() (shop.Event, error) {
	switch e.Type {
	case "search":
		return shop.Search{Category: e.Category, Query: e.Query, FullText: e.FullText}, nil
	case "select":
		return shop.Select{ProductID: e.ProductID}, nil
	case "add":
		return shop.AddToCart{ProductID: e.ProductID}, nil
	case "increment":
		return shop.Increment{ProductID: e.ProductID}, nil
	case "decrement":
		return shop.Decrement{ProductID: e.ProductID}, nil
	case "remove":
		return shop.Remove{ProductID: e.ProductID}, nil
	case "go_shopping":
		return shop.GoShopping{}, nil
	case "go_cart":
		return shop.GoCart{}, nil
	case "go_checkout":
		return shop.GoCheckout{}, nil
	case "place_order":
		return shop.PlaceOrder{Shipping: e.Shipping, Payment: e.Payment}, nil
	}
	return nil, fmt.Errorf("event type %q: %w", e.Type, shop.ErrUnknownEvent)
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	sess := &session{id: newSessionID(), view: &frame{}}

	ctl, err := shop.New(s.Catalog, sess.view, shop.Options{
		TaxRate: s.TaxRate,
		Now:     s.Now,
		Log:     s.Log.With(zap.String("session_id", sess.id)),
		OnConfirmed: func(rc cart.Receipt) {
			sess.pending = append(sess.pending, rc)
		},
	})
	if err != nil {
		s.Log.Error("create session", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "internal error", nil)
		return
	}
	sess.ctl = ctl
	resp := s.snapshot(sess)
	s.sessions.put(sess)

	kit.WriteJSON(w, http.StatusCreated, resp)
}

func (s *Server) view(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	kit.WriteJSON(w, http.StatusOK, s.snapshot(sess))
}

func (s *Server) dispatch(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	var req eventRequest
	if err := kit.ReadJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "invalid json", nil)
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	ev, err := req.event()
	if err == nil {
		err = sess.ctl.Dispatch(ev)
		s.observe(ev, err)
		s.archive(r.Context(), sess)
	}
	if err != nil {
		s.writeEventError(w, r, err, sess.ctl.State())
		return
	}
	kit.WriteJSON(w, http.StatusOK, s.snapshot(sess))
}

func (s *Server) endSession(w http.ResponseWriter, r *http.Request) {
	if !s.sessions.delete(chi.URLParam(r, "id")) {
		kit.WriteError(w, r, http.StatusNotFound, "session not found", nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getReceipt(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	rc, ok, err := s.Receipts.Get(r.Context(), id)
	if err != nil {
		s.Log.Error("get receipt", zap.String("receipt_id", id), zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "internal error", nil)
		return
	}
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "receipt not found", map[string]any{"id": id})
		return
	}
	kit.WriteJSON(w, http.StatusOK, rc)
}

func (s *Server) listReceipts(w http.ResponseWriter, r *http.Request) {
	list, err := s.Receipts.List(r.Context())
	if err != nil {
		s.Log.Error("list receipts", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "internal error", nil)
		return
	}
	kit.WriteJSON(w, http.StatusOK, list)
}

func (s *Server) session(w http.ResponseWriter, r *http.Request) (*session, bool) {
	id := chi.URLParam(r, "id")
	sess, ok := s.sessions.get(id)
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "session not found", map[string]any{"id": id})
		return nil, false
	}
	return sess, true
}

// snapshot must be called with sess.mu held.
func (s *Server) snapshot(sess *session) viewResponse {
	return viewResponse{
		SessionID: sess.id,
		State:     sess.view.state,
		Model:     sess.view.model,
	}
}

// archive stores receipts confirmed by the last event. The checkout itself
// is final, so a failed save is logged and the shopper still sees the
// receipt.
func (s *Server) archive(ctx context.Context, sess *session) {
	for _, rc := range sess.takePending() {
		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), archiveTimeout)
		err := s.Receipts.Save(sctx, rc)
		cancel()
		if err != nil {
			s.Log.Error("archive receipt",
				zap.String("session_id", sess.id),
				zap.String("receipt_id", rc.ID),
				zap.Error(err),
			)
		}
	}
}

func (s *Server) observe(ev shop.Event, err error) {
	if s.Metrics == nil {
		return
	}

	var verr *cart.ValidationError
	switch ev.(type) {
	case shop.AddToCart:
		if err == nil {
			s.Metrics.CartAdds.Inc()
		}
	case shop.PlaceOrder:
		switch {
		case err == nil:
			s.Metrics.Checkouts.WithLabelValues(kit.CheckoutConfirmed).Inc()
		case errors.As(err, &verr):
			s.Metrics.Checkouts.WithLabelValues(kit.CheckoutInvalid).Inc()
		case errors.Is(err, cart.ErrEmptyCart):
			s.Metrics.Checkouts.WithLabelValues(kit.CheckoutEmpty).Inc()
		}
	}
}

func (s *Server) writeEventError(w http.ResponseWriter, r *http.Request, err error, state shop.State) {
	var verr *cart.ValidationError
	switch {
	case errors.As(err, &verr):
		kit.WriteError(w, r, http.StatusUnprocessableEntity, "missing required fields",
			map[string]any{"fields": verr.Fields})
	case errors.Is(err, shop.ErrUnknownEvent):
		kit.WriteError(w, r, http.StatusBadRequest, "unknown event", nil)
	case errors.Is(err, shop.ErrWrongState):
		kit.WriteError(w, r, http.StatusConflict, "not allowed in current state",
			map[string]any{"state": state.String()})
	case errors.Is(err, shop.ErrNoSelection):
		kit.WriteError(w, r, http.StatusConflict, "no product selected", nil)
	case errors.Is(err, cart.ErrEmptyCart):
		kit.WriteError(w, r, http.StatusConflict, "cart is empty", nil)
	case errors.Is(err, cart.ErrNoSuchLine):
		kit.WriteError(w, r, http.StatusNotFound, "item not in cart", nil)
	case errors.Is(err, catalog.ErrNotFound):
		kit.WriteError(w, r, http.StatusNotFound, "product not found", nil)
	default:
		s.Log.Error("dispatch event", zap.Stringer("state", state), zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "internal error", nil)
	}
}
