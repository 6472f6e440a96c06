package httpapi

import (
	"net/http"

	"github.com/nikolayk812/roze-storefront/internal/checkout"
	"go.uber.org/zap"
)

// handleCheckout builds the WhatsApp handoff for the visitor's cart. The cart
// is left as it is.
func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	session, _ := sessionFrom(r.Context())

	snap := s.carts.Get(cartKey(r))
	if len(snap.Lines) == 0 {
		s.writeError(w, r, checkout.ErrEmptyCart)
		return
	}

	profile, found, err := s.profiles.Get(r.Context(), session.UserID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if !found {
		s.writeError(w, r, checkout.ErrProfileIncomplete)
		return
	}

	handoff, err := s.whatsapp.Handoff(checkout.Order{
		Lines:   snap.Lines,
		Total:   snap.Totals.Total,
		Profile: profile,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.log.Info("checkout handoff",
		zap.String("user_id", session.UserID.String()),
		zap.Int("item_count", snap.Totals.ItemCount),
		zap.String("total", snap.Totals.Total.Fixed()))

	writeJSON(w, http.StatusOK, checkoutResponse{Message: handoff.Message, URL: handoff.URL})
}
