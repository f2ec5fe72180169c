package service

import (
	"context"
	"sync"
	"time"

	"tienda-pos/internal/backend"
	"tienda-pos/internal/cart"
	"tienda-pos/internal/catalog"
	"tienda-pos/internal/checkout"
	"tienda-pos/internal/model"
	"tienda-pos/internal/rate"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// session is one operator's in-progress sale. The mutex serialises every
// read and mutation of the cart so concurrent requests never observe a
// partially mutated state.
type session struct {
	mu   sync.Mutex
	cart *cart.Cart
}

// sessionService implements SessionService.
type sessionService struct {
	backend   backend.Backend
	catalog   *catalog.Cache
	rates     *rate.Cache
	submitter *checkout.Submitter
	logger    zerolog.Logger
	now       func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
}

// NewSessionService creates a session service. The catalogue and rate
// caches are shared with the rest of the process and passed in by
// reference.
func NewSessionService(
	b backend.Backend,
	catalogCache *catalog.Cache,
	rateCache *rate.Cache,
	submitter *checkout.Submitter,
	logger zerolog.Logger,
) SessionService {
	return &sessionService{
		backend:   b,
		catalog:   catalogCache,
		rates:     rateCache,
		submitter: submitter,
		logger:    logger.With().Str("service", "session").Logger(),
		now:       time.Now,
		sessions:  make(map[string]*session),
	}
}

// CreateSession opens a new checkout session with an empty cart.
func (s *sessionService) CreateSession(ctx context.Context) string {
	id := uuid.New().String()

	s.mu.Lock()
	s.sessions[id] = &session{cart: cart.New()}
	s.mu.Unlock()

	s.logger.Info().Str("session_id", id).Msg("checkout session created")
	return id
}

// Lines returns the session's cart lines.
func (s *sessionService) Lines(ctx context.Context, sessionID string) ([]model.CartLine, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.cart.Lines(), nil
}

// AddLine validates and appends a cart line. When the request carries no
// category, the category is resolved from the catalogue; a product missing
// from the catalogue entirely is a validation error, while a failed lazy
// fetch degrades to an uncategorised line (which simply cannot match
// category-scoped promotions).
func (s *sessionService) AddLine(ctx context.Context, sessionID string, req *model.AddLineRequest) error {
	sess, err := s.session(sessionID)
	if err != nil {
		return err
	}

	categoryID := req.CategoryID
	if categoryID == nil {
		if _, ok := s.catalog.Product(req.ProductID); !ok {
			s.logger.Warn().
				Str("product_id", req.ProductID).
				Msg("add-line rejected, product not in catalog")
			return model.ErrMissingCategory
		}
		resolved, resolveErr := s.catalog.ResolveCategory(ctx, req.ProductID)
		if resolveErr != nil {
			s.logger.Warn().
				Err(resolveErr).
				Str("product_id", req.ProductID).
				Msg("category resolution failed, line added uncategorised")
		} else {
			categoryID = resolved
		}
	}

	currentRate := s.rates.Rate(ctx)

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := sess.cart.AddLine(cart.AddLineInput{
		ProductID:      req.ProductID,
		SizeID:         req.SizeID,
		Quantity:       req.Quantity,
		UnitPriceLocal: req.UnitPriceLocal,
		CategoryID:     categoryID,
	}, currentRate); err != nil {
		return err
	}

	s.logger.Debug().
		Str("session_id", sessionID).
		Str("product_id", req.ProductID).
		Int("quantity", req.Quantity).
		Msg("line added")
	return nil
}

// RemoveLine removes the line at index.
func (s *sessionService) RemoveLine(ctx context.Context, sessionID string, index int) error {
	sess, err := s.session(sessionID)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.cart.RemoveLine(index)
}

// SetSuppressPromotion toggles a line's promotion suppression.
func (s *sessionService) SetSuppressPromotion(ctx context.Context, sessionID string, index int, suppress bool) error {
	sess, err := s.session(sessionID)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.cart.SetSuppressPromotion(index, suppress)
}

// SetForcedPromotion pins or unpins a promotion on a line.
func (s *sessionService) SetForcedPromotion(ctx context.Context, sessionID string, index int, promotionID *string) error {
	sess, err := s.session(sessionID)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.cart.SetForcedPromotion(index, promotionID)
}

// ClearCart empties the session's cart.
func (s *sessionService) ClearCart(ctx context.Context, sessionID string) error {
	sess, err := s.session(sessionID)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.cart.Clear()
	return nil
}

// Totals prices the cart against the current promotion snapshot and rate.
func (s *sessionService) Totals(ctx context.Context, sessionID string) (*cart.Totals, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	promotions := s.catalog.Promotions()
	currentRate := s.rates.Rate(ctx)
	today := model.DateOf(s.now())

	sess.mu.Lock()
	defer sess.mu.Unlock()
	totals := sess.cart.ComputeTotals(promotions, today, currentRate)
	return &totals, nil
}

// Checkout submits the session's cart as a sale.
func (s *sessionService) Checkout(ctx context.Context, sessionID string, req *model.CheckoutRequest) (*model.SaleResult, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	customer := model.Customer{ID: req.CustomerID, Name: req.CustomerName}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.submitter.Submit(ctx, sess.cart, customer, req.PaymentType)
}

// SearchCustomer looks a customer up on the backend.
func (s *sessionService) SearchCustomer(ctx context.Context, id string) (*model.Customer, error) {
	customer, err := s.backend.SearchCustomer(ctx, id)
	if err != nil {
		s.logger.Warn().Err(err).Str("customer_id", id).Msg("customer search failed")
		return nil, err
	}
	return customer, nil
}

// session looks a checkout session up by id.
func (s *sessionService) session(id string) (*session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	return sess, nil
}
