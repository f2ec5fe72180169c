package checkout

import (
	"context"
	"testing"

	"tienda-pos/internal/cart"
	"tienda-pos/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockBackend is a mock implementation of backend.Backend.
type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) Products(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockBackend) Product(ctx context.Context, id string) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockBackend) Categories(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Category), args.Error(1)
}

func (m *MockBackend) ActivePromotions(ctx context.Context) ([]model.Promotion, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Promotion), args.Error(1)
}

func (m *MockBackend) ExchangeRate(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockBackend) SearchCustomer(ctx context.Context, id string) (*model.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Customer), args.Error(1)
}

func (m *MockBackend) SubmitSale(ctx context.Context, req *model.SaleRequest) (*model.SaleResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SaleResult), args.Error(1)
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func strPtr(s string) *string { return &s }

func filledCart(t *testing.T) *cart.Cart {
	t.Helper()
	c := cart.New()
	require.NoError(t, c.AddLine(cart.AddLineInput{
		ProductID:      "P1",
		SizeID:         strPtr("S40"),
		Quantity:       2,
		UnitPriceLocal: dec("360"),
		CategoryID:     strPtr("C1"),
	}, dec("36")))
	return c
}

func TestSubmit_EmptyCartRejectedLocally(t *testing.T) {
	backendMock := new(MockBackend)
	submitter := NewSubmitter(backendMock, zerolog.Nop())

	result, err := submitter.Submit(context.Background(), cart.New(), model.Customer{}, "cash")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, model.ErrEmptyCart)
	backendMock.AssertNotCalled(t, "SubmitSale", mock.Anything, mock.Anything)
}

func TestSubmit_Success(t *testing.T) {
	backendMock := new(MockBackend)
	submitter := NewSubmitter(backendMock, zerolog.Nop())
	c := filledCart(t)

	backendMock.On("SubmitSale", mock.Anything, mock.MatchedBy(func(req *model.SaleRequest) bool {
		if len(req.Lines) != 1 {
			return false
		}
		l := req.Lines[0]
		return l.ProductID == "P1" &&
			l.Quantity == 2 &&
			l.UnitPrice.Equal(dec("10")) && // base currency, not local
			l.CategoryID != nil && *l.CategoryID == "C1" &&
			l.CategoryIDCompat != nil && *l.CategoryIDCompat == "C1" &&
			req.PaymentType == "cash" &&
			req.CustomerID == "CU1"
	})).Return(&model.SaleResult{OK: true, SaleID: "S-100", Total: dec("20")}, nil)

	result, err := submitter.Submit(context.Background(), c, model.Customer{ID: "CU1", Name: "Ana"}, "cash")

	require.NoError(t, err)
	assert.Equal(t, "S-100", result.SaleID)
	assert.True(t, c.IsEmpty(), "successful checkout must clear the cart")
	backendMock.AssertExpectations(t)
}

func TestSubmit_DepletedSizeNoticeSurvives(t *testing.T) {
	backendMock := new(MockBackend)
	submitter := NewSubmitter(backendMock, zerolog.Nop())
	c := filledCart(t)

	backendMock.On("SubmitSale", mock.Anything, mock.Anything).
		Return(&model.SaleResult{OK: true, SaleID: "S-101", Total: dec("20"), DepletedSize: true}, nil)

	result, err := submitter.Submit(context.Background(), c, model.Customer{}, "card")

	require.NoError(t, err)
	assert.True(t, result.DepletedSize)
	assert.True(t, c.IsEmpty(), "depleted size is informational, not an error")
}

func TestSubmit_RejectionPreservesCart(t *testing.T) {
	backendMock := new(MockBackend)
	submitter := NewSubmitter(backendMock, zerolog.Nop())
	c := filledCart(t)

	rejection := &model.SaleRejectedError{StatusCode: 409, Message: "insufficient stock for P1"}
	backendMock.On("SubmitSale", mock.Anything, mock.Anything).Return(nil, rejection)

	result, err := submitter.Submit(context.Background(), c, model.Customer{}, "cash")

	assert.Nil(t, result)
	var rejected *model.SaleRejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, "insufficient stock for P1", rejected.Message)
	assert.Equal(t, 1, c.Len(), "rejected checkout must leave the cart for retry")
}

func TestSubmit_GenericMessageWhenBackendGivesNone(t *testing.T) {
	rejection := &model.SaleRejectedError{StatusCode: 500}
	assert.Equal(t, "sale rejected by backend", rejection.Error())
}
