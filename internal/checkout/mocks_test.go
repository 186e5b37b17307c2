package checkout

import (
	"context"

	"github.com/google/uuid"

	"github.com/hatbazar/marketplace-api/internal/courier"
	"github.com/hatbazar/marketplace-api/internal/domain"
)

// mockOrderStore implements OrderStore for testing
type mockOrderStore struct {
	CreateErr   error
	StatusErr   error
	TrackingErr error

	Created       *domain.Order // Captures the order passed to Create
	StatusUpdates []domain.OrderStatus
	TrackingSet   bool
}

func (m *mockOrderStore) Create(_ context.Context, order *domain.Order) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.Created = order
	return nil
}

func (m *mockOrderStore) UpdateStatus(_ context.Context, _ uuid.UUID, status domain.OrderStatus) error {
	if m.StatusErr != nil {
		return m.StatusErr
	}
	m.StatusUpdates = append(m.StatusUpdates, status)
	return nil
}

func (m *mockOrderStore) UpdateTracking(_ context.Context, _ uuid.UUID, _, _, _ string) error {
	if m.TrackingErr != nil {
		return m.TrackingErr
	}
	m.TrackingSet = true
	return nil
}

// mockCartStore implements CartStore for testing
type mockCartStore struct {
	ClearErr error
	Cleared  []uuid.UUID
}

func (m *mockCartStore) ClearByShopper(_ context.Context, shopperID uuid.UUID) error {
	if m.ClearErr != nil {
		return m.ClearErr
	}
	m.Cleared = append(m.Cleared, shopperID)
	return nil
}

// mockGateway implements Gateway for testing
type mockGateway struct {
	URL   string
	Err   error
	Calls int
}

func (m *mockGateway) PaymentURL(_ context.Context, _ string, _ float64) (string, error) {
	m.Calls++
	return m.URL, m.Err
}

// mockCourier implements Courier for testing
type mockCourier struct {
	Parcel *courier.Parcel
	Err    error
	Calls  int
}

func (m *mockCourier) Register(_ context.Context, _ *domain.Order) (*courier.Parcel, error) {
	m.Calls++
	return m.Parcel, m.Err
}

// mockCouponStore implements coupon.Store for testing
type mockCouponStore struct {
	Coupon *domain.Coupon
	Err    error
}

func (m *mockCouponStore) GetByCode(_ context.Context, _ string) (*domain.Coupon, error) {
	return m.Coupon, m.Err
}

// mockRateService implements delivery.RateService for testing
type mockRateService struct {
	Charge float64
	Err    error
}

func (m *mockRateService) Rate(_ context.Context, _, _ string) (float64, error) {
	return m.Charge, m.Err
}

// failingKV wraps MemoryStore with forced write/delete failures
type failingKV struct {
	*MemoryStore
	SetErr    error
	DeleteErr error
}

func (f *failingKV) Set(key, value string) error {
	if f.SetErr != nil {
		return f.SetErr
	}
	return f.MemoryStore.Set(key, value)
}

func (f *failingKV) Delete(key string) error {
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	return f.MemoryStore.Delete(key)
}
