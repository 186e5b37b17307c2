package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hatbazar/marketplace-api/internal/coupon"
	"github.com/hatbazar/marketplace-api/internal/domain"
	pkgerrors "github.com/hatbazar/marketplace-api/pkg/errors"
)

// mockCouponStore implements coupon.Store for testing
type mockCouponStore struct {
	coupon *domain.Coupon
	err    error
}

func (m *mockCouponStore) GetByCode(_ context.Context, _ string) (*domain.Coupon, error) {
	return m.coupon, m.err
}

func postValidateCoupon(t *testing.T, store coupon.Store, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.POST("/v1/coupons/validate", HandleValidateCoupon(coupon.NewEvaluator(store, zap.NewNop()), zap.NewNop()))

	req := httptest.NewRequest(http.MethodPost, "/v1/coupons/validate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHandleValidateCoupon(t *testing.T) {
	store := &mockCouponStore{coupon: &domain.Coupon{
		ID:         uuid.New(),
		Code:       "EID10",
		Value:      10,
		Type:       "percentage",
		Status:     "active",
		StartDate:  time.Now().AddDate(0, 0, -1),
		EndingDate: time.Now().AddDate(0, 0, 30),
	}}

	w := postValidateCoupon(t, store, `{"code":"EID10","subtotal":1000}`)

	require.Equal(t, http.StatusOK, w.Code)
	var resp ValidateCouponResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Coupon)
	assert.Equal(t, "EID10", resp.Coupon.Code)
	assert.Equal(t, 100.0, resp.Discount)
}

func TestHandleValidateCoupon_UnknownCode(t *testing.T) {
	store := &mockCouponStore{err: &pkgerrors.ErrNotFound{Resource: "coupon"}}

	w := postValidateCoupon(t, store, `{"code":"NOPE","subtotal":1000}`)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "error")
}

func TestHandleValidateCoupon_MalformedBody(t *testing.T) {
	w := postValidateCoupon(t, &mockCouponStore{}, `{"code":`)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
