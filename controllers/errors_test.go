package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"go-restaurant-ordering/pricing"
	"go-restaurant-ordering/repository"
)

func TestRespondError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"conflict", fmt.Errorf("save order status: %w", repository.ErrConflict), http.StatusConflict},
		{"duplicate", repository.ErrDuplicate, http.StatusConflict},
		{"not found", repository.ErrNotFound, http.StatusNotFound},
		{"price", fmt.Errorf("price order: %w", &pricing.InvalidPriceError{Field: "subtotal", Reason: "exceeds maximum amount"}), http.StatusBadRequest},
		{"unknown", errors.New("connection reset"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			respondError(c, zap.NewNop(), tc.err)
			assert.Equal(t, tc.code, w.Code)
			assert.Contains(t, w.Body.String(), `"error"`)
		})
	}
}
