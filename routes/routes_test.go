package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"go-restaurant-ordering/checkout"
	"go-restaurant-ordering/checkout/checkouttest"
	"go-restaurant-ordering/controllers"
	"go-restaurant-ordering/helpers"
	"go-restaurant-ordering/models"
	"go-restaurant-ordering/repository"
	"go-restaurant-ordering/sequence"
	"go-restaurant-ordering/validation"
)

type noUsers struct{}

func (noUsers) Count(context.Context) (int64, error) { return 0, nil }
func (noUsers) FindByEmail(context.Context, string) (*models.User, error) {
	return nil, repository.ErrNotFound
}
func (noUsers) Insert(context.Context, *models.User) error { return nil }
func (noUsers) UpdateTokens(context.Context, string, string, string) error { return nil }

func newEngine(t *testing.T) (*gin.Engine, *helpers.TokenHelper) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := zap.NewNop()
	content := checkouttest.NewContentStore()
	content.AddBranch("Gulberg")
	svc := checkout.NewService(content, checkouttest.NewOrderStore(), sequence.NewMemorySequencer(0), nil,
		checkout.Config{Rules: validation.DefaultRules(), LockTerminal: true}, log)
	tokens := helpers.NewTokenHelper("routes-secret", time.Hour)
	dir := t.TempDir()

	router := gin.New()
	Register(router, Controllers{
		Orders:        controllers.NewOrderController(svc, time.Second, log),
		Feed:          controllers.NewHub(nil, log),
		Branches:      controllers.NewBranchController(content, time.Second, log),
		DeliveryAreas: controllers.NewDeliveryAreaController(content, time.Second, log),
		PromoCodes:    controllers.NewPromoCodeController(content, time.Second, log),
		Discount:      controllers.NewDiscountController(content, time.Second, log),
		Uploads:       controllers.NewUploadController(dir, 1<<20, log),
		Users:         controllers.NewUserController(noUsers{}, tokens, time.Second, log),
	}, tokens, dir)
	return router, tokens
}

func TestRegister_AccessControl(t *testing.T) {
	router, tokens := newEngine(t)
	admin, _, err := tokens.GenerateAllTokens("a@example.com", "A", "u1", models.RoleAdmin)
	require.NoError(t, err)
	staff, _, err := tokens.GenerateAllTokens("s@example.com", "S", "u2", models.RoleStaff)
	require.NoError(t, err)

	cases := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{"public branches", http.MethodGet, "/api/branches", "", http.StatusOK},
		{"public discount", http.MethodGet, "/api/discount", "", http.StatusOK},
		{"admin without token", http.MethodGet, "/admin/orders", "", http.StatusUnauthorized},
		{"admin as staff", http.MethodGet, "/admin/orders", staff, http.StatusForbidden},
		{"admin orders", http.MethodGet, "/admin/orders", admin, http.StatusOK},
		{"admin export", http.MethodGet, "/admin/orders/export", admin, http.StatusOK},
		{"admin promo codes", http.MethodGet, "/admin/promo-codes", admin, http.StatusOK},
		{"feed without token", http.MethodGet, "/admin/ws", "", http.StatusUnauthorized},
		{"unknown", http.MethodGet, "/nope", "", http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			if tc.token != "" {
				req.Header.Set("Authorization", "Bearer "+tc.token)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestRegister_CheckoutIsPublic(t *testing.T) {
	router, _ := newEngine(t)

	req := httptest.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader(`{"orderType":"pickup"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
