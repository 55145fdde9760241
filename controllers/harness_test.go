package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"go-restaurant-ordering/checkout"
	"go-restaurant-ordering/checkout/checkouttest"
	"go-restaurant-ordering/models"
	"go-restaurant-ordering/sequence"
	"go-restaurant-ordering/validation"
)

const missingID = "5f1d7f3e9d1b2c3a4e5f6a7b"

func init() {
	gin.SetMode(gin.TestMode)
}

type harness struct {
	content  *checkouttest.ContentStore
	orders   *checkouttest.OrderStore
	notifier *checkouttest.Notifier
	svc      *checkout.Service
	router   *gin.Engine
	branch   models.Branch
	area     models.DeliveryArea
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		content:  checkouttest.NewContentStore(),
		orders:   checkouttest.NewOrderStore(),
		notifier: &checkouttest.Notifier{},
	}
	h.branch = h.content.AddBranch("Gulberg")
	h.area = h.content.AddArea(h.branch.ID, "DHA Phase 5", 150, true)
	h.svc = checkout.NewService(h.content, h.orders, sequence.NewMemorySequencer(0), h.notifier, checkout.Config{
		Rules:        validation.DefaultRules(),
		LockTerminal: true,
	}, zap.NewNop())

	log := zap.NewNop()
	oc := NewOrderController(h.svc, time.Second, log)
	bc := NewBranchController(h.content, time.Second, log)
	dc := NewDeliveryAreaController(h.content, time.Second, log)
	pc := NewPromoCodeController(h.content, time.Second, log)
	disc := NewDiscountController(h.content, time.Second, log)

	r := gin.New()
	r.POST("/api/checkout", oc.Checkout())
	r.POST("/api/checkout/quote", oc.Quote())
	r.POST("/api/promo-codes/apply", oc.ApplyPromoCode())
	r.GET("/api/branches", bc.GetBranches())
	r.GET("/api/branches/:branch_id/delivery-areas", dc.GetBranchDeliveryAreas())
	r.GET("/api/discount", disc.GetDiscount())

	r.GET("/admin/orders", oc.GetOrders())
	r.GET("/admin/orders/export", oc.ExportOrders())
	r.GET("/admin/orders/:order_id", oc.GetOrder())
	r.PATCH("/admin/orders/:order_id/status", oc.UpdateOrderStatus())
	r.PATCH("/admin/orders/:order_id/items", oc.UpdateOrderItems())
	r.DELETE("/admin/orders/:order_id", oc.DeleteOrder())

	r.GET("/admin/branches/:branch_id", bc.GetBranch())
	r.POST("/admin/branches", bc.CreateBranch())
	r.PATCH("/admin/branches/:branch_id", bc.UpdateBranch())
	r.DELETE("/admin/branches/:branch_id", bc.DeleteBranch())
	r.GET("/admin/delivery-areas", dc.GetDeliveryAreas())
	r.POST("/admin/delivery-areas", dc.CreateDeliveryArea())
	r.PUT("/admin/delivery-areas/:area_id", dc.UpdateDeliveryArea())
	r.DELETE("/admin/delivery-areas/:area_id", dc.DeleteDeliveryArea())
	r.GET("/admin/promo-codes", pc.GetPromoCodes())
	r.POST("/admin/promo-codes", pc.CreatePromoCode())
	r.PATCH("/admin/promo-codes/:promo_id", pc.UpdatePromoCode())
	r.DELETE("/admin/promo-codes/:promo_id", pc.DeletePromoCode())
	r.PUT("/admin/discount", disc.SaveDiscount())
	h.router = r
	return h
}

func (h *harness) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

type errorBody struct {
	Error  string             `json:"error"`
	Errors validation.Errors `json:"errors"`
}

type listBody[T any] struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    []T    `json:"data"`
}

func (h *harness) deliveryBody(price float64) gin.H {
	return gin.H{
		"fullName":        "Ayesha Khan",
		"mobileNumber":    "03001234567",
		"alternateMobile": "03111234567",
		"orderType":       "delivery",
		"deliveryAddress": "House 12, Street 4",
		"deliveryArea":    h.area.ID.Hex(),
		"branch":          h.branch.ID.Hex(),
		"items": []gin.H{
			{"id": "biryani", "title": "Chicken Biryani", "price": price, "quantity": 1},
		},
	}
}

func (h *harness) pickupBody(price float64) gin.H {
	return gin.H{
		"fullName":     "Bilal Ahmed",
		"mobileNumber": "03219876543",
		"orderType":    "pickup",
		"branch":       h.branch.ID.Hex(),
		"items": []gin.H{
			{"id": "karahi", "title": "Mutton Karahi", "price": price},
		},
	}
}

func (h *harness) place(t *testing.T, body gin.H) models.Order {
	t.Helper()
	w := h.do(t, http.MethodPost, "/api/checkout", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[models.Order](t, w)
}

func signupRequest(t *testing.T, body gin.H, token string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))
	req := httptest.NewRequest(http.MethodPost, "/users/signup", &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
