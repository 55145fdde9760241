package controllers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"go-restaurant-ordering/checkout"
	"go-restaurant-ordering/models"
	"go-restaurant-ordering/orderstatus"
	"go-restaurant-ordering/repository"
)

// OrderController serves storefront checkout and the admin order screens.
type OrderController struct {
	orders  *checkout.Service
	timeout time.Duration
	log     *zap.Logger
}

func NewOrderController(orders *checkout.Service, timeout time.Duration, log *zap.Logger) *OrderController {
	return &OrderController{orders: orders, timeout: timeout, log: log.Named("orders")}
}

type promoCodeRequest struct {
	Code string `json:"code"`
}

type statusRequest struct {
	Status       string `json:"status"`
	CancelReason string `json:"cancelReason"`
	RiderName    string `json:"riderName"`
}

type itemsRequest struct {
	Items []models.CartItem `json:"items"`
}

func (oc *OrderController) Checkout() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), oc.timeout)
		defer cancel()

		var req models.CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
		order, err := oc.orders.PlaceOrder(ctx, req)
		if err != nil {
			respondError(c, oc.log, err)
			return
		}
		c.JSON(http.StatusCreated, order)
	}
}

// Quote prices a cart the same way Checkout does without placing the order.
func (oc *OrderController) Quote() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), oc.timeout)
		defer cancel()

		var req models.CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
		quote, err := oc.orders.Quote(ctx, req)
		if err != nil {
			respondError(c, oc.log, err)
			return
		}
		c.JSON(http.StatusOK, quote)
	}
}

func (oc *OrderController) ApplyPromoCode() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), oc.timeout)
		defer cancel()

		var req promoCodeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
		promo, err := oc.orders.ApplyPromoCode(ctx, req.Code)
		if err != nil {
			respondError(c, oc.log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"code": promo.Code, "discount": promo.Discount})
	}
}

func (oc *OrderController) GetOrders() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), oc.timeout)
		defer cancel()

		filter, err := orderFilterFromQuery(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		recordPerPage, err := strconv.Atoi(c.DefaultQuery("recordPerPage", "10"))
		if err != nil || recordPerPage < 1 {
			recordPerPage = repository.DefaultRecordPerPage
		}
		page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
		if err != nil || page < 1 {
			page = 1
		}

		result, err := oc.orders.ListOrders(ctx, filter, repository.Page{Page: page, RecordPerPage: recordPerPage})
		if err != nil {
			respondError(c, oc.log, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func (oc *OrderController) GetOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), oc.timeout)
		defer cancel()

		order, err := oc.orders.GetOrder(ctx, c.Param("order_id"))
		if err != nil {
			respondError(c, oc.log, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func (oc *OrderController) UpdateOrderStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), oc.timeout)
		defer cancel()

		var req statusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
		status, err := orderstatus.Parse(req.Status)
		if err != nil {
			respondError(c, oc.log, err)
			return
		}
		order, err := oc.orders.UpdateOrderStatus(ctx, c.Param("order_id"), orderstatus.Update{
			Status:       status,
			CancelReason: req.CancelReason,
			RiderName:    req.RiderName,
		})
		if err != nil {
			respondError(c, oc.log, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func (oc *OrderController) UpdateOrderItems() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), oc.timeout)
		defer cancel()

		var req itemsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
		order, err := oc.orders.UpdateOrderItems(ctx, c.Param("order_id"), req.Items)
		if err != nil {
			respondError(c, oc.log, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func (oc *OrderController) DeleteOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), oc.timeout)
		defer cancel()

		if err := oc.orders.DeleteOrder(ctx, c.Param("order_id")); err != nil {
			respondError(c, oc.log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "order deleted"})
	}
}

func (oc *OrderController) ExportOrders() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), oc.timeout)
		defer cancel()

		filter, err := orderFilterFromQuery(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		orders, err := oc.orders.ExportOrders(ctx, filter)
		if err != nil {
			respondError(c, oc.log, err)
			return
		}
		file, err := ordersWorkbook(orders)
		if err != nil {
			respondError(c, oc.log, err)
			return
		}

		c.Header("Content-Disposition", "attachment; filename=orders.xlsx")
		c.Header("Content-Type", xlsxContentType)
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")
		if err := file.Write(c.Writer); err != nil {
			oc.log.Error("write order export", zap.Error(err))
		}
	}
}

func orderFilterFromQuery(c *gin.Context) (repository.OrderFilter, error) {
	var filter repository.OrderFilter

	if s := c.Query("status"); s != "" {
		status, err := orderstatus.Parse(s)
		if err != nil {
			return filter, err
		}
		filter.Status = status
	}
	if b := c.Query("branch"); b != "" {
		id, err := primitive.ObjectIDFromHex(b)
		if err != nil {
			return filter, fmt.Errorf("invalid branch id %q", b)
		}
		filter.Branch = &id
	}
	switch t := models.OrderType(c.Query("orderType")); t {
	case "":
	case models.OrderTypeDelivery, models.OrderTypePickup:
		filter.OrderType = t
	default:
		return filter, fmt.Errorf("invalid orderType %q", t)
	}
	if from := c.Query("from"); from != "" {
		t, _, err := parseDate(from)
		if err != nil {
			return filter, err
		}
		filter.From = &t
	}
	if to := c.Query("to"); to != "" {
		t, dateOnly, err := parseDate(to)
		if err != nil {
			return filter, err
		}
		if dateOnly {
			t = t.Add(24*time.Hour - time.Second)
		}
		filter.To = &t
	}
	filter.Search = strings.TrimSpace(c.Query("search"))
	return filter, nil
}

// parseDate accepts RFC3339 or a plain YYYY-MM-DD date, reporting which.
func parseDate(s string) (time.Time, bool, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, false, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("invalid date %q", s)
	}
	return t, true, nil
}
