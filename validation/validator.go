// Package validation checks checkout submissions, order lines and priced
// totals before anything is written. Every rule is evaluated and all
// violations are returned together as Errors.
package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"go-restaurant-ordering/models"
	"go-restaurant-ordering/pricing"
)

var mobilePattern = regexp.MustCompile(`^03[0-9]{9}$`)

// Upper bounds on a single line. They keep priced totals well inside int64.
const (
	MaxPrice    = 10_000_000
	MaxQuantity = 1000
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	mustRegister(v, "mobile", func(fl validator.FieldLevel) bool {
		return IsMobileNumber(fl.Field().String())
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %q validation: %v", tag, err))
	}
}

// Rules holds the configurable business thresholds.
type Rules struct {
	MinOrderValue int64
}

// DefaultRules accepts any order worth at least one unit.
func DefaultRules() Rules {
	return Rules{MinOrderValue: 1}
}

// IsMobileNumber reports whether s is an 11-digit local mobile number
// starting with 03.
func IsMobileNumber(s string) bool {
	return mobilePattern.MatchString(s)
}

// Struct runs the tag rules on v and converts failures to Errors. Used for
// admin payloads such as branches and promo codes.
func Struct(v interface{}) error {
	var errs Errors
	errs.addTagErrors(validate.Struct(v))
	return errs.orNil()
}

// ValidateOrderSubmission checks a storefront checkout and, when it passes,
// returns the order it describes with status Pending and no totals. Lookups
// of the branch and delivery area are left to the caller.
func ValidateOrderSubmission(req models.CheckoutRequest) (*models.Order, error) {
	req = normalize(req)

	var errs Errors
	errs.addTagErrors(validate.Struct(req))

	branchID, _ := errs.objectID("branch", req.Branch, true)

	var areaID *primitive.ObjectID
	if req.OrderType == models.OrderTypeDelivery {
		if req.AlternateMobile == "" {
			errs.add("alternateMobile", "alternateMobile is required for delivery orders")
		} else if !IsMobileNumber(req.AlternateMobile) {
			errs.add("alternateMobile", "alternateMobile must be an 11-digit number starting with 03")
		}
		if req.DeliveryAddress == "" {
			errs.add("deliveryAddress", "deliveryAddress is required for delivery orders")
		}
		if req.DeliveryArea == "" {
			errs.add("deliveryArea", "deliveryArea is required for delivery orders")
		} else if id, ok := errs.objectID("deliveryArea", req.DeliveryArea, false); ok {
			areaID = &id
		}
	}

	if req.PaymentMethod == models.PaymentOnline {
		if req.OnlineOption == "" && req.BankName == "" {
			errs.add("onlineOption", "onlineOption is required for online payment")
		}
		if req.ReceiptImageURL == "" {
			errs.add("receiptImageUrl", "payment receipt is required for online payment")
		}
	}

	items := errs.cartItems(req.Items)

	if err := errs.orNil(); err != nil {
		return nil, err
	}

	order := &models.Order{
		FullName:      req.FullName,
		MobileNumber:  req.MobileNumber,
		Email:         req.Email,
		OrderType:     req.OrderType,
		PaymentMethod: req.PaymentMethod,
		Status:        models.StatusPending,
		Branch:        branchID,
		Items:         items,
		PromoCode:     req.PromoCode,
		IsGift:        req.IsGift,
	}
	if req.OrderType == models.OrderTypeDelivery {
		order.AlternateMobile = req.AlternateMobile
		order.DeliveryAddress = req.DeliveryAddress
		order.NearestLandmark = req.NearestLandmark
		order.DeliveryArea = areaID
	}
	switch req.PaymentMethod {
	case models.PaymentOnline:
		order.BankName = req.OnlineOption
		if order.BankName == "" {
			order.BankName = req.BankName
		}
		order.ReceiptImageURL = req.ReceiptImageURL
	case models.PaymentCOD:
		order.ChangeRequest = req.ChangeRequest
	}
	if req.IsGift {
		order.GiftMessage = req.GiftMessage
	}
	return order, nil
}

// ValidateCartItems applies the checkout line rules to submitted lines, as
// used by admin item edits, and returns them in order form.
func ValidateCartItems(cart []models.CartItem) ([]models.OrderItem, error) {
	var errs Errors
	items := errs.cartItems(cart)
	if err := errs.orNil(); err != nil {
		return nil, err
	}
	return items, nil
}

// ValidateTotals enforces the minimum order value and re-checks that the
// grand total is not negative.
func ValidateTotals(t pricing.Totals, rules Rules) error {
	var errs Errors
	if t.Subtotal < rules.MinOrderValue {
		errs.add("subtotal", fmt.Sprintf("minimum order value is %d", rules.MinOrderValue))
	}
	if t.Total < 0 {
		errs.add("total", "total must not be negative")
	}
	return errs.orNil()
}

func normalize(req models.CheckoutRequest) models.CheckoutRequest {
	req.FullName = strings.TrimSpace(req.FullName)
	req.MobileNumber = strings.TrimSpace(req.MobileNumber)
	req.AlternateMobile = strings.TrimSpace(req.AlternateMobile)
	req.Email = strings.TrimSpace(req.Email)
	req.DeliveryAddress = strings.TrimSpace(req.DeliveryAddress)
	req.NearestLandmark = strings.TrimSpace(req.NearestLandmark)
	req.OnlineOption = strings.TrimSpace(req.OnlineOption)
	req.BankName = strings.TrimSpace(req.BankName)
	req.ReceiptImageURL = strings.TrimSpace(req.ReceiptImageURL)
	req.Branch = strings.TrimSpace(req.Branch)
	req.DeliveryArea = strings.TrimSpace(req.DeliveryArea)
	req.PromoCode = NormalizePromoCode(req.PromoCode)
	if req.PaymentMethod == "" {
		req.PaymentMethod = models.PaymentCOD
	}
	return req
}

// NormalizePromoCode trims and upper-cases a customer-entered code.
func NormalizePromoCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (e *Errors) cartItems(cart []models.CartItem) []models.OrderItem {
	if len(cart) == 0 {
		e.add("items", "at least one item is required")
		return nil
	}
	items := make([]models.OrderItem, 0, len(cart))
	for i, ci := range cart {
		prefix := fmt.Sprintf("items[%d]", i)
		e.itemIdentity(prefix, ci.ID, ci.Title)

		item := models.OrderItem{
			ID:                  strings.TrimSpace(ci.ID),
			Title:               strings.TrimSpace(ci.Title),
			ImageURL:            ci.ImageURL,
			SpecialInstructions: ci.SpecialInstructions,
			Quantity:            1,
		}
		switch {
		case ci.Price == nil:
			e.add(prefix+".price", "price is required")
		case *ci.Price < 0:
			e.add(prefix+".price", "price must not be negative")
		case *ci.Price > MaxPrice:
			e.add(prefix+".price", fmt.Sprintf("price must be at most %d", MaxPrice))
		default:
			item.Price = *ci.Price
		}
		if ci.Quantity != nil {
			switch {
			case *ci.Quantity < 1:
				e.add(prefix+".quantity", "quantity must be at least 1")
			case *ci.Quantity > MaxQuantity:
				e.add(prefix+".quantity", fmt.Sprintf("quantity must be at most %d", MaxQuantity))
			}
			item.Quantity = *ci.Quantity
		}

		if v := ci.SelectedVariation; v != nil {
			if e.selection(prefix+".selectedVariation", v.Name, v.Price) {
				item.SelectedVariation = &models.Selection{Name: strings.TrimSpace(v.Name), Price: *v.Price}
			}
		}
		for j, extra := range ci.SelectedExtras {
			if e.selection(fmt.Sprintf("%s.selectedExtras[%d]", prefix, j), extra.Name, extra.Price) {
				item.SelectedExtras = append(item.SelectedExtras, models.Selection{Name: strings.TrimSpace(extra.Name), Price: *extra.Price})
			}
		}
		for j, side := range ci.SelectedSideOrders {
			if e.selection(fmt.Sprintf("%s.selectedSideOrders[%d]", prefix, j), side.Name, side.Price) {
				item.SelectedSideOrders = append(item.SelectedSideOrders, models.SideOrder{
					Name:     strings.TrimSpace(side.Name),
					Price:    *side.Price,
					Category: side.Category,
				})
			}
		}
		items = append(items, item)
	}
	return items
}

func (e *Errors) itemIdentity(prefix, id, title string) {
	if strings.TrimSpace(id) == "" {
		e.add(prefix+".id", "item id is required")
	}
	if strings.TrimSpace(title) == "" {
		e.add(prefix+".title", "item title is required")
	}
}

// selection reports whether a named sub-selection is complete.
func (e *Errors) selection(field, name string, price *float64) bool {
	ok := true
	if strings.TrimSpace(name) == "" {
		e.add(field+".name", "name is required")
		ok = false
	}
	switch {
	case price == nil:
		e.add(field+".price", "price is required")
		ok = false
	case *price < 0:
		e.add(field+".price", "price must not be negative")
		ok = false
	case *price > MaxPrice:
		e.add(field+".price", fmt.Sprintf("price must be at most %d", MaxPrice))
		ok = false
	}
	return ok
}

func (e *Errors) objectID(field, hex string, required bool) (primitive.ObjectID, bool) {
	if hex == "" {
		if required {
			e.add(field, field+" is required")
		}
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		e.add(field, field+" is not a valid id")
		return primitive.NilObjectID, false
	}
	return id, true
}
