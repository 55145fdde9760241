package models

// OrderItem is one embedded order line. ID references a menu item owned by
// the catalogue; the line has no identity of its own.
type OrderItem struct {
	ID                  string      `bson:"id" json:"id"`
	Title               string      `bson:"title" json:"title"`
	Price               float64     `bson:"price" json:"price"`
	Quantity            int         `bson:"quantity" json:"quantity"`
	ImageURL            string      `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	SpecialInstructions string      `bson:"specialInstructions,omitempty" json:"specialInstructions,omitempty"`
	SelectedVariation   *Selection  `bson:"selectedVariation,omitempty" json:"selectedVariation,omitempty"`
	SelectedExtras      []Selection `bson:"selectedExtras,omitempty" json:"selectedExtras,omitempty"`
	SelectedSideOrders  []SideOrder `bson:"selectedSideOrders,omitempty" json:"selectedSideOrders,omitempty"`
}

type Selection struct {
	Name  string  `bson:"name" json:"name"`
	Price float64 `bson:"price" json:"price"`
}

type SideOrder struct {
	Name     string  `bson:"name" json:"name"`
	Price    float64 `bson:"price" json:"price"`
	Category string  `bson:"category,omitempty" json:"category,omitempty"`
}

// UnitPrice is the variation price when one is selected, else the base price.
func (i OrderItem) UnitPrice() float64 {
	if i.SelectedVariation != nil {
		return i.SelectedVariation.Price
	}
	return i.Price
}
