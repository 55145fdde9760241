package controllers

import (
	"fmt"
	"strings"

	"github.com/tealeg/xlsx"

	"go-restaurant-ordering/models"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var exportHeaders = []string{
	"Order No", "Date", "Status", "Type", "Customer", "Mobile", "Address", "Area",
	"Items", "Subtotal", "Delivery Fee", "Discount", "Total", "Payment", "Promo Code",
	"Rider", "Cancel Reason",
}

func ordersWorkbook(orders []models.Order) (*xlsx.File, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Orders")
	if err != nil {
		return nil, fmt.Errorf("add sheet: %w", err)
	}

	headerRow := sheet.AddRow()
	for _, h := range exportHeaders {
		headerRow.AddCell().SetValue(h)
	}

	for _, o := range orders {
		row := sheet.AddRow()
		row.AddCell().SetValue(o.OrderNo)
		row.AddCell().SetValue(o.CreatedAt.Format("2006-01-02 15:04:05"))
		row.AddCell().SetValue(string(o.Status))
		row.AddCell().SetValue(string(o.OrderType))
		row.AddCell().SetValue(o.FullName)
		row.AddCell().SetValue(o.MobileNumber)
		row.AddCell().SetValue(o.DeliveryAddress)
		row.AddCell().SetValue(o.DeliveryAreaName)
		row.AddCell().SetValue(itemSummary(o.Items))
		row.AddCell().SetValue(o.Subtotal)
		row.AddCell().SetValue(o.DeliveryFee)
		row.AddCell().SetValue(o.Discount)
		row.AddCell().SetValue(o.Total)
		row.AddCell().SetValue(string(o.PaymentMethod))
		row.AddCell().SetValue(o.PromoCode)
		row.AddCell().SetValue(o.RiderName)
		row.AddCell().SetValue(o.CancelReason)
	}
	return file, nil
}

// itemSummary renders lines as "2 x Pizza (Large); 1 x Fries".
func itemSummary(items []models.OrderItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		s := fmt.Sprintf("%d x %s", item.Quantity, item.Title)
		if item.SelectedVariation != nil {
			s += " (" + item.SelectedVariation.Name + ")"
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, "; ")
}
