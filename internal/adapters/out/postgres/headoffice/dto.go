// Package headoffice reads orders, customers and the catalog from the head office
// database and records the store's daily summary there.
package headoffice

import (
	"database/sql"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// Table names inside the head office schema.
const (
	ordersTable     = "orders"
	customersTable  = "customers"
	orderItemsTable = "order_items"
	summaryTable    = "summary"
)

// CustomerDTO is a row of the customers table.
type CustomerDTO struct {
	CustomerID int64  `gorm:"column:customer_id;primaryKey;autoIncrement:false"`
	FirstName  string `gorm:"column:first_name;index:idx_customer_name"`
	LastName   string `gorm:"column:last_name;index:idx_customer_name"`
	Phone      string `gorm:"column:phone"`
	Address    string `gorm:"column:address"`
	PostCode   string `gorm:"column:post_code"`
}

// OrderDTO is a row of the orders table.
type OrderDTO struct {
	OrderID    int64     `gorm:"column:order_id;primaryKey;autoIncrement:false"`
	OrderDate  time.Time `gorm:"column:order_date;type:date;index"`
	CustomerID int64     `gorm:"column:customer_id"`
	StoreID    string    `gorm:"column:store_id"`
}

// OrderItemDTO is a row of the order_items table, which doubles as the product catalog.
type OrderItemDTO struct {
	OrderItemID int64           `gorm:"column:order_item_id;primaryKey;autoIncrement:false"`
	OrderID     int64           `gorm:"column:order_id;index"`
	ProductName string          `gorm:"column:product_name;index"`
	Quantity    int             `gorm:"column:quantity"`
	ListPrice   decimal.Decimal `gorm:"column:list_price;type:numeric(10,2)"`
}

// SummaryDTO is a row of the summary table; one row per store and date.
type SummaryDTO struct {
	StoreID     string          `gorm:"column:store_id;uniqueIndex:idx_summary_store_date"`
	SummaryDate time.Time       `gorm:"column:summary_date;type:date;uniqueIndex:idx_summary_store_date"`
	TotalSales  decimal.Decimal `gorm:"column:total_sales;type:numeric(12,2)"`
	TotalOrders int64           `gorm:"column:total_orders"`
	BestProduct string          `gorm:"column:best_product"`
}

// dailyRowDTO is one row of the daily join. Text columns are nullable in the head
// office; numeric columns are read as text so the formatter owns their coercion.
type dailyRowDTO struct {
	OrderID     int64
	OrderDate   time.Time
	CustomerID  int64
	FirstName   sql.NullString
	LastName    sql.NullString
	Phone       sql.NullString
	Address     sql.NullString
	PostCode    sql.NullString
	OrderItemID int64
	Quantity    sql.NullString
	ProductName sql.NullString
	ListPrice   sql.NullString
}

func (r dailyRowDTO) toSourceRow() order.SourceRow {
	return order.SourceRow{
		OrderID:     r.OrderID,
		OrderDate:   kernel.NewBusinessDate(r.OrderDate),
		CustomerID:  r.CustomerID,
		FirstName:   r.FirstName.String,
		LastName:    r.LastName.String,
		Phone:       r.Phone.String,
		Address:     r.Address.String,
		PostCode:    r.PostCode.String,
		ItemID:      r.OrderItemID,
		ProductName: r.ProductName.String,
		Quantity:    r.Quantity.String,
		ListPrice:   r.ListPrice.String,
	}
}
