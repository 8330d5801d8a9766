package models

import "time"

// OrderItemRow is one line item of the denormalized sales table: the join of
// order_item, order, customer, address, product and category. Only active
// orders, customers and products ever reach this struct; inactive rows are
// excluded by the source query itself.
type OrderItemRow struct {
	OrderItemID   int64     `db:"id_order_item" json:"orderItemId"`
	OrderID       int64     `db:"id_order" json:"orderId"`
	PaymentDate   time.Time `db:"payment_date" json:"paymentDate"`
	CustomerID    int64     `db:"id_customer" json:"customerId"`
	CustomerName  string    `db:"customer_name" json:"customerName"`
	CustomerEmail string    `db:"customer_email" json:"customerEmail"`
	City          string    `db:"city" json:"city"`
	Department    string    `db:"department" json:"department"`
	ProductID     int64     `db:"id_product" json:"productId"`
	ProductName   string    `db:"product_name" json:"productName"`
	ProductPrice  float64   `db:"product_price" json:"productPrice"`
	CategoryID    int64     `db:"id_category" json:"categoryId"`
	CategoryName  string    `db:"category_name" json:"categoryName"`
	Quantity      int64     `db:"quantity" json:"quantity"`
	Subtotal      float64   `db:"subtotal" json:"subtotal"`

	// Derived from PaymentDate when the table is built, never stored.
	Year      int    `db:"-" json:"year"`
	Month     int    `db:"-" json:"month"`
	DayOfWeek string `db:"-" json:"dayOfWeek"`
}
