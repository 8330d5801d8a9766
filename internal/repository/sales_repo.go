package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/riwisport/sales-dashboard/internal/models"
)

// SalesRepository handles read-only data access for the sales dataset.
type SalesRepository struct {
	db *sqlx.DB
}

// NewSalesRepository creates a new SalesRepository.
func NewSalesRepository(db *sqlx.DB) *SalesRepository {
	return &SalesRepository{db: db}
}

// LoadOrderItems executes the fixed denormalized join and returns one row per
// order item. Soft-deleted orders, customers and products are excluded here
// at the source; nothing downstream filters on activity again.
func (r *SalesRepository) LoadOrderItems(ctx context.Context) ([]models.OrderItemRow, error) {
	const q = `
        SELECT
            oi.id_order_item,
            o.id_order,
            o.payment_date,
            c.id_customer,
            c.full_name AS customer_name,
            c.email AS customer_email,
            a.city,
            a.department,
            p.id_product,
            p.name AS product_name,
            p.price AS product_price,
            cat.id_category,
            cat.name AS category_name,
            oi.amount AS quantity,
            oi.subtotal
        FROM public.order_item oi
        JOIN public."order" o ON oi.order_id = o.id_order
        JOIN public.customer c ON o.customer_id = c.id_customer
        JOIN public.address a ON c.address_id = a.id_address
        JOIN public.product p ON oi.product_id = p.id_product
        JOIN public.category cat ON p.category_id = cat.id_category
        WHERE o.is_active = true AND c.is_active = true AND p.is_active = true`

	var rows []models.OrderItemRow
	if err := r.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, err
	}
	return rows, nil
}

// Ping verifies the database connection is alive.
func (r *SalesRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
