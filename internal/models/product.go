package models

import "time"

// Product is a single inventory row.
type Product struct {
	ID          int       `json:"id"`
	ProductName string    `json:"product_name"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	Quantity    int       `json:"quantity"`
	CreatedAt   time.Time `json:"created_at"`
	// IsLowStock is derived at read time from the configured threshold,
	// never persisted.
	IsLowStock bool `json:"is_low_stock"`
}

// Stats is the aggregate snapshot shown on the dashboard.
type Stats struct {
	TotalProducts int `json:"total_products"`
	TotalStock    int `json:"total_stock"`
	LowStockCount int `json:"low_stock_count"`
}
