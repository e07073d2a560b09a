package service

import (
	"context"
	"strconv"
	"strings"

	"inventory_tracker/internal/models"
	"inventory_tracker/internal/repository"
)

// DefaultLowStockThreshold flags products needing attention when no
// threshold is configured.
const DefaultLowStockThreshold = 10

// ProductInput is a raw product submission. Price and quantity arrive
// as strings so unparseable input is a validation failure, not a
// transport error.
type ProductInput struct {
	ProductName string `json:"product_name"`
	Category    string `json:"category"`
	Price       string `json:"price"`
	Quantity    string `json:"quantity"`
}

// validated holds a submission after all rules passed.
type validated struct {
	Name     string
	Category string
	Price    float64
	Quantity int
}

// InventoryService implements product CRUD with validation in front of
// every write.
type InventoryService struct {
	products  repository.Products
	threshold int
}

func NewInventoryService(products repository.Products, threshold int) *InventoryService {
	if threshold <= 0 {
		threshold = DefaultLowStockThreshold
	}
	return &InventoryService{products: products, threshold: threshold}
}

var _ Inventory = (*InventoryService)(nil)

// Threshold returns the configured low-stock cutoff.
func (s *InventoryService) Threshold() int {
	return s.threshold
}

// List returns all products newest first, with the low-stock flag derived.
func (s *InventoryService) List(ctx context.Context) ([]models.Product, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		products[i].IsLowStock = products[i].Quantity < s.threshold
	}
	return products, nil
}

// Stats returns aggregate totals over all rows.
func (s *InventoryService) Stats(ctx context.Context) (models.Stats, error) {
	return s.products.Stats(ctx, s.threshold)
}

// Get fetches one product or ErrNotFound.
func (s *InventoryService) Get(ctx context.Context, id int) (*models.Product, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}
	p.IsLowStock = p.Quantity < s.threshold
	return p, nil
}

// Add validates the submission and inserts it. Storage is never touched
// when validation fails.
func (s *InventoryService) Add(ctx context.Context, in ProductInput) (*models.Product, error) {
	v, err := validateProduct(in)
	if err != nil {
		return nil, err
	}
	id, createdAt, err := s.products.Insert(ctx, v.Name, v.Category, v.Price, v.Quantity)
	if err != nil {
		return nil, err
	}
	return &models.Product{
		ID:          id,
		ProductName: v.Name,
		Category:    v.Category,
		Price:       v.Price,
		Quantity:    v.Quantity,
		CreatedAt:   createdAt,
		IsLowStock:  v.Quantity < s.threshold,
	}, nil
}

// Update replaces all mutable fields of an existing product. Applying
// the same payload twice yields the same stored row.
func (s *InventoryService) Update(ctx context.Context, id int, in ProductInput) (*models.Product, error) {
	v, err := validateProduct(in)
	if err != nil {
		return nil, err
	}
	found, err := s.products.Update(ctx, id, v.Name, v.Category, v.Price, v.Quantity)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}
	return s.Get(ctx, id)
}

// Delete removes a product and returns its name for confirmation messaging.
func (s *InventoryService) Delete(ctx context.Context, id int) (string, error) {
	name, found, err := s.products.Delete(ctx, id)
	if err != nil {
		return "", err
	}
	if !found {
		return "", ErrNotFound
	}
	return name, nil
}

// Violation messages, kept stable for the presentation layer.
const (
	msgNameRequired     = "product name is required"
	msgCategoryRequired = "category is required"
	msgPriceInvalid     = "price must be a valid number"
	msgPriceNegative    = "price cannot be negative"
	msgQuantityInvalid  = "quantity must be a valid integer"
	msgQuantityNegative = "quantity cannot be negative"
)

// validateProduct applies every rule and collects all violations rather
// than stopping at the first one.
func validateProduct(in ProductInput) (validated, error) {
	var violations []string

	name := strings.TrimSpace(in.ProductName)
	if name == "" {
		violations = append(violations, msgNameRequired)
	}

	category := strings.TrimSpace(in.Category)
	if category == "" {
		violations = append(violations, msgCategoryRequired)
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(in.Price), 64)
	switch {
	case err != nil:
		violations = append(violations, msgPriceInvalid)
	case price < 0:
		violations = append(violations, msgPriceNegative)
	}

	quantity, err := strconv.Atoi(strings.TrimSpace(in.Quantity))
	switch {
	case err != nil:
		violations = append(violations, msgQuantityInvalid)
	case quantity < 0:
		violations = append(violations, msgQuantityNegative)
	}

	if len(violations) > 0 {
		return validated{}, &ValidationError{Violations: violations}
	}
	return validated{Name: name, Category: category, Price: price, Quantity: quantity}, nil
}
