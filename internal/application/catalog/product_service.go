package catalog

import (
	"context"

	"github.com/bakeryops/backend/internal/domain/catalog"
	"github.com/bakeryops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductService handles product-related business operations
type ProductService struct {
	productRepo catalog.ProductRepository
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository) *ProductService {
	return &ProductService{
		productRepo: productRepo,
	}
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	product, err := catalog.NewProduct(req.Name, catalog.ProductType(req.Type), req.Price, req.Unit)
	if err != nil {
		return nil, err
	}
	product.Description = req.Description

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves a list of products with filtering and pagination
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) (*shared.Paginated[ProductResponse], error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "name"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "asc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]any),
	}

	var (
		products []catalog.Product
		err      error
	)
	if filter.Type != "" {
		products, err = s.productRepo.FindByType(ctx, catalog.ProductType(filter.Type), domainFilter)
		domainFilter.Filters["type"] = filter.Type
	} else {
		products, err = s.productRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, err
	}

	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToProductResponses(products), total, filter.Page, filter.PageSize)
	return &result, nil
}

// Update updates a product's information
func (s *ProductService) Update(ctx context.Context, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	name := product.Name
	productType := product.Type
	price := product.Price
	unit := product.Unit
	description := product.Description
	if req.Name != nil {
		name = *req.Name
	}
	if req.Type != nil {
		productType = catalog.ProductType(*req.Type)
	}
	if req.Price != nil {
		price = *req.Price
	}
	if req.Unit != nil {
		unit = *req.Unit
	}
	if req.Description != nil {
		description = *req.Description
	}

	if err := product.Update(name, productType, price, unit, description); err != nil {
		return nil, err
	}

	if err := s.productRepo.SaveWithLock(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// UpdateStock manually adjusts a product's stock level
func (s *ProductService) UpdateStock(ctx context.Context, productID uuid.UUID, req UpdateStockRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	switch req.Operation {
	case "add":
		err = product.AddStock(req.Quantity)
	case "subtract":
		err = product.RemoveStock(req.Quantity)
	default:
		err = shared.NewDomainError("INVALID_INPUT", "Operation must be 'add' or 'subtract'")
	}
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.SaveWithLock(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Delete removes a product from the catalog
func (s *ProductService) Delete(ctx context.Context, productID uuid.UUID) error {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, productID)
}
