package partner

import (
	"context"

	"github.com/bakeryops/backend/internal/domain/partner"
	"github.com/bakeryops/backend/internal/domain/shared"
	"github.com/bakeryops/backend/internal/domain/trade"
	"github.com/google/uuid"
)

// searchResultLimit caps the quick-search result size
const searchResultLimit = 10

// CustomerService handles customer-related business operations
type CustomerService struct {
	customerRepo partner.CustomerRepository
	saleRepo     trade.SaleRepository
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo partner.CustomerRepository, saleRepo trade.SaleRepository) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		saleRepo:     saleRepo,
	}
}

// Create creates a new customer
func (s *CustomerService) Create(ctx context.Context, req CreateCustomerRequest) (*CustomerResponse, error) {
	if req.Phone != "" {
		existing, err := s.customerRepo.FindByPhone(ctx, req.Phone)
		if err != nil && err != shared.ErrNotFound {
			return nil, err
		}
		if existing != nil {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Customer with this phone already exists")
		}
	}

	customer, err := partner.NewCustomer(req.Name, req.Phone, req.Address)
	if err != nil {
		return nil, err
	}

	if req.CompanyName != "" {
		if err := customer.SetCompanyName(req.CompanyName); err != nil {
			return nil, err
		}
	}
	if req.Notes != "" {
		customer.SetNotes(req.Notes)
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// GetByID retrieves a customer by ID
func (s *CustomerService) GetByID(ctx context.Context, customerID uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// List retrieves a list of customers with filtering and pagination
func (s *CustomerService) List(ctx context.Context, filter CustomerListFilter) (*shared.Paginated[CustomerResponse], error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
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
		customers []partner.Customer
		total     int64
		err       error
	)
	if filter.WithDebt {
		customers, err = s.customerRepo.FindWithDebt(ctx, domainFilter)
		if err != nil {
			return nil, err
		}
		total, err = s.customerRepo.CountWithDebt(ctx)
	} else {
		customers, err = s.customerRepo.FindAll(ctx, domainFilter)
		if err != nil {
			return nil, err
		}
		total, err = s.customerRepo.Count(ctx, domainFilter)
	}
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToCustomerResponses(customers), total, filter.Page, filter.PageSize)
	return &result, nil
}

// ListDebtors retrieves all customers with outstanding debt, biggest first
func (s *CustomerService) ListDebtors(ctx context.Context, filter CustomerListFilter) (*shared.Paginated[CustomerResponse], error) {
	filter.WithDebt = true
	return s.List(ctx, filter)
}

// Update updates a customer's information
func (s *CustomerService) Update(ctx context.Context, customerID uuid.UUID, req UpdateCustomerRequest) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	name := customer.Name
	phone := customer.Phone
	address := customer.Address
	if req.Name != nil {
		name = *req.Name
	}
	if req.Phone != nil {
		phone = *req.Phone
	}
	if req.Address != nil {
		address = *req.Address
	}

	if err := customer.Update(name, phone, address); err != nil {
		return nil, err
	}
	if req.CompanyName != nil {
		if err := customer.SetCompanyName(*req.CompanyName); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		customer.SetNotes(*req.Notes)
	}

	if err := s.customerRepo.SaveWithLock(ctx, customer); err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// Search finds customers whose name, company name or phone matches the
// query, limited to the first matches for quick lookup at the counter.
func (s *CustomerService) Search(ctx context.Context, query string) ([]CustomerResponse, error) {
	filter := shared.Filter{
		Page:     1,
		PageSize: searchResultLimit,
		OrderBy:  "name",
		OrderDir: "asc",
		Search:   query,
		Filters:  make(map[string]any),
	}

	customers, err := s.customerRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	return ToCustomerResponses(customers), nil
}

// Delete removes a customer. Customers with outstanding debt or recorded
// sales cannot be deleted, so the sales history stays intact.
func (s *CustomerService) Delete(ctx context.Context, customerID uuid.UUID) error {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return err
	}

	if customer.HasDebt() {
		return shared.NewDomainError("INVALID_STATE", "Cannot delete a customer with outstanding debt")
	}

	saleCount, err := s.saleRepo.Count(ctx, shared.Filter{
		Filters: map[string]any{"customer_id": customerID},
	})
	if err != nil {
		return err
	}
	if saleCount > 0 {
		return shared.NewDomainError("INVALID_STATE", "Cannot delete a customer with recorded sales")
	}

	return s.customerRepo.Delete(ctx, customerID)
}
