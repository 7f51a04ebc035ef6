package inventory

import (
	"context"

	"github.com/bakeryops/backend/internal/domain/inventory"
	"github.com/bakeryops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WarehouseService handles raw material and stock movement use cases.
// Stock quantity changes only through movements; the movement record and
// the material it touches are written in one transaction.
type WarehouseService struct {
	materialRepo inventory.RawMaterialRepository
	movementRepo inventory.MovementRepository
	txScope      TransactionScope
}

// NewWarehouseService creates a new WarehouseService
func NewWarehouseService(
	materialRepo inventory.RawMaterialRepository,
	movementRepo inventory.MovementRepository,
	txScope TransactionScope,
) *WarehouseService {
	return &WarehouseService{
		materialRepo: materialRepo,
		movementRepo: movementRepo,
		txScope:      txScope,
	}
}

// CreateMaterial registers a new raw material with zero stock
func (s *WarehouseService) CreateMaterial(ctx context.Context, req CreateMaterialRequest) (*MaterialResponse, error) {
	material, err := inventory.NewRawMaterial(req.Name, inventory.MaterialType(req.Type), inventory.MaterialUnit(req.Unit))
	if err != nil {
		return nil, err
	}

	if req.MinStockLevel != nil {
		if req.MinStockLevel.IsNegative() {
			return nil, shared.NewDomainError("INVALID_MIN_STOCK", "Minimum stock level cannot be negative")
		}
		material.MinStockLevel = *req.MinStockLevel
	}

	if err := s.materialRepo.Save(ctx, material); err != nil {
		return nil, err
	}

	response := ToMaterialResponse(material)
	return &response, nil
}

// GetMaterial retrieves a raw material by ID
func (s *WarehouseService) GetMaterial(ctx context.Context, materialID uuid.UUID) (*MaterialResponse, error) {
	material, err := s.materialRepo.FindByID(ctx, materialID)
	if err != nil {
		return nil, err
	}

	response := ToMaterialResponse(material)
	return &response, nil
}

// ListMaterials retrieves raw materials with filtering and pagination
func (s *WarehouseService) ListMaterials(ctx context.Context, filter MaterialListFilter) (*shared.Paginated[MaterialResponse], error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  "name",
		OrderDir: "asc",
		Search:   filter.Search,
		Filters:  make(map[string]any),
	}

	var (
		materials []inventory.RawMaterial
		err       error
	)
	if filter.Type != "" {
		domainFilter.Filters["type"] = filter.Type
		materials, err = s.materialRepo.FindByType(ctx, inventory.MaterialType(filter.Type), domainFilter)
	} else {
		materials, err = s.materialRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, err
	}

	total, err := s.materialRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToMaterialResponses(materials), total, filter.Page, filter.PageSize)
	return &result, nil
}

// UpdateMaterial updates a raw material's descriptive fields. Quantity
// is never edited here; it only changes through movements.
func (s *WarehouseService) UpdateMaterial(ctx context.Context, materialID uuid.UUID, req UpdateMaterialRequest) (*MaterialResponse, error) {
	material, err := s.materialRepo.FindByID(ctx, materialID)
	if err != nil {
		return nil, err
	}

	name := material.Name
	if req.Name != nil {
		name = *req.Name
	}
	materialType := material.Type
	if req.Type != nil {
		materialType = inventory.MaterialType(*req.Type)
	}
	unit := material.Unit
	if req.Unit != nil {
		unit = inventory.MaterialUnit(*req.Unit)
	}
	minStock := material.MinStockLevel
	if req.MinStockLevel != nil {
		minStock = *req.MinStockLevel
	}

	if err := material.Update(name, materialType, unit, minStock); err != nil {
		return nil, err
	}

	if err := s.materialRepo.SaveWithLock(ctx, material); err != nil {
		return nil, err
	}

	response := ToMaterialResponse(material)
	return &response, nil
}

// DeleteMaterial removes a raw material. Materials still holding stock
// cannot be deleted.
func (s *WarehouseService) DeleteMaterial(ctx context.Context, materialID uuid.UUID) error {
	material, err := s.materialRepo.FindByID(ctx, materialID)
	if err != nil {
		return err
	}

	if material.Quantity.IsPositive() {
		return shared.NewDomainError("MATERIAL_HAS_STOCK", "Cannot delete a material that still holds stock")
	}

	return s.materialRepo.Delete(ctx, materialID)
}

// AddMovement records an inbound or outbound stock movement and applies
// it to the material's quantity. performedBy is the authenticated user.
func (s *WarehouseService) AddMovement(ctx context.Context, req AddMovementRequest, performedBy uuid.UUID) (*MovementResponse, error) {
	var response MovementResponse

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		material, err := repos.MaterialRepo().FindByID(ctx, req.MaterialID)
		if err != nil {
			return err
		}

		var movement *inventory.WarehouseMovement
		switch inventory.MovementType(req.Type) {
		case inventory.MovementTypeIn:
			movement, err = inventory.NewInboundMovement(material.ID, req.Quantity, req.CostPerUnit, req.Notes, performedBy)
			if err != nil {
				return err
			}
			cost := decimal.Zero
			if req.CostPerUnit != nil {
				cost = *req.CostPerUnit
			}
			if err := material.Receive(req.Quantity, cost); err != nil {
				return err
			}
		case inventory.MovementTypeOut:
			movement, err = inventory.NewOutboundMovement(material.ID, req.Quantity, req.Notes, performedBy)
			if err != nil {
				return err
			}
			if err := material.Consume(req.Quantity); err != nil {
				return err
			}
		default:
			return shared.NewDomainError("INVALID_TYPE", "Movement type must be 'in' or 'out'")
		}

		if err := repos.MaterialRepo().SaveWithLock(ctx, material); err != nil {
			return err
		}
		if err := repos.MovementRepo().Save(ctx, movement); err != nil {
			return err
		}

		response = ToMovementResponse(movement)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &response, nil
}

// ListMovements retrieves movements with filtering and pagination
func (s *WarehouseService) ListMovements(ctx context.Context, filter MovementListFilter) (*shared.Paginated[MovementResponse], error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  "occurred_at",
		OrderDir: "desc",
		Filters:  make(map[string]any),
	}

	var (
		movements []inventory.WarehouseMovement
		err       error
	)
	if filter.MaterialID != nil {
		domainFilter.Filters["material_id"] = *filter.MaterialID
		movements, err = s.movementRepo.FindByMaterial(ctx, *filter.MaterialID, domainFilter)
	} else {
		movements, err = s.movementRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, err
	}

	total, err := s.movementRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToMovementResponses(movements), total, filter.Page, filter.PageSize)
	return &result, nil
}

// LowStockItems returns materials at or below their minimum stock level
func (s *WarehouseService) LowStockItems(ctx context.Context) ([]MaterialResponse, error) {
	materials, err := s.materialRepo.FindLowStock(ctx)
	if err != nil {
		return nil, err
	}
	return ToMaterialResponses(materials), nil
}
