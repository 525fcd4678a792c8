package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/pos-ledger/internal/domain/entity"
	"github.com/sangkips/pos-ledger/internal/domain/repository"
	"github.com/sangkips/pos-ledger/pkg/apperror"
	"github.com/sangkips/pos-ledger/pkg/money"
	"go.uber.org/zap"
)

// CatalogService owns every product mutation
type CatalogService struct {
	productRepo repository.ProductRepository
	log         *zap.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(productRepo repository.ProductRepository, log *zap.Logger) *CatalogService {
	if log == nil {
		log = zap.NewNop()
	}
	return &CatalogService{productRepo: productRepo, log: log}
}

// UsageInput is an unvalidated ingredient usage
type UsageInput struct {
	IngredientID string
	QuantityUsed float64
}

// ModifierOptionInput is an unvalidated modifier option; an empty ID is generated
type ModifierOptionInput struct {
	ID               string
	Name             string
	AdditionalCost   float64
	AdditionalPrice  float64
	IngredientUsages []UsageInput
}

// ModifierGroupInput is an unvalidated modifier group; an empty ID is generated
type ModifierGroupInput struct {
	ID      string
	Name    string
	Options []ModifierOptionInput
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	Name           string
	Category       string
	SKU            string
	BasePrice      float64
	BaseCost       float64
	Recipe         []UsageInput
	ModifierGroups []ModifierGroupInput
}

// UpdateProductInput is a patch. Recipe and ModifierGroups, when set, replace
// the stored collections wholesale.
type UpdateProductInput struct {
	Name           *string
	Category       *string
	SKU            *string
	BasePrice      *float64
	BaseCost       *float64
	Recipe         *[]UsageInput
	ModifierGroups *[]ModifierGroupInput
}

// AddProduct validates, normalizes and stores a new product
func (s *CatalogService) AddProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	product := &entity.Product{ID: uuid.New()}
	patch := &UpdateProductInput{
		Name:           &input.Name,
		Category:       &input.Category,
		SKU:            &input.SKU,
		BasePrice:      &input.BasePrice,
		BaseCost:       &input.BaseCost,
		Recipe:         &input.Recipe,
		ModifierGroups: &input.ModifierGroups,
	}
	if err := s.applyPatch(ctx, product, patch); err != nil {
		return nil, err
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	s.log.Info("product added",
		zap.String("product_id", product.ID.String()),
		zap.String("name", product.Name))
	return product, nil
}

// GetProduct returns one product
func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListProducts returns all products
func (s *CatalogService) ListProducts(ctx context.Context) ([]entity.Product, error) {
	return s.productRepo.List(ctx)
}

// UpdateProduct applies a patch, keeping the product id
func (s *CatalogService) UpdateProduct(ctx context.Context, id uuid.UUID, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.applyPatch(ctx, product, input); err != nil {
		return nil, err
	}
	product.ID = id

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// RemoveProduct deletes a product. Lines already in the current order keep their snapshot.
func (s *CatalogService) RemoveProduct(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetProduct(ctx, id); err != nil {
		return err
	}
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("product removed", zap.String("product_id", id.String()))
	return nil
}

// applyPatch validates every supplied field before assigning any of them.
func (s *CatalogService) applyPatch(ctx context.Context, product *entity.Product, input *UpdateProductInput) error {
	next := product.Clone()

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return apperror.NewInvalidInputError("name", "Product name is required")
		}
		other, err := s.productRepo.GetByName(ctx, name)
		if err != nil {
			return err
		}
		if other != nil && other.ID != product.ID {
			return apperror.NewDuplicateNameError("Product", name)
		}
		next.Name = name
	}
	if input.SKU != nil {
		sku := strings.TrimSpace(*input.SKU)
		other, err := s.productRepo.GetBySKU(ctx, sku)
		if err != nil {
			return err
		}
		if other != nil && other.ID != product.ID {
			return apperror.NewDuplicateSkuError(sku)
		}
		next.SKU = sku
	}
	if input.Category != nil {
		next.Category = strings.TrimSpace(*input.Category)
	}
	if input.BasePrice != nil {
		if err := validateMoney("base_price", *input.BasePrice); err != nil {
			return err
		}
		next.BasePrice = money.FromDecimal(*input.BasePrice)
	}
	if input.BaseCost != nil {
		if err := validateMoney("base_cost", *input.BaseCost); err != nil {
			return err
		}
		next.BaseCost = money.FromDecimal(*input.BaseCost)
	}
	if input.Recipe != nil {
		recipe, err := buildUsages("recipe", *input.Recipe)
		if err != nil {
			return err
		}
		next.Recipe = recipe
	}
	if input.ModifierGroups != nil {
		groups, err := buildModifierGroups(*input.ModifierGroups)
		if err != nil {
			return err
		}
		next.ModifierGroups = groups
	}

	*product = *next
	return nil
}

// buildUsages turns raw usages into validated ones; any bad entry rejects the whole list.
func buildUsages(field string, inputs []UsageInput) ([]entity.IngredientUsage, error) {
	usages := make([]entity.IngredientUsage, 0, len(inputs))
	for i, in := range inputs {
		entryField := fmt.Sprintf("%s[%d]", field, i)
		id, err := uuid.Parse(strings.TrimSpace(in.IngredientID))
		if err != nil {
			id = uuid.Nil
		}
		usage, err := entity.NewIngredientUsage(id, in.QuantityUsed)
		if err != nil {
			return nil, invalidRecipe(entryField, err.Error())
		}
		usages = append(usages, usage)
	}
	return usages, nil
}

func invalidRecipe(field, message string) error {
	appErr := apperror.Wrap(apperror.ErrInvalidRecipe, "Invalid recipe: "+message)
	appErr.Errors = []apperror.FieldError{{Field: field, Message: message}}
	return appErr
}

func parseOrNewID(field, raw string) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.New(), nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperror.NewInvalidInputError(field, field+" is not a valid id")
	}
	return id, nil
}

func buildModifierGroups(inputs []ModifierGroupInput) ([]entity.ModifierGroup, error) {
	groups := make([]entity.ModifierGroup, 0, len(inputs))
	// option ids must be unique across the whole product
	groupIDs := make(map[uuid.UUID]bool, len(inputs))
	optionIDs := make(map[uuid.UUID]bool)
	for gi, g := range inputs {
		gField := fmt.Sprintf("modifier_groups[%d]", gi)
		gid, err := parseOrNewID(gField+".id", g.ID)
		if err != nil {
			return nil, err
		}
		if groupIDs[gid] {
			return nil, apperror.NewInvalidInputError(gField+".id", "Modifier group id is used more than once")
		}
		groupIDs[gid] = true
		name := strings.TrimSpace(g.Name)
		if name == "" {
			return nil, apperror.NewInvalidInputError(gField+".name", "Modifier group name is required")
		}
		if len(g.Options) == 0 {
			return nil, apperror.NewInvalidInputError(gField+".options", "Modifier group needs at least one option")
		}

		group := entity.ModifierGroup{ID: gid, Name: name, Options: make([]entity.ModifierOption, 0, len(g.Options))}
		for oi, o := range g.Options {
			oField := fmt.Sprintf("%s.options[%d]", gField, oi)
			oid, err := parseOrNewID(oField+".id", o.ID)
			if err != nil {
				return nil, err
			}
			if optionIDs[oid] {
				return nil, apperror.NewInvalidInputError(oField+".id", "Modifier option id is used more than once")
			}
			optionIDs[oid] = true
			oname := strings.TrimSpace(o.Name)
			if oname == "" {
				return nil, apperror.NewInvalidInputError(oField+".name", "Modifier option name is required")
			}
			if err := validateMoney(oField+".additional_cost", o.AdditionalCost); err != nil {
				return nil, err
			}
			if err := validateMoney(oField+".additional_price", o.AdditionalPrice); err != nil {
				return nil, err
			}
			usages, err := buildUsages(oField+".ingredient_usages", o.IngredientUsages)
			if err != nil {
				return nil, err
			}
			group.Options = append(group.Options, entity.ModifierOption{
				ID:               oid,
				Name:             oname,
				AdditionalCost:   money.FromDecimal(o.AdditionalCost),
				AdditionalPrice:  money.FromDecimal(o.AdditionalPrice),
				IngredientUsages: usages,
			})
		}
		groups = append(groups, group)
	}
	return groups, nil
}
