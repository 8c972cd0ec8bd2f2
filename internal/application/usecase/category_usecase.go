package usecase

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jhoicas/inventory-stock-api/internal/application/dto"
	"github.com/jhoicas/inventory-stock-api/internal/domain"
	"github.com/jhoicas/inventory-stock-api/internal/domain/entity"
	"github.com/jhoicas/inventory-stock-api/internal/domain/repository"
)

// MsgCategoryAlreadyExists mensaje de categoría duplicada.
const MsgCategoryAlreadyExists = "Category already exists"

// CategoryUseCase alta y baja de categorías.
type CategoryUseCase struct {
	repo repository.CategoryRepository
	log  zerolog.Logger
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository, log zerolog.Logger) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, log: log.With().Str("component", "category_usecase").Logger()}
}

// Create crea una categoría; ErrDuplicate si el ID ya existe.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	in.ID = strings.TrimSpace(in.ID)
	if in.ID == "" || strings.TrimSpace(in.CategoryName) == "" {
		return nil, domain.NewValidationError(domain.ValidationMissingField, "Category must have '_id' and 'categoryName'")
	}
	existing, err := uc.repo.GetByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Errorf(domain.ErrDuplicate, MsgCategoryAlreadyExists)
	}
	c := &entity.Category{ID: in.ID, Name: in.CategoryName, Department: in.CategoryDep, Tax: in.CategoryTax}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	uc.log.Info().Str("category_id", c.ID).Msg("categoría creada")
	return &dto.CategoryResponse{ID: c.ID, CategoryName: c.Name, CategoryDep: c.Department, CategoryTax: c.Tax}, nil
}

// Delete elimina una categoría. ErrNotFound si no existe.
func (uc *CategoryUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Str("category_id", id).Msg("categoría eliminada")
	return nil
}
