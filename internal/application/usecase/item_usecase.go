package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-stock-api/internal/application/dto"
	"github.com/jhoicas/inventory-stock-api/internal/domain"
	"github.com/jhoicas/inventory-stock-api/internal/domain/entity"
	"github.com/jhoicas/inventory-stock-api/internal/domain/repository"
)

// Mensajes visibles del catálogo de artículos.
const (
	MsgItemNotFound      = "Item not found"
	MsgItemAlreadyExists = "Item already exists"
	MsgCategoryInvalid   = "Category is invalid"
)

// ItemUseCase casos de uso CRUD para artículos. El stock solo cambia vía el pipeline de inventario.
type ItemUseCase struct {
	repo repository.ItemRepository
	tx   TxRunner
	now  func() time.Time
	log  zerolog.Logger
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(repo repository.ItemRepository, tx TxRunner, log zerolog.Logger) *ItemUseCase {
	return &ItemUseCase{
		repo: repo,
		tx:   tx,
		now:  time.Now,
		log:  log.With().Str("component", "item_usecase").Logger(),
	}
}

// Create valida el artículo, verifica que no exista y que la categoría sea válida, y lo inserta.
// Las verificaciones y la inserción corren en la misma transacción.
func (uc *ItemUseCase) Create(ctx context.Context, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.buildItem(in)
	if err != nil {
		return nil, err
	}
	err = uc.tx.Run(ctx, func(items repository.ItemRepository, categories repository.CategoryRepository) error {
		existing, err := items.GetByID(ctx, item.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.Errorf(domain.ErrDuplicate, MsgItemAlreadyExists)
		}
		category, err := categories.GetByID(ctx, item.CategoryID)
		if err != nil {
			return err
		}
		if category == nil {
			return domain.NewValidationError(domain.ValidationMissingField, MsgCategoryInvalid)
		}
		return items.Create(ctx, item)
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("item_id", item.ID).Msg("no se pudo crear el artículo")
		return nil, err
	}
	uc.log.Info().Str("item_id", item.ID).Str("category_id", item.CategoryID).Msg("artículo creado")
	return toItemResponse(item), nil
}

// GetByID obtiene un artículo por ID. ErrNotFound si no existe.
func (uc *ItemUseCase) GetByID(ctx context.Context, id string) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.Errorf(domain.ErrNotFound, MsgItemNotFound)
	}
	return toItemResponse(item), nil
}

// Delete elimina un artículo por ID.
func (uc *ItemUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Str("item_id", id).Msg("artículo eliminado")
	return nil
}

// ListByCategory lista los artículos de una categoría. Los especiales se excluyen salvo includeSpecial.
// Una categoría inexistente devuelve una respuesta vacía.
func (uc *ItemUseCase) ListByCategory(ctx context.Context, categoryID string, includeSpecial bool) (*dto.CategoryItemsResponse, error) {
	res, err := uc.repo.ListByCategory(ctx, categoryID, includeSpecial)
	if err != nil {
		return nil, err
	}
	out := &dto.CategoryItemsResponse{Items: []dto.ItemResponse{}}
	if res == nil {
		return out, nil
	}
	out.CategoryName = res.CategoryName
	out.CategoryDepartment = res.CategoryDepartment
	for _, it := range res.Items {
		out.Items = append(out.Items, *toItemResponse(it))
	}
	return out, nil
}

func (uc *ItemUseCase) buildItem(in dto.CreateItemRequest) (*entity.Item, error) {
	in.ID = strings.TrimSpace(in.ID)
	if in.ID == "" || in.ItemName == "" || in.CategoryID == "" || in.ItemPrice == nil || in.StockDetails == nil {
		return nil, domain.NewValidationError(domain.ValidationMissingField,
			"Item must have '_id', 'itemName', 'categoryId', 'itemPrice', and 'stockDetails'")
	}
	price := in.ItemPrice
	if price.BasePrice == nil || price.SellingPrice == nil {
		return nil, domain.NewValidationError(domain.ValidationMissingField,
			"itemPrice must contain 'basePrice' and 'sellingPrice' for item: %s", in.ID)
	}
	if !price.BasePrice.GreaterThan(decimal.Zero) {
		return nil, domain.NewValidationError(domain.ValidationBadType, "basePrice must be greater than zero for item: %s", in.ID)
	}
	if !price.SellingPrice.GreaterThan(decimal.Zero) {
		return nil, domain.NewValidationError(domain.ValidationBadType, "sellingPrice must be greater than zero for item: %s", in.ID)
	}
	stock := in.StockDetails
	if stock.AvailableStock == nil || stock.UnitOfMeasure == nil {
		return nil, domain.NewValidationError(domain.ValidationMissingField,
			"stockDetails must contain 'availableStock' and 'unitOfMeasure' for item: %s", in.ID)
	}
	if *stock.AvailableStock < 0 {
		return nil, domain.NewValidationError(domain.ValidationBadType, "availableStock cannot be negative for item: %s", in.ID)
	}

	reviews := make([]entity.Review, 0, len(in.Review))
	for _, r := range in.Review {
		reviews = append(reviews, entity.Review{Rating: r.Rating, Comment: r.Comment})
	}
	return &entity.Item{
		ID:         in.ID,
		Name:       in.ItemName,
		CategoryID: in.CategoryID,
		Price: entity.ItemPrice{
			BasePrice:    *price.BasePrice,
			SellingPrice: *price.SellingPrice,
		},
		Stock: entity.StockDetails{
			AvailableStock: *stock.AvailableStock,
			UnitOfMeasure:  *stock.UnitOfMeasure,
		},
		SpecialProduct: in.SpecialProduct,
		Reviews:        reviews,
		LastUpdateDate: uc.now(),
	}, nil
}

func toItemResponse(it *entity.Item) *dto.ItemResponse {
	if it == nil {
		return nil
	}
	reviews := make([]dto.ReviewDTO, 0, len(it.Reviews))
	for _, r := range it.Reviews {
		reviews = append(reviews, dto.ReviewDTO{Rating: r.Rating, Comment: r.Comment})
	}
	return &dto.ItemResponse{
		ID:         it.ID,
		ItemName:   it.Name,
		CategoryID: it.CategoryID,
		ItemPrice: dto.PriceResponse{
			BasePrice:    it.Price.BasePrice,
			SellingPrice: it.Price.SellingPrice,
		},
		StockDetails: dto.StockDetailsResponse{
			AvailableStock: it.Stock.AvailableStock,
			SoldOut:        it.Stock.SoldOut,
			Damaged:        it.Stock.Damaged,
			UnitOfMeasure:  it.Stock.UnitOfMeasure,
		},
		SpecialProduct: it.SpecialProduct,
		Review:         reviews,
		LastUpdateDate: it.LastUpdateDate,
	}
}
