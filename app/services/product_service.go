package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/aymanhs/souq/app/models"
	"github.com/aymanhs/souq/app/repositories"
	"github.com/aymanhs/souq/pkg/apperr"
	"github.com/aymanhs/souq/pkg/cache"
)

const (
	productCacheTTL = 5 * time.Minute
	maxImages       = 4
)

func productCacheKey(id uint) string { return fmt.Sprintf("souq:products:%d", id) }

// ProductInput carries the fields a caller may set on a product.
// Price is in minor units.
type ProductInput struct {
	Title       string   `json:"title"       validate:"required,min=3,max=255"`
	Description string   `json:"description" validate:"required,min=10"`
	Price       int64    `json:"price"       validate:"required,gte=1"`
	Quantity    int      `json:"quantity"    validate:"gte=0"`
	CoverImage  string   `json:"coverImage"  validate:"nullable,max=512"`
	Images      []string `json:"images"`
}

// ProductService implements catalogue reads and admin mutations.
type ProductService struct {
	products *repositories.ProductRepository
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{products: repositories.NewProductRepository(db)}
}

// List returns products matching the filter and the total match count.
func (s *ProductService) List(f repositories.ProductFilter) ([]models.Product, int64, error) {
	products, total, err := s.products.List(f)
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}
	return products, total, nil
}

// Get returns one product, served from the Redis cache when possible.
func (s *ProductService) Get(id uint) (*models.Product, error) {
	var cached models.Product
	if cache.Get(productCacheKey(id), &cached) {
		return &cached, nil
	}

	product, err := s.products.FindByID(id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, apperr.NotFound("Product")
		}
		return nil, apperr.Internal(err)
	}

	cache.Set(productCacheKey(id), product, productCacheTTL) //nolint:errcheck
	return product, nil
}

// Create lists a new product owned by sellerID.
func (s *ProductService) Create(sellerID uint, in ProductInput) (*models.Product, error) {
	if len(in.Images) > maxImages {
		return nil, apperr.Validation(fmt.Sprintf("A product can have at most %d images", maxImages))
	}

	product := &models.Product{
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Quantity:    in.Quantity,
		CoverImage:  in.CoverImage,
		SellerID:    sellerID,
	}
	for _, url := range in.Images {
		product.Images = append(product.Images, models.ProductImage{URL: url})
	}

	if err := s.products.Create(product); err != nil {
		return nil, apperr.Internal(err)
	}
	return product, nil
}

// Update replaces the mutable fields of an existing product and drops
// its cache entry.
func (s *ProductService) Update(id uint, in ProductInput) (*models.Product, error) {
	if len(in.Images) > maxImages {
		return nil, apperr.Validation(fmt.Sprintf("A product can have at most %d images", maxImages))
	}

	product, err := s.products.FindByID(id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, apperr.NotFound("Product")
		}
		return nil, apperr.Internal(err)
	}

	product.Title = in.Title
	product.Description = in.Description
	product.Price = in.Price
	product.Quantity = in.Quantity
	if in.CoverImage != "" {
		product.CoverImage = in.CoverImage
	}

	if err := s.products.Update(product); err != nil {
		return nil, apperr.Internal(err)
	}

	cache.Del(productCacheKey(id)) //nolint:errcheck
	return product, nil
}

// Delete removes a product from the catalogue. Existing orders keep
// their price snapshot and are untouched.
func (s *ProductService) Delete(id uint) error {
	if _, err := s.products.FindByID(id); err != nil {
		if repositories.IsNotFound(err) {
			return apperr.NotFound("Product")
		}
		return apperr.Internal(err)
	}

	if err := s.products.Delete(id); err != nil {
		return apperr.Internal(err)
	}

	cache.Del(productCacheKey(id)) //nolint:errcheck
	return nil
}
