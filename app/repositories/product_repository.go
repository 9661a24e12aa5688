package repositories

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/aymanhs/souq/app/models"
	"github.com/aymanhs/souq/pkg/metrics"
)

// ProductFilter narrows and orders a product listing.
type ProductFilter struct {
	Search   string // substring match on title
	PriceMin int64  // minor units, 0 = unbounded
	PriceMax int64  // minor units, 0 = unbounded
	SellerID uint   // 0 = any seller
	SortBy   string // "price" | "title" | "created_at"
	Order    string // "asc" | "desc"
	Page     int
	Limit    int
}

// ProductRepository handles database operations for Product.
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// WithTx returns a repository bound to the given transaction.
func (r *ProductRepository) WithTx(tx *gorm.DB) *ProductRepository {
	return &ProductRepository{db: tx}
}

// FindByID loads a product with its images.
func (r *ProductRepository) FindByID(id uint) (*models.Product, error) {
	defer metrics.ObserveDBQuery("products.find_by_id", time.Now())

	var product models.Product
	if err := r.db.Preload("Images").First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindByIDWithBuyers loads a product with images and purchase rows.
func (r *ProductRepository) FindByIDWithBuyers(id uint) (*models.Product, error) {
	var product models.Product
	err := r.db.Preload("Images").Preload("Buyers").First(&product, id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// List returns products matching the filter plus the total match count.
func (r *ProductRepository) List(f ProductFilter) ([]models.Product, int64, error) {
	defer metrics.ObserveDBQuery("products.list", time.Now())

	q := r.db.Model(&models.Product{})

	if f.Search != "" {
		q = q.Where("title LIKE ?", "%"+f.Search+"%")
	}
	if f.PriceMin > 0 {
		q = q.Where("price >= ?", f.PriceMin)
	}
	if f.PriceMax > 0 {
		q = q.Where("price <= ?", f.PriceMax)
	}
	if f.SellerID > 0 {
		q = q.Where("seller_id = ?", f.SellerID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q = q.Order(orderClause(f.SortBy, f.Order))

	page, limit := f.Page, f.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	q = q.Offset((page - 1) * limit).Limit(limit)

	var products []models.Product
	if err := q.Preload("Images").Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// orderClause whitelists sortable columns so filter input never reaches
// the SQL string raw.
func orderClause(sortBy, order string) string {
	col := "created_at"
	switch sortBy {
	case "price":
		col = "price"
	case "title":
		col = "title"
	}

	dir := "desc"
	if strings.EqualFold(order, "asc") {
		dir = "asc"
	}
	return col + " " + dir
}

// Create persists a product and its image rows.
func (r *ProductRepository) Create(product *models.Product) error {
	defer metrics.ObserveDBQuery("products.create", time.Now())
	return r.db.Create(product).Error
}

// Update persists changes to an existing product.
func (r *ProductRepository) Update(product *models.Product) error {
	defer metrics.ObserveDBQuery("products.update", time.Now())
	return r.db.Save(product).Error
}

// Delete removes a product and its image rows. Orders referencing the
// product are kept; they carry their own price snapshot.
func (r *ProductRepository) Delete(id uint) error {
	defer metrics.ObserveDBQuery("products.delete", time.Now())

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductImage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Product{}, id).Error
	})
}

// DecrementQuantity atomically subtracts qty from the product's stock,
// guarded so the row is only touched while enough stock remains:
//
//	UPDATE products SET quantity = quantity - ? WHERE id = ? AND quantity >= ?
//
// Returns false when the guard failed, i.e. a concurrent purchase drained
// the stock first. The caller decides how to surface that.
func (r *ProductRepository) DecrementQuantity(id uint, qty int) (bool, error) {
	defer metrics.ObserveDBQuery("products.decrement_quantity", time.Now())

	res := r.db.Model(&models.Product{}).
		Where("id = ? AND quantity >= ?", id, qty).
		UpdateColumn("quantity", gorm.Expr("quantity - ?", qty))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// AppendBuyer records one purchase row for product/user.
func (r *ProductRepository) AppendBuyer(productID, userID uint) error {
	return r.db.Create(&models.ProductBuyer{ProductID: productID, UserID: userID}).Error
}
