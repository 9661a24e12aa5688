package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/aymanhs/souq/app/models"
)

// newTestDB opens an in-memory sqlite database limited to a single
// connection, so concurrent transactions in tests serialize exactly like
// row-locked transactions on a server database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.ProductImage{},
		&models.ProductBuyer{},
		&models.Order{},
	))

	return db
}

func seedUser(t *testing.T, db *gorm.DB, name, email string) *models.User {
	t.Helper()

	user := &models.User{Name: name, Email: email, Password: "x", Role: models.RoleUser}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedProduct(t *testing.T, db *gorm.DB, sellerID uint, price int64, quantity int) *models.Product {
	t.Helper()

	product := &models.Product{
		Title:       "Walnut desk",
		Description: "Solid walnut standing desk",
		Price:       price,
		Quantity:    quantity,
		SellerID:    sellerID,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}
