package controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/aymanhs/souq/app/models"
	"github.com/aymanhs/souq/app/routes"
	"github.com/aymanhs/souq/pkg/auth"
	"github.com/aymanhs/souq/pkg/router"
)

type envelope struct {
	Status string                 `json:"status"`
	Data   map[string]interface{} `json:"data"`
}

func setupAPI(t *testing.T) (*gorm.DB, http.Handler) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Product{}, &models.ProductImage{},
		&models.ProductBuyer{}, &models.Order{},
	))

	r := router.New()
	routes.RegisterAPI(r, db)
	return db, r.Handler()
}

func doJSON(t *testing.T, h http.Handler, method, path, token, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env),
		"body: %s", rec.Body.String())
	return rec, env
}

func TestBuyEndpointEnvelope(t *testing.T) {
	db, h := setupAPI(t)

	seller := &models.User{Name: "seller", Email: "seller@example.com", Password: "x", Role: models.RoleUser}
	buyer := &models.User{Name: "buyer", Email: "buyer@example.com", Password: "x", Role: models.RoleUser}
	require.NoError(t, db.Create(seller).Error)
	require.NoError(t, db.Create(buyer).Error)

	product := &models.Product{
		Title: "Walnut desk", Description: "Solid walnut standing desk",
		Price: 100, Quantity: 10, SellerID: seller.ID,
	}
	require.NoError(t, db.Create(product).Error)

	token, err := auth.GenerateToken(buyer.ID, buyer.Role)
	require.NoError(t, err)

	// Success: 200 with the "success" discriminator.
	rec, env := doJSON(t, h, http.MethodPost, "/api/products/buy/1", token,
		`{"quantity":2,"totalPrice":200}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "success", env.Status)
	assert.Contains(t, env.Data, "purchase")

	// Price mismatch: 400 with the "fail" discriminator.
	rec, env = doJSON(t, h, http.MethodPost, "/api/products/buy/1", token,
		`{"quantity":2,"totalPrice":150}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "fail", env.Status)
	assert.Equal(t, "Incorrect price provided", env.Data["error"])

	// Unknown product: 404 fail.
	rec, env = doJSON(t, h, http.MethodPost, "/api/products/buy/999", token,
		`{"quantity":1,"totalPrice":100}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "fail", env.Status)

	// No credential: 401 fail before the handler runs.
	rec, env = doJSON(t, h, http.MethodPost, "/api/products/buy/1", "",
		`{"quantity":1,"totalPrice":100}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "fail", env.Status)
}

func TestBuyEndpointSelfPurchase(t *testing.T) {
	db, h := setupAPI(t)

	seller := &models.User{Name: "seller", Email: "seller@example.com", Password: "x", Role: models.RoleUser}
	require.NoError(t, db.Create(seller).Error)
	require.NoError(t, db.Create(&models.Product{
		Title: "Walnut desk", Description: "Solid walnut standing desk",
		Price: 100, Quantity: 10, SellerID: seller.ID,
	}).Error)

	token, err := auth.GenerateToken(seller.ID, seller.Role)
	require.NoError(t, err)

	rec, env := doJSON(t, h, http.MethodPost, "/api/products/buy/1", token,
		`{"quantity":1,"totalPrice":100}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "fail", env.Status)
	assert.Equal(t, "You cannot buy your own product", env.Data["error"])
}

func TestOrderRoutesRequireAdmin(t *testing.T) {
	db, h := setupAPI(t)

	user := &models.User{Name: "user", Email: "user@example.com", Password: "x", Role: models.RoleUser}
	admin := &models.User{Name: "admin", Email: "admin@example.com", Password: "x", Role: models.RoleAdmin}
	require.NoError(t, db.Create(user).Error)
	require.NoError(t, db.Create(admin).Error)

	userToken, err := auth.GenerateToken(user.ID, user.Role)
	require.NoError(t, err)
	adminToken, err := auth.GenerateToken(admin.ID, admin.Role)
	require.NoError(t, err)

	rec, env := doJSON(t, h, http.MethodGet, "/api/orders", userToken, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "fail", env.Status)

	rec, env = doJSON(t, h, http.MethodGet, "/api/orders", adminToken, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "success", env.Status)
}

func TestProductListPublic(t *testing.T) {
	db, h := setupAPI(t)

	require.NoError(t, db.Create(&models.Product{
		Title: "Walnut desk", Description: "Solid walnut standing desk",
		Price: 100, Quantity: 10, SellerID: 1,
	}).Error)

	rec, env := doJSON(t, h, http.MethodGet, "/api/products", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "success", env.Status)
	assert.EqualValues(t, 1, env.Data["total"])
}
