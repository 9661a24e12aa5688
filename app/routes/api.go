// Package routes declares the HTTP route table.
package routes

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/aymanhs/souq/app/controllers"
	"github.com/aymanhs/souq/app/models"
	"github.com/aymanhs/souq/pkg/metrics"
	"github.com/aymanhs/souq/pkg/middleware"
	"github.com/aymanhs/souq/pkg/response"
	"github.com/aymanhs/souq/pkg/router"
)

// RegisterAPI mounts every application route on r.
func RegisterAPI(r *router.Router, db *gorm.DB) {
	authController := controllers.NewAuthController(db)
	passwordController := controllers.NewPasswordController(db)
	productController := controllers.NewProductController(db)
	orderController := controllers.NewOrderController(db)

	admin := middleware.RequireRole(models.RoleAdmin)

	r.HandleFunc("/metrics", metrics.Handler())
	r.Get("/healthz", "healthz", func(w http.ResponseWriter, _ *http.Request) {
		response.Success(w, map[string]string{"status": "ok"})
	})

	api := r.Group("/api")

	users := api.Group("/users")
	users.Post("/signup", "users.signup", authController.Signup)
	users.Post("/login", "users.login", authController.Login)
	users.Post("/change-password/{id}", "users.change_password",
		authController.ChangePassword, middleware.Authenticate)

	password := api.Group("/user-password")
	password.Post("/forget", "password.forget", passwordController.Forgot)
	password.Post("/reset/{id}/{token}", "password.reset", passwordController.Reset)

	products := api.Group("/products")
	products.Get("", "products.index", productController.Index)
	products.Get("/{id}", "products.show", productController.Show)
	products.Post("/buy/{id}", "products.buy", productController.Buy, middleware.Authenticate)
	products.Post("", "products.store", productController.Store, middleware.Authenticate, admin)
	products.Put("/{id}", "products.update", productController.Update, middleware.Authenticate, admin)
	products.Delete("/{id}", "products.destroy", productController.Destroy, middleware.Authenticate, admin)

	orders := api.Group("/orders", middleware.Authenticate, admin)
	orders.Get("", "orders.index", orderController.Index)
	orders.Get("/{id}", "orders.show", orderController.Show)
	orders.Put("/{id}", "orders.update", orderController.Update)
}
