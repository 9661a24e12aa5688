package controllers

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/aymanhs/souq/app/services"
	"github.com/aymanhs/souq/pkg/bind"
	"github.com/aymanhs/souq/pkg/response"
)

type OrderController struct {
	service *services.OrderService
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{service: services.NewOrderService(db)}
}

// Index returns a page of orders, newest first.
func (c *OrderController) Index(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 20)

	orders, total, err := c.service.List(page, limit)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, map[string]interface{}{
		"orders": orders,
		"total":  total,
		"page":   page,
	})
}

// Show returns one order.
func (c *OrderController) Show(w http.ResponseWriter, r *http.Request) {
	order, err := c.service.Get(uintParam(r, "id"))
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, map[string]interface{}{"order": order})
}

type updateOrderInput struct {
	Status string `json:"status" validate:"required,in=PENDING,SHIPPED,DELIVERED"`
}

// Update advances an order's status one forward step.
func (c *OrderController) Update(w http.ResponseWriter, r *http.Request) {
	var in updateOrderInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Fail(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationFailed(w, errs)
		return
	}

	order, err := c.service.UpdateStatus(uintParam(r, "id"), in.Status)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, map[string]interface{}{"order": order})
}
