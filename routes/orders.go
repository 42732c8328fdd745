package routes

import (
	"errors"

	"hydrolink/db"
	"hydrolink/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type orderItemRequest struct {
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  int  `json:"quantity" validate:"required,min=1"`
}

type orderRequest struct {
	Items           []orderItemRequest `json:"items" validate:"required,min=1,dive"`
	ShippingAddress string             `json:"shipping_address" validate:"required"`
	BillingAddress  string             `json:"billing_address"`
	Phone           string             `json:"phone" validate:"required"`
	Notes           string             `json:"notes"`
}

type orderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed shipped delivered cancelled"`
}

func orderQuery() *gorm.DB {
	return db.DB.Model(&models.Order{}).
		Preload("OrderItems").
		Preload("OrderItems.Product")
}

// listOrders - GET /api/orders. Admins see every order with requester info,
// clients only their own.
func listOrders(c *fiber.Ctx) error {
	user := currentUser(c)

	query := orderQuery().Order("created_at desc")
	if user.Role == models.RoleAdmin {
		query = query.Preload("User")
	} else {
		query = query.Where("user_id = ?", user.ID)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return respondError(c, fiber.StatusInternalServerError, "Failed to get orders")
	}

	return respondData(c, fiber.StatusOK, "", orders)
}

// createOrder - POST /api/orders. The order row and its items are written in
// one transaction; item prices snapshot the product price at submission time.
func createOrder(c *fiber.Ctx) error {
	user := currentUser(c)

	req := new(orderRequest)
	if err := c.BodyParser(req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		return respondError(c, fiber.StatusInternalServerError, "Failed to create order")
	}

	var totalAmount float64
	items := make([]models.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		var product models.Product
		if err := tx.First(&product, item.ProductID).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fieldError(c, "items", "The selected product_id is invalid.")
			}
			return respondError(c, fiber.StatusInternalServerError, "Failed to create order")
		}

		totalAmount += product.Price * float64(item.Quantity)
		items = append(items, models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     product.Price,
		})
	}

	order := models.Order{
		UserID:          user.ID,
		Status:          models.OrderPending,
		TotalAmount:     totalAmount,
		ShippingAddress: req.ShippingAddress,
		BillingAddress:  req.BillingAddress,
		Phone:           req.Phone,
		Notes:           req.Notes,
	}
	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		return respondError(c, fiber.StatusInternalServerError, "Failed to create order")
	}

	for i := range items {
		items[i].OrderID = order.ID
	}
	if err := tx.Create(&items).Error; err != nil {
		tx.Rollback()
		return respondError(c, fiber.StatusInternalServerError, "Failed to create order")
	}

	if err := tx.Commit().Error; err != nil {
		return respondError(c, fiber.StatusInternalServerError, "Failed to create order")
	}

	orderQuery().First(&order, order.ID)
	publishOrderEvent("order.created", &order)

	return respondData(c, fiber.StatusCreated, "Order created successfully", order)
}

// getOrder - GET /api/orders/:id. Not-found for orders the caller does not
// own, so existence is not leaked to other clients.
func getOrder(c *fiber.Ctx) error {
	user := currentUser(c)
	id := c.Params("id")

	query := orderQuery().Preload("User")
	if user.Role != models.RoleAdmin {
		query = query.Where("user_id = ?", user.ID)
	}

	var order models.Order
	if err := query.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respondError(c, fiber.StatusNotFound, "Order not found")
		}
		return respondError(c, fiber.StatusInternalServerError, "Failed to get order")
	}

	return respondData(c, fiber.StatusOK, "", order)
}

// updateOrder - PUT /api/orders/:id (admin only, status transitions)
func updateOrder(c *fiber.Ctx) error {
	user := currentUser(c)
	if user.Role != models.RoleAdmin {
		return respondError(c, fiber.StatusForbidden, "Access denied. Insufficient permissions.")
	}

	req := new(orderStatusRequest)
	if err := c.BodyParser(req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	id := c.Params("id")
	var order models.Order
	if err := db.DB.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respondError(c, fiber.StatusNotFound, "Order not found")
		}
		return respondError(c, fiber.StatusInternalServerError, "Failed to find order")
	}

	if err := db.DB.Model(&order).Update("status", req.Status).Error; err != nil {
		return respondError(c, fiber.StatusInternalServerError, "Failed to update order")
	}

	orderQuery().Preload("User").First(&order, order.ID)
	publishOrderEvent("order.updated", &order)

	return respondData(c, fiber.StatusOK, "Order updated successfully", order)
}

// deleteOrder - DELETE /api/orders/:id (admin only, pending orders only)
func deleteOrder(c *fiber.Ctx) error {
	user := currentUser(c)
	if user.Role != models.RoleAdmin {
		return respondError(c, fiber.StatusForbidden, "Access denied. Insufficient permissions.")
	}

	id := c.Params("id")
	var order models.Order
	if err := db.DB.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respondError(c, fiber.StatusNotFound, "Order not found")
		}
		return respondError(c, fiber.StatusInternalServerError, "Failed to find order")
	}

	if order.Status != models.OrderPending {
		return respondError(c, fiber.StatusBadRequest, "Cannot delete non-pending order")
	}

	tx := db.DB.Begin()
	if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
		tx.Rollback()
		return respondError(c, fiber.StatusInternalServerError, "Failed to delete order")
	}
	if err := tx.Delete(&order).Error; err != nil {
		tx.Rollback()
		return respondError(c, fiber.StatusInternalServerError, "Failed to delete order")
	}
	if err := tx.Commit().Error; err != nil {
		return respondError(c, fiber.StatusInternalServerError, "Failed to delete order")
	}

	return respondMessage(c, "Order deleted successfully")
}
