package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/ShkryumDev/pizza-delivery-api/internal/core/ports"
)

// OrderHandler handles HTTP requests for order operations.
type OrderHandler struct {
	service ports.OrderService
}

func NewOrderHandler(service ports.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

func orderID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}
	return id, nil
}

// Hello handles GET /orders/ — an authenticated ping.
//
// @Summary      Authenticated hello
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Router       /orders/ [get]
func (h *OrderHandler) Hello(c echo.Context) error {
	if _, err := ctxActor(c); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Hello World"})
}

// Place handles POST /orders/order — creates an order owned by the caller.
//
// @Summary      Place an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      placeOrderRequest  true  "Order details"
// @Success      201   {object}  orderSummaryResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /orders/order [post]
func (h *OrderHandler) Place(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req placeOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	order, err := h.service.PlaceOrder(c.Request().Context(), actor, ports.PlaceOrderInput{
		Quantity:  req.Quantity,
		PizzaSize: req.PizzaSize,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toSummaryResponse(order))
}

// ListAll handles GET /orders/orders — every order in the store. Staff only.
//
// @Summary      List all orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   orderRecordResponse
// @Failure      403  {object}  errorResponse
// @Router       /orders/orders [get]
func (h *OrderHandler) ListAll(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	orders, err := h.service.ListAllOrders(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toRecordResponses(orders))
}

// GetByID handles GET /orders/orders/:id — any order, with owner reference.
// Staff only.
//
// @Summary      Get an order by id
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Order id"
// @Success      200  {object}  orderRecordResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /orders/orders/{id} [get]
func (h *OrderHandler) GetByID(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := orderID(c)
	if err != nil {
		return err
	}

	order, err := h.service.GetOrderByID(c.Request().Context(), actor, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toRecordResponse(order))
}

// ListMine handles GET /orders/user/orders — the caller's own orders.
//
// @Summary      List the caller's orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  orderRecordResponse
// @Router       /orders/user/orders [get]
func (h *OrderHandler) ListMine(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	orders, err := h.service.ListMyOrders(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toRecordResponses(orders))
}

// GetMine handles GET /orders/user/order/:id — one of the caller's orders.
// A non-owned id yields 404, never 403, so order existence is not disclosed.
//
// @Summary      Get one of the caller's orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Order id"
// @Success      200  {object}  orderRecordResponse
// @Failure      404  {object}  errorResponse
// @Router       /orders/user/order/{id} [get]
func (h *OrderHandler) GetMine(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := orderID(c)
	if err != nil {
		return err
	}

	order, err := h.service.GetMyOrder(c.Request().Context(), actor, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toRecordResponse(order))
}

// UpdateFields handles PUT /orders/order/update/:id — quantity and size.
// Owner or staff; rejected once the order is in a terminal state.
//
// @Summary      Update an order's quantity and size
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                true  "Order id"
// @Param        body  body      placeOrderRequest  true  "New field values"
// @Success      200   {object}  orderSummaryResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /orders/order/update/{id} [put]
func (h *OrderHandler) UpdateFields(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := orderID(c)
	if err != nil {
		return err
	}

	var req placeOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	order, err := h.service.UpdateOrderFields(c.Request().Context(), actor, id, ports.UpdateOrderFieldsInput{
		Quantity:  req.Quantity,
		PizzaSize: req.PizzaSize,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSummaryResponse(order))
}

// UpdateStatus handles PATCH /orders/order/update/:id — lifecycle
// transitions. Staff only.
//
// @Summary      Update an order's status
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                  true  "Order id"
// @Param        body  body      updateStatusRequest  true  "Target status"
// @Success      200   {object}  orderSummaryResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /orders/order/update/{id} [patch]
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := orderID(c)
	if err != nil {
		return err
	}

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	order, err := h.service.UpdateOrderStatus(c.Request().Context(), actor, id, req.OrderStatus)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSummaryResponse(order))
}

// Delete handles DELETE /orders/order/delete/:id. Owner or staff.
//
// @Summary      Delete an order
// @Tags         orders
// @Security     BearerAuth
// @Param        id  path  int  true  "Order id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /orders/order/delete/{id} [delete]
func (h *OrderHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := orderID(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteOrder(c.Request().Context(), actor, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
