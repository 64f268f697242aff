package controller

import (
	"github.com/alimikegami/apparel-store/internal/dto"
	"github.com/alimikegami/apparel-store/internal/service"
	"github.com/alimikegami/apparel-store/pkg/errs"
	"github.com/alimikegami/apparel-store/pkg/response"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

type OrderController struct {
	service service.OrderService
}

func CreateOrderController(g *echo.Group, service service.OrderService) {
	c := OrderController{
		service: service,
	}

	g.POST("/orders", c.AddOrder)
	g.GET("/orders", c.GetOrders)
	g.POST("/orders/track", c.TrackOrders)
	g.POST("/orders/detail", c.GetOrderDetail)
	g.POST("/orders/status-check", c.CheckOrderStatus)
	g.GET("/orders/:id", c.GetOrderByID)
	g.PATCH("/orders/:id", c.UpdateOrder)
	g.DELETE("/orders/:id", c.DeleteOrder)
}

func (c *OrderController) AddOrder(e echo.Context) error {
	payload := dto.OrderRequest{}
	if err := e.Bind(&payload); err != nil {
		log.Ctx(e.Request().Context()).Warn().Err(err).Str("component", "AddOrder").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	if err := e.Validate(&payload); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	resp, err := c.service.CreateOrder(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteCreatedResponse(e, "Order created", resp)
}

func (c *OrderController) GetOrders(e echo.Context) error {
	resp, err := c.service.GetOrders(e.Request().Context())
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *OrderController) GetOrderByID(e echo.Context) error {
	resp, err := c.service.GetOrderByID(e.Request().Context(), e.Param("id"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *OrderController) UpdateOrder(e echo.Context) error {
	payload := dto.OrderUpdateRequest{}
	if err := e.Bind(&payload); err != nil {
		log.Ctx(e.Request().Context()).Warn().Err(err).Str("component", "UpdateOrder").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	if err := e.Validate(&payload); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	resp, err := c.service.UpdateOrder(e.Request().Context(), e.Param("id"), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "Order updated", resp)
}

func (c *OrderController) DeleteOrder(e echo.Context) error {
	err := c.service.DeleteOrder(e.Request().Context(), e.Param("id"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "Order deleted", nil)
}

func (c *OrderController) TrackOrders(e echo.Context) error {
	payload := dto.TrackOrderRequest{}
	if err := e.Bind(&payload); err != nil {
		log.Ctx(e.Request().Context()).Warn().Err(err).Str("component", "TrackOrders").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	resp, err := c.service.TrackOrders(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *OrderController) GetOrderDetail(e echo.Context) error {
	payload := dto.OrderDetailRequest{}
	if err := e.Bind(&payload); err != nil {
		log.Ctx(e.Request().Context()).Warn().Err(err).Str("component", "GetOrderDetail").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	resp, err := c.service.GetOrderDetail(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *OrderController) CheckOrderStatus(e echo.Context) error {
	payload := dto.StatusCheckRequest{}
	if err := e.Bind(&payload); err != nil {
		log.Ctx(e.Request().Context()).Warn().Err(err).Str("component", "CheckOrderStatus").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	resp, err := c.service.CheckOrderStatus(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}
