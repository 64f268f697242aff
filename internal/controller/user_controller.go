package controller

import (
	"github.com/alimikegami/apparel-store/internal/dto"
	"github.com/alimikegami/apparel-store/internal/service"
	"github.com/alimikegami/apparel-store/pkg/errs"
	"github.com/alimikegami/apparel-store/pkg/response"
	"github.com/alimikegami/apparel-store/pkg/utils"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

type UserController struct {
	service service.UserService
}

// GET /:id only sees single segments that no static route claimed.
func CreateUserController(g *echo.Group, service service.UserService, isLoggedIn echo.MiddlewareFunc) {
	c := UserController{
		service: service,
	}

	g.POST("/signup", c.Signup)
	g.POST("/signin", c.Signin)
	g.GET("/allUsers", c.GetUsers)
	g.PUT("/password/:id", c.UpdatePassword, isLoggedIn)
	g.GET("/:id", c.GetUserByID)
}

func (c *UserController) Signup(e echo.Context) error {
	payload := dto.SignupRequest{}
	if err := e.Bind(&payload); err != nil {
		log.Ctx(e.Request().Context()).Warn().Err(err).Str("component", "Signup").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	if err := e.Validate(&payload); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	resp, err := c.service.Signup(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteCreatedResponse(e, "User created", resp)
}

func (c *UserController) Signin(e echo.Context) error {
	payload := dto.SigninRequest{}
	if err := e.Bind(&payload); err != nil {
		log.Ctx(e.Request().Context()).Warn().Err(err).Str("component", "Signin").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	if err := e.Validate(&payload); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	resp, err := c.service.Signin(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "Signed in", resp)
}

func (c *UserController) GetUsers(e echo.Context) error {
	resp, err := c.service.GetUsers(e.Request().Context())
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *UserController) GetUserByID(e echo.Context) error {
	resp, err := c.service.GetUserByID(e.Request().Context(), e.Param("id"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *UserController) UpdatePassword(e echo.Context) error {
	requesterID, _, _ := utils.ExtractTokenUser(e)
	if requesterID == "" {
		return response.WriteErrorResponse(e, errs.ErrNotLoggedIn, nil)
	}

	payload := dto.UpdatePasswordRequest{}
	if err := e.Bind(&payload); err != nil {
		log.Ctx(e.Request().Context()).Warn().Err(err).Str("component", "UpdatePassword").Msg("")
		return response.WriteErrorResponse(e, errs.ErrClient, nil)
	}

	if err := e.Validate(&payload); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	err := c.service.UpdatePassword(e.Request().Context(), e.Param("id"), requesterID, payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "Password updated", nil)
}
