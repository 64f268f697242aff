package controller

import (
	"github.com/alimikegami/apparel-store/internal/dto"
	"github.com/alimikegami/apparel-store/internal/service"
	"github.com/alimikegami/apparel-store/pkg/response"
	"github.com/labstack/echo/v4"
)

type CategoryController struct {
	service service.CategoryService
}

func CreateCategoryController(g *echo.Group, service service.CategoryService) {
	c := CategoryController{
		service: service,
	}

	g.GET("/categories", c.GetCategories)
	g.GET("/categories/:id", c.GetCategoryByID)
	g.POST("/categories", c.AddCategory)
	g.PATCH("/categories/:id", c.UpdateCategory)
	g.DELETE("/categories/:id", c.DeleteCategory)
}

func (c *CategoryController) GetCategories(e echo.Context) error {
	resp, err := c.service.GetCategories(e.Request().Context())
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *CategoryController) GetCategoryByID(e echo.Context) error {
	resp, err := c.service.GetCategoryByID(e.Request().Context(), e.Param("id"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *CategoryController) AddCategory(e echo.Context) error {
	payload, err := readCategoryForm(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	resp, err := c.service.AddCategory(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteCreatedResponse(e, "Category created", resp)
}

func (c *CategoryController) UpdateCategory(e echo.Context) error {
	payload, err := readCategoryForm(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	resp, err := c.service.UpdateCategory(e.Request().Context(), e.Param("id"), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "Category updated", resp)
}

func (c *CategoryController) DeleteCategory(e echo.Context) error {
	err := c.service.DeleteCategory(e.Request().Context(), e.Param("id"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "Category deleted", nil)
}

// readCategoryForm takes the first file sent as "image".
func readCategoryForm(e echo.Context) (dto.CategoryForm, error) {
	form, err := readForm(e)
	if err != nil {
		return dto.CategoryForm{}, err
	}

	payload := dto.CategoryForm{
		Name:        form.str("name"),
		Description: form.str("description"),
	}
	if images := form.filesNamed("image"); len(images) > 0 {
		payload.Image = &images[0]
	}

	return payload, nil
}
