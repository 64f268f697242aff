package controller

import (
	"errors"

	"github.com/alimikegami/apparel-store/internal/dto"
	"github.com/alimikegami/apparel-store/internal/service"
	"github.com/alimikegami/apparel-store/pkg/response"
	"github.com/labstack/echo/v4"
)

type ProductController struct {
	service service.ProductService
}

func CreateProductController(g *echo.Group, service service.ProductService) {
	c := ProductController{
		service: service,
	}

	g.GET("/products", c.GetProducts)
	g.GET("/products/by-category/:slug", c.GetProductsByCategory)
	g.GET("/products/:id", c.GetProductByID)
	g.POST("/products", c.AddProduct)
	g.PATCH("/products/:id", c.UpdateProduct)
	g.DELETE("/products/:id", c.DeleteProduct)
}

func (c *ProductController) GetProducts(e echo.Context) error {
	resp, err := c.service.GetProducts(e.Request().Context())
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *ProductController) GetProductByID(e echo.Context) error {
	resp, err := c.service.GetProductByID(e.Request().Context(), e.Param("id"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *ProductController) GetProductsByCategory(e echo.Context) error {
	resp, err := c.service.GetProductsByCategorySlug(e.Request().Context(), e.Param("slug"))
	if err != nil {
		var slugErr *service.SlugNotFoundError
		if errors.As(err, &slugErr) {
			return response.WriteErrorResponse(e, err, map[string]interface{}{
				"availableCategories": slugErr.Available,
			})
		}
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *ProductController) AddProduct(e echo.Context) error {
	payload, err := readProductForm(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	resp, err := c.service.AddProduct(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteCreatedResponse(e, "Product created", resp)
}

func (c *ProductController) UpdateProduct(e echo.Context) error {
	payload, err := readProductForm(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	resp, err := c.service.UpdateProduct(e.Request().Context(), e.Param("id"), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "Product updated", resp)
}

func (c *ProductController) DeleteProduct(e echo.Context) error {
	err := c.service.DeleteProduct(e.Request().Context(), e.Param("id"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "Product deleted", nil)
}

func readProductForm(e echo.Context) (dto.ProductForm, error) {
	form, err := readForm(e)
	if err != nil {
		return dto.ProductForm{}, err
	}

	price, err := form.number("price")
	if err != nil {
		return dto.ProductForm{}, err
	}

	return dto.ProductForm{
		Name:        form.str("name"),
		Description: form.str("description"),
		Price:       price,
		Category:    form.str("category"),
		Feature:     form.boolean("feature"),
		Variants:    form.str("variants"),
		Files:       form.files,
	}, nil
}
