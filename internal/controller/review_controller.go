package controller

import (
	"github.com/alimikegami/apparel-store/internal/dto"
	"github.com/alimikegami/apparel-store/internal/service"
	"github.com/alimikegami/apparel-store/pkg/response"
	"github.com/labstack/echo/v4"
)

type ReviewController struct {
	service service.ReviewService
}

func CreateReviewController(g *echo.Group, service service.ReviewService) {
	c := ReviewController{
		service: service,
	}

	g.GET("/products/:productId/reviews", c.GetReviews)
	g.POST("/products/:productId/reviews", c.AddReview)
	g.PATCH("/products/:productId/reviews/:reviewId", c.UpdateReview)
	g.DELETE("/products/:productId/reviews/:reviewId", c.DeleteReview)
}

func (c *ReviewController) GetReviews(e echo.Context) error {
	resp, err := c.service.GetReviews(e.Request().Context(), e.Param("productId"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *ReviewController) AddReview(e echo.Context) error {
	payload, err := readReviewForm(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	resp, err := c.service.AddReview(e.Request().Context(), e.Param("productId"), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteCreatedResponse(e, "Review created", resp)
}

func (c *ReviewController) UpdateReview(e echo.Context) error {
	payload, err := readReviewForm(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	resp, err := c.service.UpdateReview(e.Request().Context(), e.Param("productId"), e.Param("reviewId"), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "Review updated", resp)
}

func (c *ReviewController) DeleteReview(e echo.Context) error {
	err := c.service.DeleteReview(e.Request().Context(), e.Param("productId"), e.Param("reviewId"))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "Review deleted", nil)
}

func readReviewForm(e echo.Context) (dto.ReviewForm, error) {
	form, err := readForm(e)
	if err != nil {
		return dto.ReviewForm{}, err
	}

	rating, err := form.integer("rating")
	if err != nil {
		return dto.ReviewForm{}, err
	}

	deleted, err := form.stringList("deletedImages")
	if err != nil {
		return dto.ReviewForm{}, err
	}

	return dto.ReviewForm{
		Name:          form.str("name"),
		ContactNumber: form.str("contactNumber"),
		Rating:        rating,
		Description:   form.str("description"),
		Images:        form.filesNamed("images"),
		DeletedImages: deleted,
	}, nil
}
