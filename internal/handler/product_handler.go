package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"razzrel/internal/service"
)

// ProductHandler serves the package catalog.
type ProductHandler struct {
	svc service.ProductService
}

// NewProductHandler creates a new product handler.
func NewProductHandler(svc service.ProductService) *ProductHandler {
	return &ProductHandler{svc: svc}
}

// ProductRequest is the body of create and update calls.
type ProductRequest struct {
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" swaggertype:"string"`
	Category    string          `json:"category"`
	ImagePath   string          `json:"imagePath"`
}

func (r ProductRequest) input() service.ProductInput {
	return service.ProductInput{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Category:    r.Category,
		ImagePath:   r.ImagePath,
	}
}

// ListProducts godoc
// @Summary List catalog packages
// @Tags products
// @Produce json
// @Success 200 {object} SuccessResponse
// @Router /api/products [get]
func (h *ProductHandler) ListProducts(c echo.Context) error {
	products, err := h.svc.List(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Products retrieved", echo.Map{"products": products})
}

// GetProduct godoc
// @Summary Get a catalog package
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/products/{id} [get]
func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	product, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Product retrieved", echo.Map{"product": product})
}

// CreateProduct godoc
// @Summary Add a catalog package
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ProductRequest true "Package"
// @Success 201 {object} SuccessResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /api/products [post]
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req ProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	product, err := h.svc.Create(c.Request().Context(), req.input())
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "Product created", echo.Map{"product": product})
}

// UpdateProduct godoc
// @Summary Update a catalog package
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Param request body ProductRequest true "Package"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/products/{id} [put]
func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req ProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	product, err := h.svc.Update(c.Request().Context(), id, req.input())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Product updated", echo.Map{"product": product})
}

// DeleteProduct godoc
// @Summary Remove a catalog package
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/products/{id} [delete]
func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Product deleted", nil)
}
