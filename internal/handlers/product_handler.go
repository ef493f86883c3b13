package handlers

import (
	"errors"
	"log"

	"gerai/internal/models"
	"gerai/internal/repositories"
	"gerai/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for the product catalog.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// HandleGetProducts retrieves all products.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts()
	if err != nil {
		log.Printf("Error getting all products: %v", err)
		return respondError(c, fiber.StatusInternalServerError, "Could not retrieve products")
	}
	return respondData(c, fiber.StatusOK, "Products retrieved", products)
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	productID := c.Params("id")
	product, err := h.service.GetProductByID(productID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return respondError(c, fiber.StatusNotFound, "Product not found")
		}
		log.Printf("Error getting product by ID %s: %v", productID, err)
		return respondError(c, fiber.StatusInternalServerError, "Could not retrieve product")
	}
	return respondData(c, fiber.StatusOK, "Product retrieved", product)
}

// HandleCreateProduct creates a new catalog product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := h.validate.Struct(product); err != nil {
		return respondValidationErrors(c, formatValidationErrors(err))
	}

	if err := h.service.CreateProduct(&product); err != nil {
		log.Printf("Error creating product: %v", err)
		return respondError(c, fiber.StatusInternalServerError, "Could not create product")
	}

	return respondData(c, fiber.StatusCreated, "Product created successfully", product)
}

// HandleUpdateProduct updates an existing product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	product.ID = c.Params("id")

	if err := h.validate.Struct(product); err != nil {
		return respondValidationErrors(c, formatValidationErrors(err))
	}

	if err := h.service.UpdateProduct(&product); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return respondError(c, fiber.StatusNotFound, "Product not found")
		}
		log.Printf("Error updating product %s: %v", product.ID, err)
		return respondError(c, fiber.StatusInternalServerError, "Could not update product")
	}

	return respondData(c, fiber.StatusOK, "Product updated successfully", product)
}

// HandleDeleteProduct deletes a product by its ID.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	productID := c.Params("id")
	if err := h.service.DeleteProduct(productID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return respondError(c, fiber.StatusNotFound, "Product not found")
		}
		log.Printf("Error deleting product %s: %v", productID, err)
		return respondError(c, fiber.StatusInternalServerError, "Could not delete product")
	}
	return respondData(c, fiber.StatusOK, "Product deleted successfully", fiber.Map{"id": productID})
}
