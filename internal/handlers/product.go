// internal/handlers/product.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/freshpick/catalog-backend/internal/services"
	"github.com/freshpick/catalog-backend/internal/utils"
)

type ProductHandler struct {
	productService *services.ProductService
	storageService *services.StorageService
}

func NewProductHandler(productService *services.ProductService, storageService *services.StorageService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		storageService: storageService,
	}
}

// GET /api/products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	products, err := h.productService.ListAll()
	if err != nil {
		respondServiceError(c, err, "product", "Failed to fetch products", true)
		return
	}
	utils.SuccessJSON(c, http.StatusOK, gin.H{"products": products})
}

// GET /api/products/latest
func (h *ProductHandler) GetLatestProducts(c *gin.Context) {
	products, err := h.productService.ListLatest()
	if err != nil {
		respondServiceError(c, err, "product", "Failed to fetch latest products", true)
		return
	}
	utils.SuccessJSON(c, http.StatusOK, gin.H{"products": products})
}

// GET /api/products/bestselling
func (h *ProductHandler) GetBestSellingProducts(c *gin.Context) {
	products, err := h.productService.ListBestSelling()
	if err != nil {
		respondServiceError(c, err, "product", "Failed to fetch best-selling products", true)
		return
	}
	utils.SuccessJSON(c, http.StatusOK, gin.H{"products": products})
}

// GET /api/products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.productService.GetByID(c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "product", "Failed to fetch product", true)
		return
	}
	c.JSON(http.StatusOK, product)
}

// GET /api/products/similar/:id
func (h *ProductHandler) GetSimilarProducts(c *gin.Context) {
	products, err := h.productService.FindSimilar(c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "product", "Failed to fetch similar products", true)
		return
	}
	c.JSON(http.StatusOK, products)
}

// POST /api/products (multipart form, optional "image" file)
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	input := productInputFromForm(c)
	if !h.attachUploadedImage(c, input) {
		return
	}

	product, err := h.productService.Create(input)
	if err != nil {
		respondServiceError(c, err, "product", "Failed to add product", true)
		return
	}

	utils.SuccessJSON(c, http.StatusCreated, gin.H{
		"message": "Product added successfully",
		"product": product,
	})
}

// PUT /api/products/:id (multipart form, optional "image" file)
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	input := productInputFromForm(c)
	if !h.attachUploadedImage(c, input) {
		return
	}

	product, err := h.productService.Update(c.Param("id"), input)
	if err != nil {
		respondServiceError(c, err, "product", "Failed to update product", true)
		return
	}

	utils.SuccessJSON(c, http.StatusOK, gin.H{
		"message": "Product updated successfully",
		"product": product,
	})
}

// DELETE /api/products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	if err := h.productService.Delete(c.Param("id")); err != nil {
		respondServiceError(c, err, "product", "Failed to delete product", true)
		return
	}
	utils.SuccessJSON(c, http.StatusOK, gin.H{"message": "Product deleted"})
}

func productInputFromForm(c *gin.Context) *services.ProductInput {
	return &services.ProductInput{
		Name:                  c.PostForm("name"),
		Description:           c.PostForm("description"),
		Category:              c.PostForm("category"),
		Subcategory:           c.PostForm("subcategory"),
		Price:                 c.PostForm("price"),
		CostPrice:             c.PostForm("costPrice"),
		Unit:                  c.PostForm("unit"),
		DefaultQuantity:       c.PostForm("defaultQuantity"),
		CustomQuantityOptions: c.PostForm("customQuantityOptions"),
		Stock:                 c.PostForm("stock"),
		DisplayInLatest:       c.PostForm("displayInLatest"),
		DisplayInBestSelling:  c.PostForm("displayInBestSelling"),
		OnSale:                c.PostForm("onSale"),
		SalePrice:             c.PostForm("salePrice"),
	}
}

// attachUploadedImage resolves an optional multipart image through the
// media store. A resolver failure fails the whole request; the false
// return signals that a response was already written.
func (h *ProductHandler) attachUploadedImage(c *gin.Context, input *services.ProductInput) bool {
	header, err := c.FormFile("image")
	if err != nil {
		return true // no image field present
	}

	file, err := header.Open()
	if err != nil {
		utils.ErrorJSON(c, http.StatusBadRequest, "Failed to read uploaded image", err.Error())
		return false
	}
	defer file.Close()

	result, err := h.storageService.UploadImage(file, header, "product-images")
	if err != nil {
		respondServiceError(c, err, "product", "Failed to upload image", true)
		return false
	}

	input.ImageURL = result.URL
	input.ImageKey = result.Key
	return true
}
