// internal/handlers/hero_slide.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/freshpick/catalog-backend/internal/services"
	"github.com/freshpick/catalog-backend/internal/utils"
)

type HeroSlideHandler struct {
	heroSlideService *services.HeroSlideService
	storageService   *services.StorageService
}

func NewHeroSlideHandler(heroSlideService *services.HeroSlideService, storageService *services.StorageService) *HeroSlideHandler {
	return &HeroSlideHandler{
		heroSlideService: heroSlideService,
		storageService:   storageService,
	}
}

// GET /api/hero-slides
func (h *HeroSlideHandler) GetHeroSlides(c *gin.Context) {
	slides, err := h.heroSlideService.List()
	if err != nil {
		respondServiceError(c, err, "slide", "Failed to fetch hero slides", true)
		return
	}
	utils.SuccessJSON(c, http.StatusOK, gin.H{"slides": slides})
}

// POST /api/hero-slides (multipart form with "image" file)
func (h *HeroSlideHandler) CreateHeroSlide(c *gin.Context) {
	input := heroSlideInputFromForm(c)
	if !h.attachUploadedImage(c, input) {
		return
	}

	slide, err := h.heroSlideService.Create(input)
	if err != nil {
		respondServiceError(c, err, "slide", "Failed to add hero slide", true)
		return
	}

	utils.SuccessJSON(c, http.StatusCreated, gin.H{"slide": slide})
}

// PUT /api/hero-slides/:id (multipart form, optional "image" file)
func (h *HeroSlideHandler) UpdateHeroSlide(c *gin.Context) {
	input := heroSlideInputFromForm(c)
	if !h.attachUploadedImage(c, input) {
		return
	}

	slide, err := h.heroSlideService.Update(c.Param("id"), input)
	if err != nil {
		respondServiceError(c, err, "slide", "Failed to update slide", true)
		return
	}

	utils.SuccessJSON(c, http.StatusOK, gin.H{"slide": slide})
}

// DELETE /api/hero-slides/:id
func (h *HeroSlideHandler) DeleteHeroSlide(c *gin.Context) {
	if err := h.heroSlideService.Delete(c.Param("id")); err != nil {
		respondServiceError(c, err, "slide", "Failed to delete slide", true)
		return
	}
	utils.SuccessJSON(c, http.StatusOK, gin.H{"message": "Slide deleted"})
}

// POST /api/hero-slides/reorder
func (h *HeroSlideHandler) ReorderHeroSlides(c *gin.Context) {
	var req struct {
		OrderList []string `json:"orderList"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorJSON(c, http.StatusBadRequest, "Failed to reorder slides", err.Error())
		return
	}

	if err := h.heroSlideService.Reorder(req.OrderList); err != nil {
		respondServiceError(c, err, "slide", "Failed to reorder slides", true)
		return
	}

	utils.SuccessJSON(c, http.StatusOK, gin.H{"message": "Slides reordered"})
}

func heroSlideInputFromForm(c *gin.Context) *services.HeroSlideInput {
	return &services.HeroSlideInput{
		Title:    c.PostForm("title"),
		Subtitle: c.PostForm("subtitle"),
		Link:     c.PostForm("link"),
		Active:   c.PostForm("active"),
	}
}

func (h *HeroSlideHandler) attachUploadedImage(c *gin.Context, input *services.HeroSlideInput) bool {
	header, err := c.FormFile("image")
	if err != nil {
		return true
	}

	file, err := header.Open()
	if err != nil {
		utils.ErrorJSON(c, http.StatusBadRequest, "Failed to read uploaded image", err.Error())
		return false
	}
	defer file.Close()

	result, err := h.storageService.UploadImage(file, header, "hero-slides")
	if err != nil {
		respondServiceError(c, err, "slide", "Failed to upload image", true)
		return false
	}

	input.ImageURL = result.URL
	input.ImageKey = result.Key
	return true
}
