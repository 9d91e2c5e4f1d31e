// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/freshpick/catalog-backend/internal/config"
	"github.com/freshpick/catalog-backend/internal/handlers"
	"github.com/freshpick/catalog-backend/internal/middleware"
	"github.com/freshpick/catalog-backend/internal/services"
	"github.com/freshpick/catalog-backend/internal/utils"
)

func SetupRouter(db *gorm.DB, cfg *config.Config) *gin.Engine {
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("failed to initialize storage service")
	}

	authService := services.NewAuthService(db, cfg)
	categoryService := services.NewCategoryService(db)
	productService := services.NewProductService(db, storageService, cfg)
	heroSlideService := services.NewHeroSlideService(db, storageService)

	authHandler := handlers.NewAuthHandler(authService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	productHandler := handlers.NewProductHandler(productService, storageService)
	heroSlideHandler := handlers.NewHeroSlideHandler(heroSlideService, storageService)

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.CORS.AllowOrigins))
	r.Use(middleware.GeneralRateLimit())
	r.Use(middleware.AuditLog(db))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// Locally stored uploads; in production the media host serves these.
	if cfg.Environment == "development" {
		r.Static("/uploads", "./uploads")
	}

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", middleware.AuthRateLimit(), authHandler.Login)
		}

		categories := api.Group("/categories")
		{
			categories.GET("", categoryHandler.GetCategories)

			protected := categories.Group("")
			protected.Use(middleware.AuthRequired())
			{
				protected.POST("", categoryHandler.CreateCategory)
				protected.PUT("/:id", categoryHandler.UpdateCategory)
				protected.DELETE("/:id", categoryHandler.DeleteCategory)
				protected.POST("/:id/subcategories", categoryHandler.AddSubcategory)
				protected.DELETE("/:id/subcategories/:subId", categoryHandler.RemoveSubcategory)
			}
		}

		products := api.Group("/products")
		{
			products.GET("", productHandler.GetProducts)
			products.GET("/latest", productHandler.GetLatestProducts)
			products.GET("/bestselling", productHandler.GetBestSellingProducts)
			products.GET("/similar/:id", productHandler.GetSimilarProducts)
			products.GET("/:id", productHandler.GetProduct)

			protected := products.Group("")
			protected.Use(middleware.AuthRequired())
			{
				protected.POST("", middleware.UploadRateLimit(), productHandler.CreateProduct)
				protected.PUT("/:id", middleware.UploadRateLimit(), productHandler.UpdateProduct)
				protected.DELETE("/:id", productHandler.DeleteProduct)
			}
		}

		heroSlides := api.Group("/hero-slides")
		{
			heroSlides.GET("", heroSlideHandler.GetHeroSlides)

			protected := heroSlides.Group("")
			protected.Use(middleware.AuthRequired())
			{
				protected.POST("", middleware.UploadRateLimit(), heroSlideHandler.CreateHeroSlide)
				protected.POST("/reorder", heroSlideHandler.ReorderHeroSlides)
				protected.PUT("/:id", middleware.UploadRateLimit(), heroSlideHandler.UpdateHeroSlide)
				protected.DELETE("/:id", heroSlideHandler.DeleteHeroSlide)
			}
		}
	}

	return r
}
