// internal/handlers/handlers_test.go
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/freshpick/catalog-backend/internal/config"
	"github.com/freshpick/catalog-backend/internal/models"
	"github.com/freshpick/catalog-backend/internal/services"
)

type testEnv struct {
	db     *gorm.DB
	router *gin.Engine
}

// newTestEnv wires the full API against an in-memory database, with the
// auth middleware left off so route behavior is tested in isolation.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Category{},
		&models.Subcategory{},
		&models.Product{},
		&models.HeroSlide{},
		&models.Admin{},
	))

	cfg := &config.Config{
		Environment: "test",
		JWT:         config.JWTConfig{SecretKey: "test-secret", AccessTokenTTL: 1},
		Admin:       config.AdminConfig{Email: "admin@test.local", Password: "test-password"},
		Catalog:     config.CatalogConfig{SimilarLimit: 4},
	}

	storageService, err := services.NewStorageService(cfg)
	require.NoError(t, err)

	authService := services.NewAuthService(db, cfg)
	require.NoError(t, authService.EnsureDefaultAdmin())

	categoryHandler := NewCategoryHandler(services.NewCategoryService(db))
	productHandler := NewProductHandler(services.NewProductService(db, storageService, cfg), storageService)
	heroSlideHandler := NewHeroSlideHandler(services.NewHeroSlideService(db, storageService), storageService)
	authHandler := NewAuthHandler(authService)

	r := gin.New()
	api := r.Group("/api")

	api.POST("/auth/login", authHandler.Login)

	api.GET("/categories", categoryHandler.GetCategories)
	api.POST("/categories", categoryHandler.CreateCategory)
	api.PUT("/categories/:id", categoryHandler.UpdateCategory)
	api.DELETE("/categories/:id", categoryHandler.DeleteCategory)
	api.POST("/categories/:id/subcategories", categoryHandler.AddSubcategory)
	api.DELETE("/categories/:id/subcategories/:subId", categoryHandler.RemoveSubcategory)

	api.GET("/products", productHandler.GetProducts)
	api.GET("/products/latest", productHandler.GetLatestProducts)
	api.GET("/products/bestselling", productHandler.GetBestSellingProducts)
	api.GET("/products/similar/:id", productHandler.GetSimilarProducts)
	api.GET("/products/:id", productHandler.GetProduct)
	api.POST("/products", productHandler.CreateProduct)
	api.PUT("/products/:id", productHandler.UpdateProduct)
	api.DELETE("/products/:id", productHandler.DeleteProduct)

	api.GET("/hero-slides", heroSlideHandler.GetHeroSlides)
	api.POST("/hero-slides/reorder", heroSlideHandler.ReorderHeroSlides)

	return &testEnv{db: db, router: r}
}

func (env *testEnv) doJSON(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = strings.NewReader(string(data))
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func (env *testEnv) doForm(t *testing.T, method, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
