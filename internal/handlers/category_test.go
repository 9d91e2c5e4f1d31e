// internal/handlers/category_test.go
package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshpick/catalog-backend/internal/models"
)

func createCategory(t *testing.T, env *testEnv, name string, subcategories ...string) models.Category {
	t.Helper()

	subs := make([]map[string]string, 0, len(subcategories))
	for _, sub := range subcategories {
		subs = append(subs, map[string]string{"name": sub})
	}

	w := env.doJSON(t, http.MethodPost, "/api/categories", map[string]interface{}{
		"name":          name,
		"subcategories": subs,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var category models.Category
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &category))
	return category
}

// The category family answers with bare payloads, no success envelope.
func TestGetCategoriesReturnsBareArray(t *testing.T) {
	env := newTestEnv(t)
	createCategory(t, env, "Fruits")

	w := env.doJSON(t, http.MethodGet, "/api/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var categories []models.Category
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &categories))
	require.Len(t, categories, 1)
	assert.Equal(t, "fruits", categories[0].Name)
}

func TestCreateCategoryNormalizesName(t *testing.T) {
	env := newTestEnv(t)

	category := createCategory(t, env, "  Vegetables ", "Leafy", " leafy ", "Root")
	assert.Equal(t, "vegetables", category.Name)
	require.Len(t, category.Subcategories, 2)
	assert.Equal(t, "leafy", category.Subcategories[0].Name)
	assert.Equal(t, "root", category.Subcategories[1].Name)
}

func TestCreateCategoryMissingName(t *testing.T) {
	env := newTestEnv(t)

	w := env.doJSON(t, http.MethodPost, "/api/categories", map[string]interface{}{
		"description": "no name",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "Category name is required", body["error"])
	assert.NotContains(t, body, "success")
}

func TestUpdateCategoryInvalidID(t *testing.T) {
	env := newTestEnv(t)

	w := env.doJSON(t, http.MethodPut, "/api/categories/not-a-uuid", map[string]interface{}{
		"name": "fruits",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "Invalid category ID format", body["error"])
}

func TestUpdateCategoryNotFound(t *testing.T) {
	env := newTestEnv(t)

	w := env.doJSON(t, http.MethodPut, "/api/categories/00000000-0000-0000-0000-000000000001", map[string]interface{}{
		"name": "fruits",
	})
	require.Equal(t, http.StatusNotFound, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "Category not found", body["error"])
}

func TestAddDuplicateSubcategory(t *testing.T) {
	env := newTestEnv(t)
	category := createCategory(t, env, "Dairy", "cheese")

	w := env.doJSON(t, http.MethodPost, "/api/categories/"+category.ID.String()+"/subcategories",
		map[string]string{"name": " CHEESE "})
	require.Equal(t, http.StatusConflict, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "Subcategory already exists", body["error"])
}

func TestRemoveSubcategory(t *testing.T) {
	env := newTestEnv(t)
	category := createCategory(t, env, "Dairy", "cheese")
	subID := category.Subcategories[0].ID.String()

	w := env.doJSON(t, http.MethodDelete,
		"/api/categories/"+category.ID.String()+"/subcategories/"+subID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = env.doJSON(t, http.MethodDelete,
		"/api/categories/"+category.ID.String()+"/subcategories/"+subID, nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "Subcategory not found", body["error"])
}

func TestDeleteCategory(t *testing.T) {
	env := newTestEnv(t)
	category := createCategory(t, env, "Frozen")

	w := env.doJSON(t, http.MethodDelete, "/api/categories/"+category.ID.String(), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = env.doJSON(t, http.MethodDelete, "/api/categories/"+category.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
