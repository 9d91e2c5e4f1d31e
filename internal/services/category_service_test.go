// internal/services/category_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/freshpick/catalog-backend/internal/models"
)

type CategoryServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *CategoryService
}

func (suite *CategoryServiceTestSuite) SetupTest() {
	suite.db = newTestDB(suite.T())
	suite.service = NewCategoryService(suite.db)
}

func (suite *CategoryServiceTestSuite) TestCreateNormalizesName() {
	category, err := suite.service.Create(&CreateCategoryRequest{Name: "  Fruits "})
	suite.Require().NoError(err)

	suite.Equal("fruits", category.Name)
	suite.Equal(models.CategoryStatusActive, category.Status)
}

func (suite *CategoryServiceTestSuite) TestCreateRejectsEmptyName() {
	_, err := suite.service.Create(&CreateCategoryRequest{Name: "   "})

	var validationErr *ValidationError
	suite.Require().ErrorAs(err, &validationErr)

	var count int64
	suite.db.Model(&models.Category{}).Count(&count)
	suite.Zero(count)
}

func (suite *CategoryServiceTestSuite) TestCreateDedupesInitialSubcategories() {
	category, err := suite.service.Create(&CreateCategoryRequest{
		Name: "Vegetables",
		Subcategories: []SubcategoryInput{
			{Name: " Leafy "},
			{Name: "leafy"},
			{Name: "Root"},
			{Name: ""},
		},
	})
	suite.Require().NoError(err)

	suite.Require().Len(category.Subcategories, 2)
	suite.Equal("leafy", category.Subcategories[0].Name)
	suite.Equal(1, category.Subcategories[0].Position)
	suite.Equal("root", category.Subcategories[1].Name)
	suite.Equal(2, category.Subcategories[1].Position)
}

func (suite *CategoryServiceTestSuite) TestAddSubcategory() {
	category, err := suite.service.Create(&CreateCategoryRequest{Name: "Dairy"})
	suite.Require().NoError(err)

	updated, err := suite.service.AddSubcategory(category.ID.String(), " Cheese ")
	suite.Require().NoError(err)

	suite.Require().Len(updated.Subcategories, 1)
	suite.Equal("cheese", updated.Subcategories[0].Name)
	suite.Equal(1, updated.Subcategories[0].Position)
}

func (suite *CategoryServiceTestSuite) TestAddDuplicateSubcategoryConflicts() {
	category, err := suite.service.Create(&CreateCategoryRequest{
		Name:          "Dairy",
		Subcategories: []SubcategoryInput{{Name: "cheese"}},
	})
	suite.Require().NoError(err)

	// Same name modulo casing and whitespace is still a duplicate.
	_, err = suite.service.AddSubcategory(category.ID.String(), " CHEESE ")

	var conflictErr *ConflictError
	suite.Require().ErrorAs(err, &conflictErr)

	var count int64
	suite.db.Model(&models.Subcategory{}).Where("category_id = ?", category.ID).Count(&count)
	suite.EqualValues(1, count)
}

func (suite *CategoryServiceTestSuite) TestAddSubcategoryToUnknownCategory() {
	_, err := suite.service.AddSubcategory("00000000-0000-0000-0000-000000000001", "cheese")

	var notFoundErr *NotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
	suite.Equal("Category", notFoundErr.Resource)
}

func (suite *CategoryServiceTestSuite) TestAddSubcategoryInvalidCategoryID() {
	_, err := suite.service.AddSubcategory("not-a-uuid", "cheese")

	var invalidIDErr *InvalidIDError
	suite.Require().ErrorAs(err, &invalidIDErr)
}

func (suite *CategoryServiceTestSuite) TestRemoveSubcategory() {
	category, err := suite.service.Create(&CreateCategoryRequest{
		Name:          "Bakery",
		Subcategories: []SubcategoryInput{{Name: "bread"}, {Name: "cakes"}},
	})
	suite.Require().NoError(err)

	err = suite.service.RemoveSubcategory(category.ID.String(), category.Subcategories[0].ID.String())
	suite.Require().NoError(err)

	var remaining []models.Subcategory
	suite.db.Where("category_id = ?", category.ID).Find(&remaining)
	suite.Require().Len(remaining, 1)
	suite.Equal("cakes", remaining[0].Name)
}

func (suite *CategoryServiceTestSuite) TestRemoveUnknownSubcategory() {
	category, err := suite.service.Create(&CreateCategoryRequest{Name: "Bakery"})
	suite.Require().NoError(err)

	err = suite.service.RemoveSubcategory(category.ID.String(), "00000000-0000-0000-0000-000000000002")

	var notFoundErr *NotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
	suite.Equal("Subcategory", notFoundErr.Resource)
}

func (suite *CategoryServiceTestSuite) TestUpdatePartialFields() {
	category, err := suite.service.Create(&CreateCategoryRequest{
		Name:        "Meat",
		Description: "fresh cuts",
	})
	suite.Require().NoError(err)

	newName := " Meat & Fish "
	updated, err := suite.service.Update(category.ID.String(), &UpdateCategoryRequest{Name: &newName})
	suite.Require().NoError(err)

	suite.Equal("meat & fish", updated.Name)
	suite.Equal("fresh cuts", updated.Description)
	suite.Equal(models.CategoryStatusActive, updated.Status)
}

func (suite *CategoryServiceTestSuite) TestUpdateRejectsBadStatus() {
	category, err := suite.service.Create(&CreateCategoryRequest{Name: "Meat"})
	suite.Require().NoError(err)

	bad := models.CategoryStatus("archived")
	_, err = suite.service.Update(category.ID.String(), &UpdateCategoryRequest{Status: &bad})

	var validationErr *ValidationError
	suite.Require().ErrorAs(err, &validationErr)
}

func (suite *CategoryServiceTestSuite) TestDeleteRemovesSubcategories() {
	category, err := suite.service.Create(&CreateCategoryRequest{
		Name:          "Frozen",
		Subcategories: []SubcategoryInput{{Name: "ice cream"}},
	})
	suite.Require().NoError(err)

	suite.Require().NoError(suite.service.Delete(category.ID.String()))

	var count int64
	suite.db.Model(&models.Subcategory{}).Where("category_id = ?", category.ID).Count(&count)
	suite.Zero(count)
}

// Products referencing a deleted category stay behind with a dangling
// category id; deletion never cascades into the product table.
func (suite *CategoryServiceTestSuite) TestDeleteLeavesReferencingProducts() {
	category, err := suite.service.Create(&CreateCategoryRequest{Name: "Pantry"})
	suite.Require().NoError(err)

	product := models.Product{Name: "rice", CategoryID: category.ID, Price: 2.5}
	suite.Require().NoError(suite.db.Create(&product).Error)

	suite.Require().NoError(suite.service.Delete(category.ID.String()))

	var survivor models.Product
	suite.Require().NoError(suite.db.First(&survivor, "id = ?", product.ID).Error)
	suite.Equal(category.ID, survivor.CategoryID)
}

func (suite *CategoryServiceTestSuite) TestListPreloadsOrderedSubcategories() {
	category, err := suite.service.Create(&CreateCategoryRequest{
		Name:          "Drinks",
		Subcategories: []SubcategoryInput{{Name: "juice"}, {Name: "water"}, {Name: "soda"}},
	})
	suite.Require().NoError(err)
	_ = category

	categories, err := suite.service.List()
	suite.Require().NoError(err)
	suite.Require().Len(categories, 1)

	names := make([]string, 0, 3)
	for _, sub := range categories[0].Subcategories {
		names = append(names, sub.Name)
	}
	suite.Equal([]string{"juice", "water", "soda"}, names)
}

func TestCategoryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CategoryServiceTestSuite))
}
