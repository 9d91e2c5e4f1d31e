// internal/services/auth_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/freshpick/catalog-backend/internal/models"
	"github.com/freshpick/catalog-backend/internal/utils"
)

type AuthServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *AuthService
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.db = newTestDB(suite.T())
	cfg := newTestConfig()
	utils.SetJWTSecret(cfg.JWT.SecretKey)
	suite.service = NewAuthService(suite.db, cfg)
	suite.Require().NoError(suite.service.EnsureDefaultAdmin())
}

func (suite *AuthServiceTestSuite) TestEnsureDefaultAdminIdempotent() {
	suite.Require().NoError(suite.service.EnsureDefaultAdmin())

	var count int64
	suite.db.Model(&models.Admin{}).Count(&count)
	suite.EqualValues(1, count)
}

func (suite *AuthServiceTestSuite) TestLoginIssuesValidToken() {
	token, err := suite.service.Login(&LoginRequest{
		Email:    "admin@test.local",
		Password: "test-password",
	})
	suite.Require().NoError(err)
	suite.NotEmpty(token)

	claims, err := utils.ValidateJWT(token)
	suite.Require().NoError(err)
	suite.Equal("admin@test.local", claims.Email)
}

func (suite *AuthServiceTestSuite) TestLoginWrongPassword() {
	_, err := suite.service.Login(&LoginRequest{
		Email:    "admin@test.local",
		Password: "wrong",
	})
	suite.ErrorIs(err, ErrInvalidCredentials)
}

// Unknown email fails the same way as a wrong password.
func (suite *AuthServiceTestSuite) TestLoginUnknownEmail() {
	_, err := suite.service.Login(&LoginRequest{
		Email:    "nobody@test.local",
		Password: "test-password",
	})
	suite.ErrorIs(err, ErrInvalidCredentials)
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
