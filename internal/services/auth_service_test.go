// internal/services/auth_service_test.go
package services

import (
	"github.com/mercadocesar/storefront/internal/config"
	"github.com/mercadocesar/storefront/internal/models"
)

func (s *ServiceTestSuite) authService() *AuthService {
	return NewAuthService(s.db, config.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenTTL:  1,
		RefreshTokenTTL: 24,
	})
}

func (s *ServiceTestSuite) TestRegisterAndLogin() {
	auth := s.authService()

	resp, err := auth.Register(&RegisterRequest{
		Username: "novocliente",
		Email:    "novo@example.com",
		Password: "Senha123!@#",
	})
	s.Require().NoError(err)
	s.Equal(models.UserTypeCustomer, resp.User.UserType)
	s.NotEmpty(resp.AccessToken)
	s.NotEmpty(resp.RefreshToken)

	login, err := auth.Login(&LoginRequest{Username: "novocliente", Password: "Senha123!@#"})
	s.NoError(err)
	s.Equal(resp.User.ID, login.User.ID)

	// Email works as the login identifier too
	login, err = auth.Login(&LoginRequest{Username: "novo@example.com", Password: "Senha123!@#"})
	s.NoError(err)
	s.NotNil(login.User.LastLoginAt)
}

func (s *ServiceTestSuite) TestRegisterDuplicateUsername() {
	auth := s.authService()

	_, err := auth.Register(&RegisterRequest{
		Username: "cliente",
		Email:    "diferente@example.com",
		Password: "Senha123!@#",
	})
	s.ErrorIs(err, ErrUsuarioExistente)
}

func (s *ServiceTestSuite) TestLoginWrongPassword() {
	auth := s.authService()

	_, err := auth.Login(&LoginRequest{Username: "cliente", Password: "errada"})
	s.ErrorIs(err, ErrCredenciaisInvalidas)

	_, err = auth.Login(&LoginRequest{Username: "fantasma", Password: "Senha123!@#"})
	s.ErrorIs(err, ErrCredenciaisInvalidas)
}

func (s *ServiceTestSuite) TestRefreshToken() {
	auth := s.authService()

	resp, err := auth.Login(&LoginRequest{Username: "cliente", Password: "Senha123!@#"})
	s.Require().NoError(err)

	renovado, err := auth.RefreshToken(resp.RefreshToken)
	s.NoError(err)
	s.Equal(s.user.ID, renovado.User.ID)
	s.NotEmpty(renovado.AccessToken)

	_, err = auth.RefreshToken("token-invalido")
	s.ErrorIs(err, ErrCredenciaisInvalidas)
}
