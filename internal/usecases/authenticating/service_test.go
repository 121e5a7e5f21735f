package authenticating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/rfm-segmentation-api/infrastructure/repository/mocks"
	"github.com/vfg2006/rfm-segmentation-api/internal/config"
	"github.com/vfg2006/rfm-segmentation-api/internal/domain"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

func authConfig() *config.Config {
	return &config.Config{
		Auth: config.Auth{Secret: "segredo-de-teste"},
	}
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hash)
}

func TestService_LoginUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := mocks.NewMockUserRepository(ctrl)
	service := NewService(mockUserRepo, authConfig())

	activeUser := func(t *testing.T) *domain.User {
		return &domain.User{
			ID:           1,
			Name:         "Maria",
			Lastname:     "Silva",
			Email:        "maria@loja.com",
			PasswordHash: hashPassword(t, "senha123"),
			Active:       true,
			RoleID:       1,
		}
	}

	tests := []struct {
		name     string
		email    string
		password string
		setup    func(t *testing.T)
		validate func(t *testing.T, token string, err error)
	}{
		{
			name:     "Credenciais válidas devem retornar token",
			email:    "maria@loja.com",
			password: "senha123",
			setup: func(t *testing.T) {
				mockUserRepo.EXPECT().
					GetUserByEmail("maria@loja.com").
					Return(activeUser(t), nil)
			},
			validate: func(t *testing.T, token string, err error) {
				assert.NoError(t, err)
				assert.NotEmpty(t, token)
			},
		},
		{
			name:     "Email com maiúsculas e espaços é normalizado",
			email:    "  MARIA@loja.com  ",
			password: "senha123",
			setup: func(t *testing.T) {
				mockUserRepo.EXPECT().
					GetUserByEmail("maria@loja.com").
					Return(activeUser(t), nil)
			},
			validate: func(t *testing.T, token string, err error) {
				assert.NoError(t, err)
				assert.NotEmpty(t, token)
			},
		},
		{
			name:     "Senha incorreta deve falhar com credenciais inválidas",
			email:    "maria@loja.com",
			password: "senha-errada",
			setup: func(t *testing.T) {
				mockUserRepo.EXPECT().
					GetUserByEmail("maria@loja.com").
					Return(activeUser(t), nil)
			},
			validate: func(t *testing.T, token string, err error) {
				assert.ErrorIs(t, err, ErrInvalidCredentials)
				assert.True(t, IsCredentialsError(err))
				assert.Empty(t, token)
			},
		},
		{
			name:     "Usuário inexistente deve falhar com credenciais inválidas",
			email:    "ninguem@loja.com",
			password: "senha123",
			setup: func(t *testing.T) {
				mockUserRepo.EXPECT().
					GetUserByEmail("ninguem@loja.com").
					Return(nil, nil)
			},
			validate: func(t *testing.T, token string, err error) {
				assert.ErrorIs(t, err, ErrInvalidCredentials)
				assert.Empty(t, token)
			},
		},
		{
			name:     "Usuário desativado não pode entrar",
			email:    "maria@loja.com",
			password: "senha123",
			setup: func(t *testing.T) {
				user := activeUser(t)
				user.Active = false
				mockUserRepo.EXPECT().
					GetUserByEmail("maria@loja.com").
					Return(user, nil)
			},
			validate: func(t *testing.T, token string, err error) {
				assert.ErrorIs(t, err, ErrUserDisabled)
				assert.Empty(t, token)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup(t)

			token, err := service.LoginUser(tt.email, tt.password)
			tt.validate(t, token, err)
		})
	}
}

func TestService_ValidateToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := mocks.NewMockUserRepository(ctrl)
	service := NewService(mockUserRepo, authConfig())

	user := &domain.User{
		ID:           7,
		Name:         "Maria",
		Lastname:     "Silva",
		Email:        "maria@loja.com",
		PasswordHash: hashPassword(t, "senha123"),
		Active:       true,
		RoleID:       2,
	}

	mockUserRepo.EXPECT().
		GetUserByEmail("maria@loja.com").
		Return(user, nil)

	token, err := service.LoginUser("maria@loja.com", "senha123")
	assert.NoError(t, err)

	claims, err := service.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, 7, claims.UserID)
	assert.Equal(t, "Maria", claims.UserName)
	assert.Equal(t, 2, claims.UserRoleID)

	// token assinado com outro segredo é rejeitado
	otherService := NewService(mockUserRepo, &config.Config{Auth: config.Auth{Secret: "outro-segredo"}})
	_, err = otherService.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = service.ValidateToken("nem-um-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestService_ChangePassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := mocks.NewMockUserRepository(ctrl)
	service := NewService(mockUserRepo, authConfig())

	tests := []struct {
		name            string
		currentPassword string
		newPassword     string
		setup           func(t *testing.T)
		validate        func(t *testing.T, err error)
	}{
		{
			name:            "Troca válida deve atualizar o hash",
			currentPassword: "senha123",
			newPassword:     "novasenha42",
			setup: func(t *testing.T) {
				mockUserRepo.EXPECT().
					GetUserByID(1).
					Return(&domain.User{ID: 1, PasswordHash: hashPassword(t, "senha123"), Active: true}, nil)

				mockUserRepo.EXPECT().
					UpdatePassword(1, gomock.Any()).
					Return(nil)
			},
			validate: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name:            "Senha atual incorreta deve falhar",
			currentPassword: "senha-errada",
			newPassword:     "novasenha42",
			setup: func(t *testing.T) {
				mockUserRepo.EXPECT().
					GetUserByID(1).
					Return(&domain.User{ID: 1, PasswordHash: hashPassword(t, "senha123"), Active: true}, nil)
			},
			validate: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrInvalidCredentials)
			},
		},
		{
			name:            "Senha nova curta demais deve falhar",
			currentPassword: "senha123",
			newPassword:     "curta1",
			setup: func(t *testing.T) {
				mockUserRepo.EXPECT().
					GetUserByID(1).
					Return(&domain.User{ID: 1, PasswordHash: hashPassword(t, "senha123"), Active: true}, nil)
			},
			validate: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrWeakPassword)
			},
		},
		{
			name:            "Senha nova sem números deve falhar",
			currentPassword: "senha123",
			newPassword:     "somenteletras",
			setup: func(t *testing.T) {
				mockUserRepo.EXPECT().
					GetUserByID(1).
					Return(&domain.User{ID: 1, PasswordHash: hashPassword(t, "senha123"), Active: true}, nil)
			},
			validate: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrWeakPassword)
			},
		},
		{
			name:            "Usuário inexistente deve falhar",
			currentPassword: "senha123",
			newPassword:     "novasenha42",
			setup: func(t *testing.T) {
				mockUserRepo.EXPECT().
					GetUserByID(1).
					Return(nil, nil)
			},
			validate: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrUserNotFound)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup(t)

			err := service.ChangePassword(1, tt.currentPassword, tt.newPassword)
			tt.validate(t, err)
		})
	}
}

func TestService_CreateUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := mocks.NewMockUserRepository(ctrl)
	service := NewService(mockUserRepo, authConfig())

	t.Run("Dados obrigatórios ausentes devem falhar", func(t *testing.T) {
		_, err := service.CreateUser(&domain.User{Email: "maria@loja.com"})
		assert.ErrorIs(t, err, ErrMissingRequiredData)
	})

	t.Run("Email já cadastrado deve falhar", func(t *testing.T) {
		mockUserRepo.EXPECT().
			GetUserByEmail("maria@loja.com").
			Return(&domain.User{ID: 1}, nil)

		_, err := service.CreateUser(&domain.User{
			Name:         "Maria",
			Lastname:     "Silva",
			Email:        "maria@loja.com",
			PasswordHash: "senha123",
		})
		assert.ErrorIs(t, err, ErrUserAlreadyExists)
	})

	t.Run("Usuário novo recebe hash e papel padrão", func(t *testing.T) {
		mockUserRepo.EXPECT().
			GetUserByEmail("maria@loja.com").
			Return(nil, nil)

		mockUserRepo.EXPECT().
			CreateUser(gomock.Any()).
			DoAndReturn(func(user *domain.User) (*domain.User, error) {
				assert.NotEqual(t, "senha123", user.PasswordHash) // hash, não texto puro
				assert.True(t, user.Active)
				assert.Equal(t, 3, user.RoleID)
				user.ID = 10
				return user, nil
			})

		created, err := service.CreateUser(&domain.User{
			Name:         "Maria",
			Lastname:     "Silva",
			Email:        "Maria@loja.com",
			PasswordHash: "senha123",
		})
		assert.NoError(t, err)
		assert.Equal(t, 10, created.ID)
		assert.Equal(t, "maria@loja.com", created.Email)
	})
}
