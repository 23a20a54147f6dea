package adminapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	pkgerrors "github.com/pkg/errors"
	"github.com/talkincode/partscatalog/internal/domain"
	"github.com/talkincode/partscatalog/internal/webserver"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TokenTTL is the admin session token lifetime.
const TokenTTL = 24 * time.Hour

// AdminStore looks up administrator accounts for authentication.
type AdminStore interface {
	// GetByEmail returns (nil, nil) when no account matches
	GetByEmail(ctx context.Context, email string) (*domain.SysAdmin, error)

	// TouchLogin records a successful login
	TouchLogin(ctx context.Context, id int64) error
}

// GormAdminStore is the GORM implementation of AdminStore
type GormAdminStore struct {
	db *gorm.DB
}

func NewGormAdminStore(db *gorm.DB) *GormAdminStore {
	return &GormAdminStore{db: db}
}

func (s *GormAdminStore) GetByEmail(ctx context.Context, email string) (*domain.SysAdmin, error) {
	var admin domain.SysAdmin
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrap(err, "query admin")
	}
	return &admin, nil
}

func (s *GormAdminStore) TouchLogin(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).
		Model(&domain.SysAdmin{}).
		Where("id = ?", id).
		Update("last_login", time.Now()).Error
}

type loginPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (s *Server) login(c echo.Context) error {
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse credentials", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return webserver.HandleValidationError(c, err)
	}

	admin, err := s.admins.GetByEmail(c.Request().Context(), payload.Email)
	if err != nil {
		return webserver.Fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query account", err.Error())
	}
	if admin == nil || admin.Status != "enabled" {
		return webserver.Fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid credentials", nil)
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(payload.Password)) != nil {
		return webserver.Fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid credentials", nil)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   admin.ID,
		"email": admin.Email,
		"exp":   time.Now().Add(TokenTTL).Unix(),
	})
	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return webserver.Fail(c, http.StatusInternalServerError, "TOKEN_ERROR", "Failed to issue token", nil)
	}

	if err := s.admins.TouchLogin(c.Request().Context(), admin.ID); err != nil {
		zap.L().Warn("failed to record login time", zap.Error(err))
	}

	return webserver.OK(c, map[string]interface{}{"token": signed})
}
