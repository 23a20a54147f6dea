package app

import (
	"errors"
	"time"

	"github.com/talkincode/partscatalog/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// checkAdmin seeds the administrator account configured in admin_seed.
// An existing account with the same email is left untouched; the skip is
// informational, not an error.
func (a *Application) checkAdmin() {
	email := a.appConfig.AdminSeed.Email
	password := a.appConfig.AdminSeed.Password

	if email == "" || password == "" {
		zap.L().Warn("ADMIN_SEED_EMAIL or ADMIN_SEED_PASSWORD missing, skipping admin seed")
		return
	}

	var admin domain.SysAdmin
	err := a.gormDB.Where("email = ?", email).First(&admin).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			zap.L().Error("failed to hash admin seed password", zap.Error(err))
			return
		}
		if err := a.gormDB.Create(&domain.SysAdmin{
			Email:        email,
			PasswordHash: string(hashed),
			Status:       "enabled",
			LastLogin:    time.Now(),
		}).Error; err != nil {
			zap.L().Error("failed to create admin account", zap.Error(err))
			return
		}
		zap.L().Info("initialized admin account", zap.String("email", email))
	case err != nil:
		zap.L().Error("failed to query admin account", zap.Error(err))
	default:
		zap.L().Info("admin account already exists, skipping", zap.String("email", email))
	}
}
