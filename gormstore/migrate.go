package gormstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/jwtpizza/pizza-service/users"
)

const (
	defaultAdminName     = "常用名字"
	defaultAdminEmail    = "a@jwt.com"
	defaultAdminPassword = "admin"
)

// AutoMigrate creates or updates the schema and seeds a default admin on a
// fresh database so the deployment is administrable.
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&userRecord{},
		&userRoleRecord{},
		&franchiseRecord{},
		&franchiseAdminRecord{},
		&storeRecord{},
		&menuItemRecord{},
		&orderItemRecord{},
		&orderRecord{},
		&authRecord{},
	)
	if err != nil {
		return errors.Wrap(err, "auto migrate")
	}
	return seedDefaultAdmin(db)
}

func seedDefaultAdmin(db *gorm.DB) error {
	var count int64
	if err := db.Model(&userRoleRecord{}).Where("role = ?", string(users.RoleAdmin)).Count(&count).Error; err != nil {
		return errors.Wrap(err, "count admins")
	}
	if count > 0 {
		return nil
	}

	hash, err := users.HashPassword(defaultAdminPassword)
	if err != nil {
		return errors.Wrap(err, "hash default admin password")
	}

	return db.Transaction(func(tx *gorm.DB) error {
		admin := userRecord{Name: defaultAdminName, Email: defaultAdminEmail, Password: hash}
		if err := tx.Create(&admin).Error; err != nil {
			return errors.Wrap(err, "create default admin")
		}
		role := userRoleRecord{UserID: admin.ID, Role: string(users.RoleAdmin)}
		if err := tx.Create(&role).Error; err != nil {
			return errors.Wrap(err, "create default admin role")
		}
		return nil
	})
}
