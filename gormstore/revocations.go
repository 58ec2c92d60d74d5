package gormstore

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/jwtpizza/pizza-service/session"
)

type Revocations struct {
	db *gorm.DB
}

var _ session.RevocationStore = (*Revocations)(nil)

func NewRevocations(db *gorm.DB) *Revocations {
	return &Revocations{db: db}
}

func (r *Revocations) RecordLogin(ctx context.Context, token string) error {
	record := authRecord{Token: token}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return errors.Wrap(err, "record login")
	}
	return nil
}

func (r *Revocations) RecordLogout(ctx context.Context, token string) error {
	if err := r.db.WithContext(ctx).Delete(&authRecord{}, "token = ?", token).Error; err != nil {
		return errors.Wrap(err, "record logout")
	}
	return nil
}

func (r *Revocations) IsLoggedIn(ctx context.Context, token string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&authRecord{}).Where("token = ?", token).Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "is logged in")
	}
	return count > 0, nil
}
