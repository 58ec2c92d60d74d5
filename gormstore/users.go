package gormstore

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/jwtpizza/pizza-service/users"
)

type Users struct {
	db *gorm.DB
}

var _ users.Repo = (*Users)(nil)

func NewUsers(db *gorm.DB) *Users {
	return &Users{db: db}
}

func (r *Users) Add(ctx context.Context, user *users.User) (*users.User, error) {
	record := userRecord{Name: user.Name, Email: user.Email, Password: user.Password}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&record).Error; err != nil {
			return errors.Wrap(err, "create user")
		}
		for _, role := range user.Roles {
			roleRecord := userRoleRecord{UserID: record.ID, Role: string(role.Role), ObjectID: role.ObjectID}
			if err := tx.Create(&roleRecord).Error; err != nil {
				return errors.Wrap(err, "create user role")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, record.ID)
}

func (r *Users) Get(ctx context.Context, id int) (*users.User, error) {
	var record userRecord
	if err := r.db.WithContext(ctx).First(&record, id).Error; err != nil {
		return nil, errors.Wrap(err, "unknown user")
	}
	return r.toUser(ctx, &record)
}

func (r *Users) GetByEmail(ctx context.Context, email string) (*users.User, error) {
	var record userRecord
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&record).Error; err != nil {
		return nil, errors.Wrap(err, "unknown user")
	}
	return r.toUser(ctx, &record)
}

func (r *Users) List(ctx context.Context, page, limit int, name string) ([]*users.User, error) {
	query := r.db.WithContext(ctx).Model(&userRecord{}).Order("id")
	if name != "" {
		query = query.Where("name LIKE ?", "%"+name+"%")
	}
	if limit > 0 {
		query = query.Offset(page * limit).Limit(limit)
	}

	var records []userRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, errors.Wrap(err, "list users")
	}

	list := make([]*users.User, 0, len(records))
	for i := range records {
		user, err := r.toUser(ctx, &records[i])
		if err != nil {
			return nil, err
		}
		list = append(list, user)
	}
	return list, nil
}

func (r *Users) Update(ctx context.Context, user *users.User) (*users.User, error) {
	updates := map[string]any{}
	if user.Name != "" {
		updates["name"] = user.Name
	}
	if user.Email != "" {
		updates["email"] = user.Email
	}
	if user.Password != "" {
		updates["password"] = user.Password
	}

	if len(updates) > 0 {
		result := r.db.WithContext(ctx).Model(&userRecord{}).Where("id = ?", user.ID).Updates(updates)
		if result.Error != nil {
			return nil, errors.Wrap(result.Error, "update user")
		}
		if result.RowsAffected == 0 {
			return nil, errors.New("unknown user")
		}
	}
	return r.Get(ctx, user.ID)
}

func (r *Users) toUser(ctx context.Context, record *userRecord) (*users.User, error) {
	var roleRecords []userRoleRecord
	if err := r.db.WithContext(ctx).Where("user_id = ?", record.ID).Find(&roleRecords).Error; err != nil {
		return nil, errors.Wrap(err, "load user roles")
	}

	roles := make([]users.RoleAssignment, 0, len(roleRecords))
	for _, rr := range roleRecords {
		roles = append(roles, users.RoleAssignment{Role: users.Role(rr.Role), ObjectID: rr.ObjectID})
	}

	return &users.User{
		ID:       record.ID,
		Name:     record.Name,
		Email:    record.Email,
		Password: record.Password,
		Roles:    roles,
	}, nil
}
