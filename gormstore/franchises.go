package gormstore

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/jwtpizza/pizza-service/franchise"
	"github.com/jwtpizza/pizza-service/users"
)

type Franchises struct {
	db *gorm.DB
}

var _ franchise.Repo = (*Franchises)(nil)

func NewFranchises(db *gorm.DB) *Franchises {
	return &Franchises{db: db}
}

func (r *Franchises) Create(ctx context.Context, f *franchise.Franchise) (*franchise.Franchise, error) {
	var created franchiseRecord

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		created = franchiseRecord{Name: f.Name}
		if err := tx.Create(&created).Error; err != nil {
			return errors.Wrap(err, "create franchise")
		}

		for _, admin := range f.Admins {
			var user userRecord
			if err := tx.Where("email = ?", admin.Email).First(&user).Error; err != nil {
				return errors.Wrapf(err, "unknown admin %s", admin.Email)
			}
			adminRecord := franchiseAdminRecord{FranchiseID: created.ID, UserID: user.ID}
			if err := tx.Create(&adminRecord).Error; err != nil {
				return errors.Wrap(err, "create franchise admin")
			}
			// the listed admin also gains a franchisee role scoped to this franchise
			roleRecord := userRoleRecord{UserID: user.ID, Role: string(users.RoleFranchisee), ObjectID: created.ID}
			if err := tx.Create(&roleRecord).Error; err != nil {
				return errors.Wrap(err, "create franchisee role")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, created.ID)
}

func (r *Franchises) Delete(ctx context.Context, franchiseID int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&storeRecord{}, "franchise_id = ?", franchiseID).Error; err != nil {
			return errors.Wrap(err, "delete stores")
		}
		if err := tx.Delete(&franchiseAdminRecord{}, "franchise_id = ?", franchiseID).Error; err != nil {
			return errors.Wrap(err, "delete franchise admins")
		}
		if err := tx.Delete(&userRoleRecord{}, "role = ? AND object_id = ?", string(users.RoleFranchisee), franchiseID).Error; err != nil {
			return errors.Wrap(err, "delete franchisee roles")
		}
		if err := tx.Delete(&franchiseRecord{}, franchiseID).Error; err != nil {
			return errors.Wrap(err, "delete franchise")
		}
		return nil
	})
}

func (r *Franchises) List(ctx context.Context, page, limit int, name string) ([]*franchise.Franchise, bool, error) {
	query := r.db.WithContext(ctx).Model(&franchiseRecord{}).Order("id")
	if name != "" {
		query = query.Where("name LIKE ?", "%"+name+"%")
	}

	more := false
	if limit > 0 {
		// fetch one extra row to detect whether more pages remain
		query = query.Offset(page * limit).Limit(limit + 1)
	}

	var records []franchiseRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, false, errors.Wrap(err, "list franchises")
	}
	if limit > 0 && len(records) > limit {
		more = true
		records = records[:limit]
	}

	list := make([]*franchise.Franchise, 0, len(records))
	for _, record := range records {
		stores, err := r.storesOf(ctx, record.ID)
		if err != nil {
			return nil, false, err
		}
		// admin rosters are omitted from the public listing
		list = append(list, &franchise.Franchise{ID: record.ID, Name: record.Name, Stores: stores})
	}
	return list, more, nil
}

func (r *Franchises) ListForUser(ctx context.Context, userID int) ([]*franchise.Franchise, error) {
	var adminRecords []franchiseAdminRecord
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&adminRecords).Error; err != nil {
		return nil, errors.Wrap(err, "list franchises for user")
	}

	list := make([]*franchise.Franchise, 0, len(adminRecords))
	for _, adminRecord := range adminRecords {
		f, err := r.Get(ctx, adminRecord.FranchiseID)
		if err != nil {
			return nil, err
		}
		list = append(list, f)
	}
	return list, nil
}

func (r *Franchises) Get(ctx context.Context, franchiseID int) (*franchise.Franchise, error) {
	var record franchiseRecord
	if err := r.db.WithContext(ctx).First(&record, franchiseID).Error; err != nil {
		return nil, errors.Wrap(err, "unknown franchise")
	}

	var adminRecords []franchiseAdminRecord
	if err := r.db.WithContext(ctx).Where("franchise_id = ?", franchiseID).Find(&adminRecords).Error; err != nil {
		return nil, errors.Wrap(err, "load franchise admins")
	}

	admins := make([]franchise.Admin, 0, len(adminRecords))
	for _, adminRecord := range adminRecords {
		var user userRecord
		if err := r.db.WithContext(ctx).First(&user, adminRecord.UserID).Error; err != nil {
			return nil, errors.Wrap(err, "load franchise admin user")
		}
		admins = append(admins, franchise.Admin{ID: user.ID, Name: user.Name, Email: user.Email})
	}

	stores, err := r.storesOf(ctx, franchiseID)
	if err != nil {
		return nil, err
	}

	return &franchise.Franchise{ID: record.ID, Name: record.Name, Admins: admins, Stores: stores}, nil
}

func (r *Franchises) CreateStore(ctx context.Context, franchiseID int, store *franchise.Store) (*franchise.Store, error) {
	var parent franchiseRecord
	if err := r.db.WithContext(ctx).First(&parent, franchiseID).Error; err != nil {
		return nil, errors.Wrap(err, "unknown franchise")
	}

	record := storeRecord{FranchiseID: franchiseID, Name: store.Name}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, errors.Wrap(err, "create store")
	}
	return &franchise.Store{ID: record.ID, FranchiseID: franchiseID, Name: record.Name}, nil
}

func (r *Franchises) DeleteStore(ctx context.Context, franchiseID, storeID int) error {
	err := r.db.WithContext(ctx).Delete(&storeRecord{}, "franchise_id = ? AND id = ?", franchiseID, storeID).Error
	if err != nil {
		return errors.Wrap(err, "delete store")
	}
	return nil
}

func (r *Franchises) storesOf(ctx context.Context, franchiseID int) ([]franchise.Store, error) {
	var records []storeRecord
	if err := r.db.WithContext(ctx).Where("franchise_id = ?", franchiseID).Order("id").Find(&records).Error; err != nil {
		return nil, errors.Wrap(err, "load stores")
	}

	stores := make([]franchise.Store, 0, len(records))
	for _, record := range records {
		stores = append(stores, franchise.Store{ID: record.ID, FranchiseID: record.FranchiseID, Name: record.Name})
	}
	return stores, nil
}
