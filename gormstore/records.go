package gormstore

import "time"

type userRecord struct {
	ID       int    `gorm:"primaryKey"`
	Name     string `gorm:"index"`
	Email    string `gorm:"uniqueIndex"`
	Password string
}

type userRoleRecord struct {
	ID       int    `gorm:"primaryKey"`
	UserID   int    `gorm:"index"`
	Role     string `gorm:"index"`
	ObjectID int
}

type franchiseRecord struct {
	ID   int    `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex"`
}

type franchiseAdminRecord struct {
	ID          int `gorm:"primaryKey"`
	FranchiseID int `gorm:"index"`
	UserID      int `gorm:"index"`
}

type storeRecord struct {
	ID          int `gorm:"primaryKey"`
	FranchiseID int `gorm:"index"`
	Name        string
}

type menuItemRecord struct {
	ID          int `gorm:"primaryKey"`
	Title       string
	Description string
	Image       string
	Price       float64
}

type orderRecord struct {
	ID          int `gorm:"primaryKey"`
	DinerID     int `gorm:"index"`
	FranchiseID int
	StoreID     int
	Date        time.Time
}

type orderItemRecord struct {
	ID          int `gorm:"primaryKey"`
	OrderID     int `gorm:"index"`
	MenuID      int
	Description string
	Price       float64
}

// authRecord marks a token as currently logged in. Deleting the row is the
// only way a token becomes invalid.
type authRecord struct {
	Token     string `gorm:"primaryKey"`
	CreatedAt time.Time
}
