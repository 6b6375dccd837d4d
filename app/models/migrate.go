package models

import "github.com/jinzhu/gorm"

// AutoMigrate creates or updates the three application tables. The schema is
// migration-free: the store derives it from the model structs.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&User{}, &BlogPost{}, &Comment{}).Error
}
