package entity

import "gorm.io/gorm"

// AutoMigrate 영속 BOM 테이블 마이그레이션
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&BOM{},
		&BOMItem{},
	)
}
