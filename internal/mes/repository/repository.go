package repository

import "gorm.io/gorm"

// Repositories 영속 저장소 집합
type Repositories struct {
	BOM *BOMRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		BOM: NewBOMRepository(db),
	}
}
