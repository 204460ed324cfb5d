package repository

import (
	"context"

	"github.com/hotfcs/mes-server/internal/mes/entity"
	"gorm.io/gorm"
)

// BOMRepository SQL로 영속되는 BOM 헤더 저장소 (/api/mes/boms 전용)
type BOMRepository struct {
	db *gorm.DB
}

func NewBOMRepository(db *gorm.DB) *BOMRepository {
	return &BOMRepository{db: db}
}

func (r *BOMRepository) DB() *gorm.DB {
	return r.db
}

// Create BOM 헤더 생성
func (r *BOMRepository) Create(ctx context.Context, bom *entity.BOM) error {
	return r.db.WithContext(ctx).Create(bom).Error
}

// FindByID ID로 BOM 헤더 조회
func (r *BOMRepository) FindByID(ctx context.Context, id int64) (*entity.BOM, error) {
	var bom entity.BOM
	err := r.db.WithContext(ctx).First(&bom, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &bom, nil
}

// List BOM 헤더 전체 목록 (최신 생성 순)
func (r *BOMRepository) List(ctx context.Context) ([]entity.BOM, error) {
	var boms []entity.BOM
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&boms).Error
	return boms, err
}

// ListItems BOM 자재 행 전체 목록
func (r *BOMRepository) ListItems(ctx context.Context) ([]entity.BOMItem, error) {
	var items []entity.BOMItem
	err := r.db.WithContext(ctx).Order("bom_id ASC, process_sequence ASC").Find(&items).Error
	return items, err
}

// ListItemsByBOM BOM의 자재 행 목록
func (r *BOMRepository) ListItemsByBOM(ctx context.Context, bomID int64) ([]entity.BOMItem, error) {
	var items []entity.BOMItem
	err := r.db.WithContext(ctx).
		Where("bom_id = ?", bomID).
		Order("process_sequence ASC").
		Find(&items).Error
	return items, err
}

// Delete BOM 헤더 삭제. 자재 행을 같은 트랜잭션에서 함께 삭제한다.
func (r *BOMRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&entity.BOMItem{}, "bom_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.BOM{}, "id = ?", id).Error
	})
}

// ReplaceItems BOM의 자재 행 집합 교체 (전량 삭제 후 삽입, 단일 트랜잭션)
func (r *BOMRepository) ReplaceItems(ctx context.Context, bomID int64, items []entity.BOMItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&entity.BOMItem{}, "bom_id = ?", bomID).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		for i := range items {
			items[i].BOMID = bomID
			if entity.IsTempID(items[i].ID) {
				items[i].ID = 0
			}
		}
		return tx.Create(&items).Error
	})
}
