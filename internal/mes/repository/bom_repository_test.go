package repository

import (
	"context"
	"testing"

	"github.com/hotfcs/mes-server/internal/mes/entity"
	"github.com/hotfcs/mes-server/internal/mes/testutil"
)

func seedBOM(t *testing.T, repo *BOMRepository, productCode string) *entity.BOM {
	t.Helper()
	bom := &entity.BOM{
		ProductCode: productCode,
		ProductName: "스마트 센서 모듈",
		RoutingID:   1,
		RoutingName: "센서 조립 라우팅",
		Revision:    "Rev.01",
		Status:      entity.StatusActive,
	}
	if err := repo.Create(context.Background(), bom); err != nil {
		t.Fatalf("Create: %v", err)
	}
	return bom
}

// TestBOMRepositoryCRUD tests header create, find and list
func TestBOMRepositoryCRUD(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewBOMRepository(db)
	ctx := context.Background()

	bom := seedBOM(t, repo, "P-1001")
	if bom.ID == 0 {
		t.Fatalf("expected assigned id")
	}

	found, err := repo.FindByID(ctx, bom.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found.ProductCode != "P-1001" {
		t.Fatalf("expected P-1001, got %q", found.ProductCode)
	}

	seedBOM(t, repo, "P-1002")
	boms, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(boms) != 2 {
		t.Fatalf("expected 2 boms, got %d", len(boms))
	}
}

// TestBOMRepositoryReplaceItems tests the transactional item swap and temp id reset
func TestBOMRepositoryReplaceItems(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewBOMRepository(db)
	ctx := context.Background()

	bom := seedBOM(t, repo, "P-1001")

	err := repo.ReplaceItems(ctx, bom.ID, []entity.BOMItem{
		{ID: entity.TempIDThreshold + 1, ProcessSequence: 1, ProcessName: "SMT 실장", MaterialCode: "M-2001", MaterialName: "PCB 기판", Quantity: 1},
		{ProcessSequence: 2, ProcessName: "검사", MaterialCode: "M-2002", MaterialName: "칩 저항", Quantity: 4},
	})
	if err != nil {
		t.Fatalf("ReplaceItems: %v", err)
	}

	items, err := repo.ListItemsByBOM(ctx, bom.ID)
	if err != nil {
		t.Fatalf("ListItemsByBOM: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	for _, it := range items {
		if it.ID == 0 || entity.IsTempID(it.ID) {
			t.Fatalf("expected permanent id, got %d", it.ID)
		}
		if it.BOMID != bom.ID {
			t.Fatalf("expected bom id %d, got %d", bom.ID, it.BOMID)
		}
	}

	// 더 작은 집합으로 다시 교체하면 이전 행이 남지 않는다
	err = repo.ReplaceItems(ctx, bom.ID, []entity.BOMItem{
		{ProcessSequence: 1, ProcessName: "SMT 실장", MaterialCode: "M-2003", MaterialName: "커넥터", Quantity: 2},
	})
	if err != nil {
		t.Fatalf("ReplaceItems: %v", err)
	}
	items, _ = repo.ListItemsByBOM(ctx, bom.ID)
	if len(items) != 1 {
		t.Fatalf("expected 1 item after replace, got %d", len(items))
	}
	if items[0].MaterialCode != "M-2003" {
		t.Fatalf("expected replaced row, got %q", items[0].MaterialCode)
	}
}

// TestBOMRepositoryDeleteCascades tests that header deletion removes its items
func TestBOMRepositoryDeleteCascades(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewBOMRepository(db)
	ctx := context.Background()

	bom := seedBOM(t, repo, "P-1001")
	if err := repo.ReplaceItems(ctx, bom.ID, []entity.BOMItem{
		{ProcessSequence: 1, ProcessName: "SMT 실장", MaterialCode: "M-2001", MaterialName: "PCB 기판", Quantity: 1},
	}); err != nil {
		t.Fatalf("ReplaceItems: %v", err)
	}

	if err := repo.Delete(ctx, bom.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	items, err := repo.ListItemsByBOM(ctx, bom.ID)
	if err != nil {
		t.Fatalf("ListItemsByBOM: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected cascaded deletion, got %d items", len(items))
	}
}
