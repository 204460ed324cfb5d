package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hotfcs/mes-server/internal/mes/service"
	"github.com/hotfcs/mes-server/internal/mes/testutil"
)

func setupBOMHandlerTest(t *testing.T) (*gin.Engine, int64) {
	t.Helper()
	st := testutil.NewTestStore(t)
	services := service.NewServices(st, nil)

	// BOM은 라우팅을 참조하므로 스텝이 있는 라우팅을 하나 준비한다
	r, err := services.Routing.Create(service.CreateRoutingRequest{Code: "RT100", Name: "센서 조립 라우팅"})
	if err != nil {
		t.Fatalf("Create routing: %v", err)
	}
	if _, err := services.Routing.AppendStep(r.ID); err != nil {
		t.Fatalf("AppendStep: %v", err)
	}

	h := NewBOMHandler(services.BOM)
	router := testutil.SetupRouter()
	api := router.Group("/api/v1/boms")
	api.GET("", h.List)
	api.POST("", h.Create)
	api.GET("/:id", h.Get)
	api.DELETE("/:id", h.Delete)
	api.GET("/:id/items", h.ListItems)
	api.POST("/:id/items", h.AddItem)
	api.PUT("/:id/items", h.SaveItems)
	api.PUT("/:id/items/:itemId", h.UpdateItem)
	api.DELETE("/:id/items/:itemId", h.DeleteItem)
	return router, r.ID
}

// TestBOMCreateAndItemFlow drives revision creation and item editing over HTTP
func TestBOMCreateAndItemFlow(t *testing.T) {
	router, routingID := setupBOMHandlerTest(t)

	w := testutil.DoRequest(router, http.MethodPost, "/api/v1/boms",
		map[string]interface{}{"productCode": "P-1001", "routingId": routingID})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	bom := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if bom["revision"] != "Rev.01" {
		t.Fatalf("expected Rev.01, got %v", bom["revision"])
	}
	bomID := int64(bom["id"].(float64))
	base := fmt.Sprintf("/api/v1/boms/%d/items", bomID)

	// 공정 미선택은 거부된다
	w = testutil.DoRequest(router, http.MethodPost, base, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without processSequence, got %d", w.Code)
	}

	w = testutil.DoRequest(router, http.MethodPost, base+"?processSequence=1", nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	item := testutil.ParseResponse(w)["data"].(map[string]interface{})
	itemID := int64(item["id"].(float64))
	if item["materialCode"] != "M-2001" {
		t.Fatalf("expected seeded material, got %v", item["materialCode"])
	}

	// 자재 변경 시 자재명이 함께 갱신된다
	w = testutil.DoRequest(router, http.MethodPut, fmt.Sprintf("%s/%d", base, itemID),
		map[string]interface{}{"materialCode": "M-2004"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	updated := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if updated["materialName"] != "하우징" {
		t.Fatalf("expected refreshed material name, got %v", updated["materialName"])
	}

	w = testutil.DoRequest(router, http.MethodDelete, fmt.Sprintf("%s/%d", base, itemID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	w = testutil.DoRequest(router, http.MethodGet, base, nil)
	if items := testutil.ParseResponse(w)["data"]; items != nil {
		if arr, ok := items.([]interface{}); ok && len(arr) != 0 {
			t.Fatalf("expected empty items, got %d", len(arr))
		}
	}
}

// TestBOMSaveItemsValidationEnvelope tests the atomic batch save failure response
func TestBOMSaveItemsValidationEnvelope(t *testing.T) {
	router, routingID := setupBOMHandlerTest(t)

	w := testutil.DoRequest(router, http.MethodPost, "/api/v1/boms",
		map[string]interface{}{"productCode": "P-1001", "routingId": routingID})
	bomID := int64(testutil.ParseResponse(w)["data"].(map[string]interface{})["id"].(float64))

	body := []map[string]interface{}{
		{"processSequence": 1, "processName": "SMT 실장", "materialCode": "M-2001", "materialName": "PCB 기판", "quantity": 0},
	}
	w = testutil.DoRequest(router, http.MethodPut, fmt.Sprintf("/api/v1/boms/%d/items", bomID), body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	resp := testutil.ParseResponse(w)
	if resp["code"].(float64) != 10004 {
		t.Fatalf("expected code 10004, got %v", resp["code"])
	}
}
