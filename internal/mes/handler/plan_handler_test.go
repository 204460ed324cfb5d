package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hotfcs/mes-server/internal/mes/service"
	"github.com/hotfcs/mes-server/internal/mes/testutil"
)

func setupPlanHandlerTest(t *testing.T) *gin.Engine {
	t.Helper()
	st := testutil.NewTestStore(t)
	services := service.NewServices(st, nil)
	h := NewPlanHandler(services.Plan)

	router := testutil.SetupRouter()
	v1 := router.Group("/api/v1")
	plans := v1.Group("/plans")
	plans.GET("", h.ListPlans)
	plans.POST("", h.CreatePlan)
	plans.GET("/:id", h.GetPlan)
	plans.PUT("/:id", h.UpdatePlan)
	plans.DELETE("/:id", h.DeletePlan)
	orders := v1.Group("/work-orders")
	orders.GET("", h.ListWorkOrders)
	orders.POST("", h.CreateWorkOrder)
	orders.GET("/:id", h.GetWorkOrder)
	orders.PUT("/:id", h.UpdateWorkOrder)
	orders.DELETE("/:id", h.DeleteWorkOrder)
	orders.POST("/:id/results", h.RecordResult)
	v1.GET("/results", h.ListResults)
	return router
}

func createPlan(t *testing.T, router *gin.Engine, qty float64) map[string]interface{} {
	t.Helper()
	body := map[string]interface{}{"productCode": "P-1001", "planQuantity": qty}
	w := testutil.DoRequest(router, http.MethodPost, "/api/v1/plans", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	return testutil.ParseResponse(w)["data"].(map[string]interface{})
}

// TestPlanOrderReconcileOverHTTP drives the plan status through the order endpoints
func TestPlanOrderReconcileOverHTTP(t *testing.T) {
	router := setupPlanHandlerTest(t)

	plan := createPlan(t, router, 1000)
	planID := int64(plan["id"].(float64))
	planCode := plan["planCode"].(string)
	if plan["status"] != "계획" {
		t.Fatalf("expected 계획, got %v", plan["status"])
	}

	// 지시 400 등록 → 진행중
	w := testutil.DoRequest(router, http.MethodPost, "/api/v1/work-orders",
		map[string]interface{}{"planCode": planCode, "orderQuantity": 400})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	w = testutil.DoRequest(router, http.MethodGet, fmt.Sprintf("/api/v1/plans/%d", planID), nil)
	if got := testutil.ParseResponse(w)["data"].(map[string]interface{})["status"]; got != "진행중" {
		t.Fatalf("expected 진행중, got %v", got)
	}

	// 지시 600 추가 → 완료
	testutil.DoRequest(router, http.MethodPost, "/api/v1/work-orders",
		map[string]interface{}{"planCode": planCode, "orderQuantity": 600})
	w = testutil.DoRequest(router, http.MethodGet, fmt.Sprintf("/api/v1/plans/%d", planID), nil)
	if got := testutil.ParseResponse(w)["data"].(map[string]interface{})["status"]; got != "완료" {
		t.Fatalf("expected 완료, got %v", got)
	}
}

// TestWorkOrderUnknownPlanCode tests the write-time referential check over HTTP
func TestWorkOrderUnknownPlanCode(t *testing.T) {
	router := setupPlanHandlerTest(t)

	w := testutil.DoRequest(router, http.MethodPost, "/api/v1/work-orders",
		map[string]interface{}{"planCode": "PLAN-9999-999", "orderQuantity": 10})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	resp := testutil.ParseResponse(w)
	if resp["code"].(float64) != 10004 {
		t.Fatalf("expected code 10004, got %v", resp["code"])
	}
}

// TestDeletePlanGuardOverHTTP tests deletion refusal while orders reference the plan
func TestDeletePlanGuardOverHTTP(t *testing.T) {
	router := setupPlanHandlerTest(t)

	plan := createPlan(t, router, 100)
	planID := int64(plan["id"].(float64))
	testutil.DoRequest(router, http.MethodPost, "/api/v1/work-orders",
		map[string]interface{}{"planCode": plan["planCode"], "orderQuantity": 50})

	w := testutil.DoRequest(router, http.MethodDelete, fmt.Sprintf("/api/v1/plans/%d", planID), nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

// TestRecordResultOverHTTP tests the result endpoint advancing the order status
func TestRecordResultOverHTTP(t *testing.T) {
	router := setupPlanHandlerTest(t)

	plan := createPlan(t, router, 1000)
	w := testutil.DoRequest(router, http.MethodPost, "/api/v1/work-orders",
		map[string]interface{}{"planCode": plan["planCode"], "orderQuantity": 100})
	order := testutil.ParseResponse(w)["data"].(map[string]interface{})
	orderID := int64(order["id"].(float64))

	w = testutil.DoRequest(router, http.MethodPost, fmt.Sprintf("/api/v1/work-orders/%d/results", orderID),
		map[string]interface{}{"quantity": 100})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(router, http.MethodGet, fmt.Sprintf("/api/v1/work-orders/%d", orderID), nil)
	if got := testutil.ParseResponse(w)["data"].(map[string]interface{})["status"]; got != "완료" {
		t.Fatalf("expected 완료, got %v", got)
	}

	w = testutil.DoRequest(router, http.MethodGet, "/api/v1/results?orderCode="+order["orderCode"].(string), nil)
	results := testutil.ParseResponse(w)["data"].([]interface{})
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
}
