package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hotfcs/mes-server/internal/mes/service"
	"github.com/hotfcs/mes-server/internal/mes/testutil"
)

func setupRoutingHandlerTest(t *testing.T) *gin.Engine {
	t.Helper()
	st := testutil.NewTestStore(t)
	services := service.NewServices(st, nil)
	h := NewRoutingHandler(services.Routing)

	router := testutil.SetupRouter()
	api := router.Group("/api/v1/routings")
	api.GET("", h.List)
	api.POST("", h.Create)
	api.GET("/:id", h.Get)
	api.DELETE("/:id", h.Delete)
	api.GET("/:id/steps", h.ListSteps)
	api.POST("/:id/steps", h.AppendStep)
	api.PUT("/:id/steps", h.SaveSteps)
	api.PUT("/:id/steps/:stepId", h.UpdateStep)
	api.DELETE("/:id/steps/:stepId", h.DeleteStep)
	api.POST("/:id/steps/:stepId/move", h.MoveStep)
	return router
}

// TestRoutingCreateAndGet tests routing creation and the response envelope
func TestRoutingCreateAndGet(t *testing.T) {
	router := setupRoutingHandlerTest(t)

	body := map[string]interface{}{"code": "RT100", "name": "센서 조립 라우팅"}
	w := testutil.DoRequest(router, http.MethodPost, "/api/v1/routings", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	if resp["code"].(float64) != 0 || resp["message"] != "success" {
		t.Fatalf("unexpected envelope %v", resp)
	}
	data := resp["data"].(map[string]interface{})
	id := int64(data["id"].(float64))

	w = testutil.DoRequest(router, http.MethodGet, fmt.Sprintf("/api/v1/routings/%d", id), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	resp = testutil.ParseResponse(w)
	if resp["data"].(map[string]interface{})["code"] != "RT100" {
		t.Fatalf("unexpected routing %v", resp["data"])
	}
}

// TestRoutingCreateValidation tests the binding error envelope
func TestRoutingCreateValidation(t *testing.T) {
	router := setupRoutingHandlerTest(t)

	w := testutil.DoRequest(router, http.MethodPost, "/api/v1/routings", map[string]interface{}{"code": "RT100"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	resp := testutil.ParseResponse(w)
	if resp["code"].(float64) != 10001 {
		t.Fatalf("expected code 10001, got %v", resp["code"])
	}
}

// TestRoutingDuplicateCode tests the business error envelope
func TestRoutingDuplicateCode(t *testing.T) {
	router := setupRoutingHandlerTest(t)

	body := map[string]interface{}{"code": "RT100", "name": "센서 조립 라우팅"}
	testutil.DoRequest(router, http.MethodPost, "/api/v1/routings", body)
	w := testutil.DoRequest(router, http.MethodPost, "/api/v1/routings", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	resp := testutil.ParseResponse(w)
	if resp["code"].(float64) != 10004 {
		t.Fatalf("expected code 10004, got %v", resp["code"])
	}
}

// TestRoutingNotFound tests the 404 envelope
func TestRoutingNotFound(t *testing.T) {
	router := setupRoutingHandlerTest(t)

	w := testutil.DoRequest(router, http.MethodGet, "/api/v1/routings/9999", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	resp := testutil.ParseResponse(w)
	if resp["code"].(float64) != 10002 {
		t.Fatalf("expected code 10002, got %v", resp["code"])
	}
}

// TestStepAppendMoveDelete tests the step endpoints end to end
func TestStepAppendMoveDelete(t *testing.T) {
	router := setupRoutingHandlerTest(t)

	w := testutil.DoRequest(router, http.MethodPost, "/api/v1/routings", map[string]interface{}{"code": "RT100", "name": "센서 조립 라우팅"})
	routingID := int64(testutil.ParseResponse(w)["data"].(map[string]interface{})["id"].(float64))
	base := fmt.Sprintf("/api/v1/routings/%d/steps", routingID)

	// 스텝 2개 추가
	w = testutil.DoRequest(router, http.MethodPost, base, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	first := testutil.ParseResponse(w)["data"].(map[string]interface{})
	firstID := int64(first["id"].(float64))
	testutil.DoRequest(router, http.MethodPost, base, nil)

	// 아래로 이동
	w = testutil.DoRequest(router, http.MethodPost, fmt.Sprintf("%s/%d/move", base, firstID), map[string]interface{}{"direction": "down"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// 잘못된 방향은 바인딩 단계에서 거부
	w = testutil.DoRequest(router, http.MethodPost, fmt.Sprintf("%s/%d/move", base, firstID), map[string]interface{}{"direction": "left"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid direction, got %d", w.Code)
	}

	// 삭제 후 1개 남는다
	w = testutil.DoRequest(router, http.MethodDelete, fmt.Sprintf("%s/%d", base, firstID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	w = testutil.DoRequest(router, http.MethodGet, base, nil)
	steps := testutil.ParseResponse(w)["data"].([]interface{})
	if len(steps) != 1 {
		t.Fatalf("expected 1 step, got %d", len(steps))
	}
	if steps[0].(map[string]interface{})["sequence"].(float64) != 1 {
		t.Fatalf("expected renumbered sequence 1, got %v", steps[0].(map[string]interface{})["sequence"])
	}
}

// TestSaveStepsValidationEnvelope tests the atomic save failure response
func TestSaveStepsValidationEnvelope(t *testing.T) {
	router := setupRoutingHandlerTest(t)

	w := testutil.DoRequest(router, http.MethodPost, "/api/v1/routings", map[string]interface{}{"code": "RT100", "name": "센서 조립 라우팅"})
	routingID := int64(testutil.ParseResponse(w)["data"].(map[string]interface{})["id"].(float64))

	body := []map[string]interface{}{
		{"line": "1라인", "process": "SMT 실장", "mainEquipment": ""},
	}
	w = testutil.DoRequest(router, http.MethodPut, fmt.Sprintf("/api/v1/routings/%d/steps", routingID), body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	resp := testutil.ParseResponse(w)
	if resp["code"].(float64) != 10004 {
		t.Fatalf("expected code 10004, got %v", resp["code"])
	}
}
