package handler_test

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/bitfantasy/parttrack/internal/config"
	"github.com/bitfantasy/parttrack/internal/handler"
	"github.com/bitfantasy/parttrack/internal/testutil"
)

func setupAPI(t *testing.T) *gin.Engine {
	t.Helper()
	svc := testutil.NewServices(testutil.NewMemStore())
	h := handler.NewHandlers(svc, nil)
	r := testutil.SetupRouter()
	cfg := &config.Config{JWT: config.JWTConfig{Secret: testutil.JWTSecret}}
	handler.RegisterRoutes(r, h, cfg)
	return r
}

func createPart(t *testing.T, r *gin.Engine, token string, body map[string]interface{}) string {
	t.Helper()
	w := testutil.DoRequest(r, "POST", "/api/v1/parts", body, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("create part %v: status %d body %s", body["name"], w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	return data["id"].(string)
}

func TestRequestsWithoutTokenAreRejected(t *testing.T) {
	r := setupAPI(t)

	w := testutil.DoRequest(r, "GET", "/api/v1/parts", nil, "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}

	w = testutil.DoRequest(r, "GET", "/api/v1/parts", nil, "not-a-jwt")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("garbage token status = %d, want 401", w.Code)
	}
}

func TestHealthEndpointsAreOpen(t *testing.T) {
	r := setupAPI(t)

	for _, path := range []string{"/health/live", "/health/ready"} {
		w := testutil.DoRequest(r, "GET", path, nil, "")
		if w.Code != http.StatusOK {
			t.Errorf("GET %s = %d, want 200", path, w.Code)
		}
	}
}

func TestPartLifecycle(t *testing.T) {
	r := setupAPI(t)
	token := testutil.DefaultTestToken()

	id := createPart(t, r, token, map[string]interface{}{
		"name":        "Widget",
		"description": "a widget",
		"buildable":   true,
	})

	w := testutil.DoRequest(r, "GET", "/api/v1/parts/"+id, nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("get part: %d body %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if data["name"] != "Widget" {
		t.Errorf("name = %v", data["name"])
	}

	w = testutil.DoRequest(r, "PUT", "/api/v1/parts/"+id, map[string]interface{}{
		"description": "updated",
	}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("update part: %d body %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(r, "DELETE", "/api/v1/parts/"+id, nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("delete part: %d", w.Code)
	}

	w = testutil.DoRequest(r, "GET", "/api/v1/parts/"+id, nil, token)
	if w.Code != http.StatusNotFound {
		t.Errorf("get deleted part = %d, want 404", w.Code)
	}
}

func TestCreatePartValidation(t *testing.T) {
	r := setupAPI(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(r, "POST", "/api/v1/parts", map[string]interface{}{
		"description": "no name",
	}, token)
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing name status = %d, want 400", w.Code)
	}

	createPart(t, r, token, map[string]interface{}{"name": "Widget"})
	w = testutil.DoRequest(r, "POST", "/api/v1/parts", map[string]interface{}{
		"name": "Widget",
	}, token)
	if w.Code != http.StatusConflict {
		t.Errorf("duplicate name status = %d, want 409", w.Code)
	}
}

func TestBomEndpoints(t *testing.T) {
	r := setupAPI(t)
	token := testutil.DefaultTestToken()

	widget := createPart(t, r, token, map[string]interface{}{"name": "Widget", "buildable": true})
	screw := createPart(t, r, token, map[string]interface{}{"name": "Screw"})

	addItem := map[string]interface{}{"sub_part_id": screw, "quantity": 4, "note": "corner screws"}
	w := testutil.DoRequest(r, "POST", "/api/v1/parts/"+widget+"/bom", addItem, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("add item: %d body %s", w.Code, w.Body.String())
	}

	// same edge again conflicts
	w = testutil.DoRequest(r, "POST", "/api/v1/parts/"+widget+"/bom", addItem, token)
	if w.Code != http.StatusConflict {
		t.Errorf("duplicate edge status = %d, want 409", w.Code)
	}

	// the reverse edge would close a loop
	w = testutil.DoRequest(r, "POST", "/api/v1/parts/"+screw+"/bom", map[string]interface{}{
		"sub_part_id": widget, "quantity": 1,
	}, token)
	if w.Code != http.StatusBadRequest {
		t.Errorf("cycle status = %d, want 400", w.Code)
	}

	w = testutil.DoRequest(r, "GET", "/api/v1/parts/"+widget+"/bom", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("list bom: %d", w.Code)
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if int(data["bom_count"].(float64)) != 1 {
		t.Errorf("bom_count = %v", data["bom_count"])
	}

	w = testutil.DoRequest(r, "GET", "/api/v1/parts/"+screw+"/used-in", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("used-in: %d", w.Code)
	}
	data = testutil.ParseResponse(w)["data"].(map[string]interface{})
	if int(data["used_in_count"].(float64)) != 1 {
		t.Errorf("used_in_count = %v", data["used_in_count"])
	}
}

func TestBomExportCSV(t *testing.T) {
	r := setupAPI(t)
	token := testutil.DefaultTestToken()

	widget := createPart(t, r, token, map[string]interface{}{"name": "Widget", "buildable": true})
	screw := createPart(t, r, token, map[string]interface{}{"name": "Screw"})
	w := testutil.DoRequest(r, "POST", "/api/v1/parts/"+widget+"/bom", map[string]interface{}{
		"sub_part_id": screw, "quantity": 4,
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("add item: %d", w.Code)
	}

	w = testutil.DoRequest(r, "GET", "/api/v1/parts/"+widget+"/bom/export?format=csv", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("export: %d body %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "BOM_Widget.csv") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	body := w.Body.String()
	if !strings.HasPrefix(body, "Part,Description,Quantity,Note\n") {
		t.Errorf("missing header line:\n%s", body)
	}
	if !strings.Contains(body, "Screw,,4,") {
		t.Errorf("missing row:\n%s", body)
	}
}

func TestStockEndpoints(t *testing.T) {
	r := setupAPI(t)
	token := testutil.DefaultTestToken()

	screw := createPart(t, r, token, map[string]interface{}{"name": "Screw"})

	w := testutil.DoRequest(r, "POST", "/api/v1/parts/"+screw+"/stock-entries", map[string]interface{}{
		"quantity": 100, "location": "bin-7",
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("add entry: %d body %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(r, "POST", "/api/v1/parts/"+screw+"/stock-entries", map[string]interface{}{
		"quantity": -1,
	}, token)
	if w.Code != http.StatusBadRequest {
		t.Errorf("negative quantity status = %d, want 400", w.Code)
	}

	w = testutil.DoRequest(r, "GET", "/api/v1/parts/"+screw+"/stock", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("stock summary: %d", w.Code)
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if int(data["total_stock"].(float64)) != 100 {
		t.Errorf("total_stock = %v", data["total_stock"])
	}
	if int(data["available_stock"].(float64)) != 100 {
		t.Errorf("available_stock = %v", data["available_stock"])
	}
}

func TestBuildEndpoints(t *testing.T) {
	r := setupAPI(t)
	token := testutil.DefaultTestToken()

	widget := createPart(t, r, token, map[string]interface{}{"name": "Widget", "buildable": true})
	screw := createPart(t, r, token, map[string]interface{}{"name": "Screw"})
	w := testutil.DoRequest(r, "POST", "/api/v1/parts/"+widget+"/bom", map[string]interface{}{
		"sub_part_id": screw, "quantity": 4,
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("add item: %d", w.Code)
	}

	w = testutil.DoRequest(r, "POST", "/api/v1/builds", map[string]interface{}{
		"part_id": widget, "quantity": 3, "title": "first run",
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("create build: %d body %s", w.Code, w.Body.String())
	}
	buildID := testutil.ParseResponse(w)["data"].(map[string]interface{})["id"].(string)

	// the build claims 4*3 screws
	w = testutil.DoRequest(r, "GET", "/api/v1/parts/"+screw+"/allocations", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("allocations: %d", w.Code)
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if int(data["total_allocated"].(float64)) != 12 {
		t.Errorf("total_allocated = %v", data["total_allocated"])
	}

	for _, step := range []string{"start", "complete"} {
		w = testutil.DoRequest(r, "POST", fmt.Sprintf("/api/v1/builds/%s/%s", buildID, step), nil, token)
		if w.Code != http.StatusOK {
			t.Fatalf("%s build: %d body %s", step, w.Code, w.Body.String())
		}
	}

	w = testutil.DoRequest(r, "GET", "/api/v1/parts/"+screw+"/allocations", nil, token)
	data = testutil.ParseResponse(w)["data"].(map[string]interface{})
	if int(data["total_allocated"].(float64)) != 0 {
		t.Errorf("total_allocated after complete = %v", data["total_allocated"])
	}

	// non-buildable parts cannot be built
	w = testutil.DoRequest(r, "POST", "/api/v1/builds", map[string]interface{}{
		"part_id": screw, "quantity": 1,
	}, token)
	if w.Code != http.StatusBadRequest {
		t.Errorf("build of non-buildable part status = %d, want 400", w.Code)
	}
}

func TestCategoryEndpoints(t *testing.T) {
	r := setupAPI(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(r, "POST", "/api/v1/categories", map[string]interface{}{
		"name": "Electronics",
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("create category: %d body %s", w.Code, w.Body.String())
	}
	catID := testutil.ParseResponse(w)["data"].(map[string]interface{})["id"].(string)

	createPart(t, r, token, map[string]interface{}{"name": "Resistor", "category_id": catID})

	w = testutil.DoRequest(r, "GET", "/api/v1/categories/"+catID, nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("get category: %d", w.Code)
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if int(data["part_count"].(float64)) != 1 {
		t.Errorf("part_count = %v", data["part_count"])
	}
	if data["has_parts"] != true {
		t.Errorf("has_parts = %v", data["has_parts"])
	}

	w = testutil.DoRequest(r, "GET", "/api/v1/categories/missing", nil, token)
	if w.Code != http.StatusNotFound {
		t.Errorf("missing category status = %d, want 404", w.Code)
	}
}
