package controllerImp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"agroscore/pkg/middleware"
	"agroscore/pkg/recommend/serviceImp"
)

func newServer() *echo.Echo {
	h := New(serviceImp.NewRecommendService(serviceImp.Deps{}))
	e := echo.New()
	e.Use(middleware.RequestID())
	e.POST("/score", h.Score)
	e.POST("/report", h.Report)
	e.POST("/seasonal", h.Seasonal)
	e.POST("/fields/:id/report", h.FieldReport)
	e.GET("/crops", h.Crops)
	e.GET("/crops/:id", h.Crop)
	e.GET("/locations/resolve", h.ResolveLocation)
	return e
}

func do(e *echo.Echo, method, path, body string, hdr map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestReport(t *testing.T) {
	e := newServer()
	id := "6f1c1c55-8b0c-4a53-9f41-2f7d3a9f0c11"
	rec := do(e, http.MethodPost, "/report", `{"ph":6.5,"nitrogen":160,"phosphorus":15,"potassium":150,"location":"Nashik"}`,
		map[string]string{middleware.HeaderRequestID: id})
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body)
	}
	var out struct {
		ReportID string `json:"report_id"`
		Report   struct {
			CropRecommendations []struct {
				Rank        int    `json:"rank"`
				CropID      string `json:"cropId"`
				Suitability int    `json:"suitability"`
			} `json:"cropRecommendations"`
			Source string `json:"source"`
		} `json:"report"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.ReportID != id || rec.Header().Get(middleware.HeaderRequestID) != id {
		t.Errorf("report_id %q header %q", out.ReportID, rec.Header().Get(middleware.HeaderRequestID))
	}
	if len(out.Report.CropRecommendations) != 10 || out.Report.CropRecommendations[0].Suitability != 100 {
		t.Errorf("crops = %+v", out.Report.CropRecommendations)
	}
	if out.Report.Source != "deterministic" {
		t.Errorf("source = %q", out.Report.Source)
	}
}

func TestErrorMapping(t *testing.T) {
	e := newServer()
	tests := []struct {
		name   string
		method string
		path   string
		body   string
		code   int
	}{
		{"missing ph", http.MethodPost, "/report", `{"nitrogen":160,"phosphorus":15,"potassium":150}`, http.StatusBadRequest},
		{"text nitrogen", http.MethodPost, "/score", `{"ph":6.5,"nitrogen":"lots","phosphorus":15,"potassium":150}`, http.StatusBadRequest},
		{"bad json", http.MethodPost, "/report", `{"ph":`, http.StatusBadRequest},
		{"unknown crop", http.MethodGet, "/crops/castor", "", http.StatusNotFound},
		{"seasonal without weather", http.MethodPost, "/seasonal", `{"locale":"hi"}`, http.StatusBadRequest},
		{"bad field id", http.MethodPost, "/fields/abc/report", "", http.StatusBadRequest},
		{"bad days", http.MethodPost, "/fields/1/report?days=-2", "", http.StatusBadRequest},
		{"field reports not wired", http.MethodPost, "/fields/1/report", "", http.StatusInternalServerError},
	}
	for _, tc := range tests {
		rec := do(e, tc.method, tc.path, tc.body, nil)
		if rec.Code != tc.code {
			t.Errorf("%s: status %d, want %d (%s)", tc.name, rec.Code, tc.code, rec.Body)
		}
	}

	rec := do(e, http.MethodPost, "/report", `{"ph":6.5,"nitrogen":160,"phosphorus":15}`, nil)
	var body map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body["field"] != "potassium" {
		t.Errorf("error body = %v", body)
	}
}

func TestScoreAndLookups(t *testing.T) {
	e := newServer()
	rec := do(e, http.MethodPost, "/score", `{"ph":6.5,"nitrogen":160,"phosphorus":15,"potassium":150,"locale":"hi"}`, nil)
	var scored struct {
		Crops []struct {
			CropID string `json:"cropId"`
			Name   string `json:"name"`
		} `json:"crops"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &scored); err != nil || len(scored.Crops) != 25 {
		t.Fatalf("score: %v %d", err, len(scored.Crops))
	}

	if rec := do(e, http.MethodGet, "/crops/onion", "", nil); rec.Code != http.StatusOK {
		t.Errorf("crop lookup status %d", rec.Code)
	}
	rec = do(e, http.MethodGet, "/locations/resolve?q=Ludhiana", "", nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"matched":true`) {
		t.Errorf("resolve: %d %s", rec.Code, rec.Body)
	}
	rec = do(e, http.MethodPost, "/seasonal", `{"temperature":20,"humidity":60,"moisture":50}`, nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"crops":`) {
		t.Errorf("seasonal: %d %s", rec.Code, rec.Body)
	}
}
