package controllerImp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"agroscore/database"
	"agroscore/entities"
	"agroscore/pkg/field/repositoryImp"
	"agroscore/pkg/field/serviceImp"
)

func TestCreateAndGet(t *testing.T) {
	db, err := database.Open(filepath.Join(t.TempDir(), "fields.db"))
	if err != nil {
		t.Fatal(err)
	}
	h := New(serviceImp.NewFieldService(repositoryImp.New(db)))
	e := echo.New()
	e.POST("/fields", h.Create)
	e.GET("/fields/:id", h.Get)

	send := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	if rec := send(http.MethodPost, "/fields", `{"name":"   "}`); rec.Code != http.StatusBadRequest {
		t.Errorf("blank name: status %d", rec.Code)
	}
	rec := send(http.MethodPost, "/fields", `{"name":" North plot ","location":" Nashik ","area_acres":2.5,"locale":"mr"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", rec.Code, rec.Body)
	}
	var created entities.Field
	_ = json.Unmarshal(rec.Body.Bytes(), &created)
	if created.FieldID == 0 || created.Name != "North plot" || created.Location != "Nashik" {
		t.Errorf("created = %+v", created)
	}

	rec = send(http.MethodGet, "/fields/1", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"area_acres":2.5`) {
		t.Errorf("get: %d %s", rec.Code, rec.Body)
	}
	if rec := send(http.MethodGet, "/fields/99", ""); rec.Code != http.StatusNotFound {
		t.Errorf("missing: status %d", rec.Code)
	}
	if rec := send(http.MethodGet, "/fields/x", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("bad id: status %d", rec.Code)
	}
}
