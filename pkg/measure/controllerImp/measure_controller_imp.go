package controllerImp

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"agroscore/entities"
	"agroscore/pkg/measure/service"
	"agroscore/pkg/measure/serviceImp"
)

const listDays = 60

type MeasureCtrl struct{ svc service.MeasureService }

func New(svc service.MeasureService) *MeasureCtrl { return &MeasureCtrl{svc} }

type measReq struct {
	TakenAt       string   `json:"taken_at"` // RFC3339 or YYYY-MM-DD
	Ph            *float64 `json:"ph"`
	Nitrogen      *float64 `json:"nitrogen"`
	Phosphorus    *float64 `json:"phosphorus"`
	Potassium     *float64 `json:"potassium"`
	OrganicMatter *float64 `json:"organic_matter"`
	Temperature   *float64 `json:"temperature"`
	Humidity      *float64 `json:"humidity"`
	Moisture      *float64 `json:"moisture"`
	WindSpeed     *float64 `json:"wind_speed"`
	Note          string   `json:"note"`
}

func parseWhen(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

func (h *MeasureCtrl) Create(c echo.Context) error {
	fid, err := strconv.Atoi(c.Param("id"))
	if err != nil || fid <= 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad field id"})
	}
	var req measReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	when, err := parseWhen(req.TakenAt)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad taken_at"})
	}
	m := &entities.Measurement{
		FieldID: uint(fid), TakenAt: when,
		Ph: req.Ph, Nitrogen: req.Nitrogen, Phosphorus: req.Phosphorus, Potassium: req.Potassium,
		OrganicMatter: req.OrganicMatter, Temperature: req.Temperature, Humidity: req.Humidity,
		Moisture: req.Moisture, WindSpeed: req.WindSpeed, Note: req.Note,
	}
	out, err := h.svc.Create(c.Request().Context(), m)
	if errors.Is(err, serviceImp.ErrEmptyReading) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *MeasureCtrl) List(c echo.Context) error {
	fid, err := strconv.Atoi(c.Param("id"))
	if err != nil || fid <= 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad field id"})
	}
	out, err := h.svc.Recent(c.Request().Context(), uint(fid), listDays)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if out == nil {
		out = []entities.Measurement{}
	}
	return c.JSON(http.StatusOK, out)
}
