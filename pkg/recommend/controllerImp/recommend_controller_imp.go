package controllerImp

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"agroscore/pkg/catalog"
	"agroscore/pkg/middleware"
	"agroscore/pkg/recommend/service"
	"agroscore/pkg/recommend/serviceImp"
	"agroscore/pkg/recommend/types"
	"agroscore/pkg/scoring"
)

type RecommendCtrl struct{ svc service.RecommendService }

func New(svc service.RecommendService) *RecommendCtrl { return &RecommendCtrl{svc} }

type reportResp struct {
	ReportID string        `json:"report_id"`
	Report   *types.Report `json:"report"`
}

// fail maps service errors onto status codes.
func fail(c echo.Context, err error) error {
	var bad *scoring.InvalidInputError
	var miss *catalog.LookupMissError
	switch {
	case errors.As(err, &bad):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error(), "field": bad.Field})
	case errors.As(err, &miss), errors.Is(err, serviceImp.ErrFieldNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, serviceImp.ErrNoReadings):
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}

func bindRaw(c echo.Context) (types.RawInput, error) {
	raw := types.RawInput{}
	if err := c.Bind(&raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func (h *RecommendCtrl) Score(c echo.Context) error {
	raw, err := bindRaw(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	in, err := scoring.Normalize(raw)
	if err != nil {
		return fail(c, err)
	}
	lc, _ := raw["locale"].(string)
	return c.JSON(http.StatusOK, map[string]any{"crops": h.svc.ScoreCrops(in.Soil, in.Location, lc)})
}

func (h *RecommendCtrl) Report(c echo.Context) error {
	raw, err := bindRaw(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	r, err := h.svc.ComputeReport(c.Request().Context(), raw)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, reportResp{ReportID: middleware.RequestIDFrom(c), Report: r})
}

type seasonalReq struct {
	types.WeatherSnapshot
	Locale string `json:"locale"`
}

func (h *RecommendCtrl) Seasonal(c echo.Context) error {
	var req seasonalReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	w := req.WeatherSnapshot
	if w.Temperature == nil && w.Humidity == nil && w.Moisture == nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "temperature, humidity or moisture required"})
	}
	return c.JSON(http.StatusOK, map[string]any{"crops": h.svc.SeasonalCrops(w, req.Locale)})
}

func (h *RecommendCtrl) FieldReport(c echo.Context) error {
	fid, err := strconv.Atoi(c.Param("id"))
	if err != nil || fid <= 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad field id"})
	}
	days := 0
	if v := c.QueryParam("days"); v != "" {
		if days, err = strconv.Atoi(v); err != nil || days <= 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad days"})
		}
	}
	r, err := h.svc.ComputeFieldReport(c.Request().Context(), uint(fid), days)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, reportResp{ReportID: middleware.RequestIDFrom(c), Report: r})
}

func (h *RecommendCtrl) Crops(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.Crops())
}

func (h *RecommendCtrl) Crop(c echo.Context) error {
	cp, err := h.svc.Crop(c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, cp)
}

func (h *RecommendCtrl) ResolveLocation(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.ResolveLocation(c.QueryParam("q"), c.QueryParam("locale")))
}
