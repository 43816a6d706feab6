package controllerImp

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"agroscore/entities"
	"agroscore/pkg/field/service"
	"agroscore/pkg/field/serviceImp"
)

type FieldCtrl struct{ svc service.FieldService }

func New(svc service.FieldService) *FieldCtrl { return &FieldCtrl{svc} }

type createReq struct {
	Name      string  `json:"name"`
	Location  string  `json:"location"`
	AreaAcres float64 `json:"area_acres"`
	SoilType  string  `json:"soil_type"`
	Locale    string  `json:"locale"`
}

func (h *FieldCtrl) Create(c echo.Context) error {
	var req createReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	f := &entities.Field{Name: req.Name, Location: req.Location, AreaAcres: req.AreaAcres, SoilType: req.SoilType, Locale: req.Locale}
	out, err := h.svc.CreateField(f)
	if errors.Is(err, serviceImp.ErrNameRequired) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *FieldCtrl) Get(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad field id"})
	}
	f, err := h.svc.GetFieldByID(uint(id))
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
	}
	return c.JSON(http.StatusOK, f)
}
