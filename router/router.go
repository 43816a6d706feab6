package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	fieldctl "agroscore/pkg/field/controller"
	"agroscore/pkg/middleware"
	kbctl "agroscore/pkg/kb/controller"
	measctl "agroscore/pkg/measure/controller"
	recctl "agroscore/pkg/recommend/controller"
)

type Controllers struct {
	Recommend recctl.RecommendController
	Field     fieldctl.FieldController
	Measure   measctl.MeasureController
	KB        kbctl.KBController
	Health    interface{ Health(echo.Context) error }
	Metrics   http.Handler // optional
}

func New(e *echo.Echo, c Controllers) *echo.Echo {
	e.Use(echoMiddleware.Recover())
	e.Use(middleware.RequestID())

	e.GET("/health", c.Health.Health)
	if c.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(c.Metrics))
	}

	rec := e.Group("/recommendations")
	rec.POST("/score", c.Recommend.Score)
	rec.POST("/report", c.Recommend.Report)
	rec.POST("/seasonal", c.Recommend.Seasonal)

	e.GET("/crops", c.Recommend.Crops)
	e.GET("/crops/:id", c.Recommend.Crop)
	e.GET("/locations/resolve", c.Recommend.ResolveLocation)

	e.POST("/fields", c.Field.Create)
	e.GET("/fields/:id", c.Field.Get)
	e.POST("/fields/:id/measurements", c.Measure.Create)
	e.GET("/fields/:id/measurements", c.Measure.List)
	e.POST("/fields/:id/report", c.Recommend.FieldReport)

	e.POST("/kb/ingest", c.KB.IngestText)
	e.POST("/kb/ingest/url", c.KB.IngestURL)
	e.GET("/kb/search", c.KB.Search)
	return e
}
