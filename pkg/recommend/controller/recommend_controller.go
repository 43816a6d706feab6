package controller

import "github.com/labstack/echo/v4"

type RecommendController interface {
	Score(c echo.Context) error
	Report(c echo.Context) error
	Seasonal(c echo.Context) error
	FieldReport(c echo.Context) error
	Crops(c echo.Context) error
	Crop(c echo.Context) error
	ResolveLocation(c echo.Context) error
}
