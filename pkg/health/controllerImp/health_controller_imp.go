package controllerImp

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

var appStart = time.Now()

type sub struct {
	OK  bool   `json:"ok"`
	Err string `json:"err,omitempty"`
}

// HealthCtrl reports database reachability plus a few static facts about the
// loaded tables. Only the database decides the status code.
type HealthCtrl struct {
	db       *gorm.DB
	crops    int
	advisory string // "llm" | "mock" | "off"
}

func NewHealthCtrl(db *gorm.DB, crops int, advisory string) *HealthCtrl {
	return &HealthCtrl{db: db, crops: crops, advisory: advisory}
}

func (h *HealthCtrl) pingDB(ctx context.Context) sub {
	if h.db == nil {
		return sub{Err: "gorm db is nil"}
	}
	sqlDB, err := h.db.DB()
	if err != nil {
		return sub{Err: "db.DB(): " + err.Error()}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return sub{Err: "ping: " + err.Error()}
	}
	return sub{OK: true}
}

func (h *HealthCtrl) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 800*time.Millisecond)
	defer cancel()

	db := h.pingDB(ctx)
	status := http.StatusOK
	if !db.OK {
		status = http.StatusServiceUnavailable
	}
	return c.JSON(status, map[string]any{
		"status":     map[string]any{"ok": db.OK},
		"uptime_sec": int(time.Since(appStart).Seconds()),
		"checks": map[string]any{
			"database": db,
			"catalog":  sub{OK: h.crops > 0},
		},
		"crops":    h.crops,
		"advisory": h.advisory,
		"time":     time.Now().Format(time.RFC3339),
	})
}
