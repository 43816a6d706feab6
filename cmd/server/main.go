package main

import (
	"log"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/labstack/echo/v4"

	"agroscore/config"
	"agroscore/database"
	"agroscore/router"

	"agroscore/pkg/ai"
	"agroscore/pkg/catalog"
	"agroscore/pkg/location"
	"agroscore/pkg/metrics"

	// Field
	fieldCtrlImp "agroscore/pkg/field/controllerImp"
	fieldRepoImp "agroscore/pkg/field/repositoryImp"
	fieldSvcImp "agroscore/pkg/field/serviceImp"

	// Measure
	measCtrlImp "agroscore/pkg/measure/controllerImp"
	measRepository "agroscore/pkg/measure/repository"
	measRepoImp "agroscore/pkg/measure/repositoryImp"
	measSvcImp "agroscore/pkg/measure/serviceImp"

	// KB
	kbCtrlImp "agroscore/pkg/kb/controllerImp"
	kbEmbedder "agroscore/pkg/kb/embedder"
	kbRepoImp "agroscore/pkg/kb/repositoryImp"
	kbServiceImp "agroscore/pkg/kb/serviceImp"

	// Recommend
	recCtrlImp "agroscore/pkg/recommend/controllerImp"
	recSvcImp "agroscore/pkg/recommend/serviceImp"

	// Health
	healthCtrlImp "agroscore/pkg/health/controllerImp"
)

func main() {
	cfg := config.Load()
	db := database.OpenSQLite(cfg.DBPath)
	m := metrics.New()

	// Reference tables: built-in unless a file overrides them.
	cat := catalog.Default()
	if cfg.CropCatalogXLSX != "" {
		c, err := catalog.LoadXLSX(cfg.CropCatalogXLSX)
		if err != nil {
			log.Fatalf("[catalog] %v", err)
		}
		cat = c
	}
	log.Printf("[catalog] %d crops", cat.Len())

	res := location.Default()
	if cfg.LocationTableYAML != "" {
		r, err := location.LoadYAML(cfg.LocationTableYAML)
		if err != nil {
			log.Fatalf("[location] %v", err)
		}
		res = r
	}

	// Readings: InfluxDB when configured, SQLite otherwise.
	var mRepo measRepository.MeasureRepository
	source := "sqlite"
	if cfg.InfluxURL != "" {
		influx := influxdb2.NewClient(cfg.InfluxURL, cfg.InfluxToken)
		defer influx.Close()
		mRepo = measRepoImp.NewInflux(influx, cfg.InfluxOrg, cfg.InfluxBucket)
		source = "influxdb"
	} else {
		mRepo = measRepoImp.New(db)
	}
	mSvc := measSvcImp.NewMeasureService(mRepo, time.Now)

	// Advisory: LLM when configured, deterministic mock otherwise.
	var llm ai.Client
	mode := "mock"
	if cfg.LLMEndpoint != "" && cfg.LLMAPIKey != "" {
		llm = ai.NewOpenAI(cfg.LLMEndpoint, cfg.LLMAPIKey, cfg.LLMModel, ai.Options{
			Retries:         cfg.AdvisoryRetries,
			BreakerFailures: cfg.AdvisoryBreakerFails,
			BreakerOpenFor:  cfg.AdvisoryBreakerOpen,
		})
		mode = "llm"
	} else {
		llm = ai.NewMock()
	}
	var ids []string
	for _, c := range cat.All() {
		ids = append(ids, c.ID)
	}
	gw := ai.NewGateway(llm, cfg.AdvisoryTimeout, ids, m.Advisory)

	emb := kbEmbedder.New(cfg.EmbEndpoint, cfg.EmbAPIKey, cfg.EmbModel)
	kbSvc := kbServiceImp.New(kbRepoImp.New(db), emb)

	fRepo := fieldRepoImp.New(db)
	recSvc := recSvcImp.NewRecommendService(recSvcImp.Deps{
		Catalog:       cat,
		Resolver:      res,
		Gateway:       gw,
		KB:            kbSvc,
		Fields:        fRepo,
		Measures:      mSvc,
		ReadingSource: source,
		DefaultLocale: cfg.DefaultLocale,
		Metrics:       m,
		Now:           time.Now,
	})

	e := router.New(echo.New(), router.Controllers{
		Recommend: recCtrlImp.New(recSvc),
		Field:     fieldCtrlImp.New(fieldSvcImp.NewFieldService(fRepo)),
		Measure:   measCtrlImp.New(mSvc),
		KB:        kbCtrlImp.New(kbSvc, cfg.KBAllowedDomains),
		Health:    healthCtrlImp.NewHealthCtrl(db, cat.Len(), mode),
		Metrics:   m.Handler(),
	})

	log.Printf("listening on :%s (advisory=%s, readings=%s)", cfg.Port, mode, source)
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
