package repositoryImp

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"

	"agroscore/entities"
	"agroscore/pkg/measure/repository"
)

const readingMeasurement = "field_reading"

type influxRepo struct {
	write  api.WriteAPIBlocking
	query  api.QueryAPI
	bucket string
}

// NewInflux keeps readings in an InfluxDB bucket, one point per reading tagged
// with the field id.
func NewInflux(client influxdb2.Client, org, bucket string) repository.MeasureRepository {
	return &influxRepo{
		write:  client.WriteAPIBlocking(org, bucket),
		query:  client.QueryAPI(org),
		bucket: bucket,
	}
}

// readingFields lists the stored axes in a fixed order.
func readingFields(m *entities.Measurement) map[string]interface{} {
	fields := map[string]interface{}{}
	put := func(k string, v *float64) {
		if v != nil {
			fields[k] = *v
		}
	}
	put("ph", m.Ph)
	put("nitrogen", m.Nitrogen)
	put("phosphorus", m.Phosphorus)
	put("potassium", m.Potassium)
	put("organic_matter", m.OrganicMatter)
	put("temperature", m.Temperature)
	put("humidity", m.Humidity)
	put("moisture", m.Moisture)
	put("wind_speed", m.WindSpeed)
	if m.Note != "" {
		fields["note"] = m.Note
	}
	return fields
}

func (r *influxRepo) Create(ctx context.Context, m *entities.Measurement) error {
	fields := readingFields(m)
	if len(fields) == 0 {
		return fmt.Errorf("reading has no values")
	}
	if m.TakenAt.IsZero() {
		m.TakenAt = time.Now()
	}
	tags := map[string]string{"field_id": strconv.FormatUint(uint64(m.FieldID), 10)}
	p := influxdb2.NewPoint(readingMeasurement, tags, fields, m.TakenAt)
	if err := r.write.WritePoint(ctx, p); err != nil {
		return fmt.Errorf("influx write: %w", err)
	}
	return nil
}

func buildFlux(bucket string, fieldID uint, since time.Time) string {
	return fmt.Sprintf(`
from(bucket: %q)
  |> range(start: %s)
  |> filter(fn: (r) => r._measurement == %q and r.field_id == "%d")
  |> pivot(rowKey: ["_time"], columnKey: ["_field"], valueColumn: "_value")
  |> sort(columns: ["_time"])
`, bucket, since.UTC().Format(time.RFC3339), readingMeasurement, fieldID)
}

func (r *influxRepo) Since(ctx context.Context, fieldID uint, since time.Time) ([]entities.Measurement, error) {
	res, err := r.query.Query(ctx, buildFlux(r.bucket, fieldID, since))
	if err != nil {
		return nil, fmt.Errorf("influx query: %w", err)
	}
	defer res.Close()

	var out []entities.Measurement
	for res.Next() {
		rec := res.Record()
		m := entities.Measurement{FieldID: fieldID, TakenAt: rec.Time()}
		m.Ph = floatValue(rec.ValueByKey("ph"))
		m.Nitrogen = floatValue(rec.ValueByKey("nitrogen"))
		m.Phosphorus = floatValue(rec.ValueByKey("phosphorus"))
		m.Potassium = floatValue(rec.ValueByKey("potassium"))
		m.OrganicMatter = floatValue(rec.ValueByKey("organic_matter"))
		m.Temperature = floatValue(rec.ValueByKey("temperature"))
		m.Humidity = floatValue(rec.ValueByKey("humidity"))
		m.Moisture = floatValue(rec.ValueByKey("moisture"))
		m.WindSpeed = floatValue(rec.ValueByKey("wind_speed"))
		if s, ok := rec.ValueByKey("note").(string); ok {
			m.Note = s
		}
		out = append(out, m)
	}
	if err := res.Err(); err != nil {
		return nil, fmt.Errorf("influx iterate: %w", err)
	}
	return out, nil
}

func floatValue(v interface{}) *float64 {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case int64:
		f = float64(x)
	case uint64:
		f = float64(x)
	case string:
		p, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return nil
		}
		f = p
	default:
		return nil
	}
	return &f
}
