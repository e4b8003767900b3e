package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"AstroCore/internal/domain/models"
	domrepo "AstroCore/internal/domain/repository"
	pkgkafka "AstroCore/pkg/kafka"
)

// ClickHouseCalculationLog implements CalculationLog for ClickHouse.
type ClickHouseCalculationLog struct {
	db    *sql.DB
	table string
}

// NewClickHouseCalculationLog creates ClickHouse-backed calculation history.
func NewClickHouseCalculationLog(db *sql.DB, table string) domrepo.CalculationLog {
	return &ClickHouseCalculationLog{db: db, table: table}
}

func (s *ClickHouseCalculationLog) Init(ctx context.Context) error {
	q := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
        computed_at  DateTime64(3),
        fingerprint  String,
        kind         LowCardinality(String),
        method       LowCardinality(String),
        julian_day   Float64,
        latitude     Float64,
        longitude    Float64,
        duration_ms  Int64
    ) ENGINE = MergeTree()
    PARTITION BY toYYYYMM(computed_at)
    ORDER BY (kind, computed_at)
    TTL toDateTime(computed_at) + INTERVAL 90 DAY`, s.table)
	_, err := s.db.ExecContext(ctx, q)
	return err
}

func (s *ClickHouseCalculationLog) Append(ctx context.Context, rec *domrepo.CalculationRecord) error {
	q := fmt.Sprintf("INSERT INTO %s (computed_at, fingerprint, kind, method, julian_day, latitude, longitude, duration_ms) VALUES (?, ?, ?, ?, ?, ?, ?, ?)", s.table)
	_, err := s.db.ExecContext(ctx, q,
		rec.ComputedAt,
		rec.Fingerprint,
		string(rec.Kind),
		rec.Method,
		rec.JulianDay,
		rec.Latitude,
		rec.Longitude,
		rec.DurationMs,
	)
	return err
}

func (s *ClickHouseCalculationLog) Recent(ctx context.Context, kind string, limit int) ([]*domrepo.CalculationRecord, error) {
	q := fmt.Sprintf("SELECT computed_at, fingerprint, kind, method, julian_day, latitude, longitude, duration_ms FROM %s WHERE kind = ? ORDER BY computed_at DESC LIMIT ?", s.table)
	rows, err := s.db.QueryContext(ctx, q, kind, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []*domrepo.CalculationRecord
	for rows.Next() {
		var (
			r  domrepo.CalculationRecord
			ts time.Time
			k  string
		)
		if err := rows.Scan(&ts, &r.Fingerprint, &k, &r.Method, &r.JulianDay, &r.Latitude, &r.Longitude, &r.DurationMs); err != nil {
			return nil, err
		}
		r.ComputedAt = ts
		r.Kind = models.ChartKind(k)
		recs = append(recs, &r)
	}
	return recs, rows.Err()
}

func (s *ClickHouseCalculationLog) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *ClickHouseCalculationLog) Close() error {
	return nil // Managed by pkg
}

// KafkaChartPublisher implements ChartPublisher for Kafka.
type KafkaChartPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaChartPublisher creates the chart event publisher.
func NewKafkaChartPublisher(producer *pkgkafka.Producer, topic string) domrepo.ChartPublisher {
	return &KafkaChartPublisher{producer: producer, topic: topic}
}

func (p *KafkaChartPublisher) PublishComputed(ctx context.Context, rec *domrepo.CalculationRecord) error {
	return p.producer.Publish(ctx, p.topic, []byte(rec.Fingerprint), map[string]interface{}{
		"fingerprint": rec.Fingerprint,
		"kind":        string(rec.Kind),
		"method":      rec.Method,
		"julian_day":  rec.JulianDay,
		"duration_ms": rec.DurationMs,
		"computed_at": rec.ComputedAt.UnixMilli(),
	})
}

func (p *KafkaChartPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
