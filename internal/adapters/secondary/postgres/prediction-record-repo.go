package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fraud-scoring-service/internal/core/domain"
	"fraud-scoring-service/internal/core/ports/output"
)

type predictionRecordRepo struct {
	pool *pgxpool.Pool
}

func NewPredictionRecordRepository(pool *pgxpool.Pool) ports.PredictionRepository {
	return &predictionRecordRepo{pool: pool}
}

const predictionRecordColumns = `
	id, created_at, request_id, features, predicted_class,
	fraud_probability, risk_level, prediction_label, model_version
`

func (r *predictionRecordRepo) Create(ctx context.Context, record *domain.PredictionRecord) error {
	featuresJSON, err := json.Marshal(record.Features)
	if err != nil {
		return fmt.Errorf("marshal features: %w", err)
	}

	query := `
		INSERT INTO prediction_record (` + predictionRecordColumns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`
	_, err = r.pool.Exec(ctx, query,
		record.ID, record.CreatedAt, record.RequestID, featuresJSON,
		record.PredictedClass, record.FraudProbability,
		string(record.RiskLevel), string(record.Label), record.ModelVersion,
	)
	if err != nil {
		return fmt.Errorf("create prediction record: %w", err)
	}
	return nil
}

func (r *predictionRecordRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.PredictionRecord, error) {
	query := `SELECT ` + predictionRecordColumns + ` FROM prediction_record WHERE id = $1`

	rec, err := scanPredictionRecord(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPredictionNotFound
		}
		return nil, fmt.Errorf("get prediction record by id: %w", err)
	}
	return rec, nil
}

func (r *predictionRecordRepo) List(ctx context.Context, filter ports.PredictionListFilter) ([]*domain.PredictionRecord, int, error) {
	conditions := []string{}
	args := []interface{}{}
	argPos := 1

	if filter.RiskLevel != "" {
		conditions = append(conditions, fmt.Sprintf("risk_level = $%d", argPos))
		args = append(args, filter.RiskLevel)
		argPos++
	}
	if filter.Label != "" {
		conditions = append(conditions, fmt.Sprintf("prediction_label = $%d", argPos))
		args = append(args, filter.Label)
		argPos++
	}

	whereClause := "1=1"
	if len(conditions) > 0 {
		whereClause = strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM prediction_record WHERE %s", whereClause)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count prediction records: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM prediction_record
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, predictionRecordColumns, whereClause, argPos, argPos+1)

	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list prediction records: %w", err)
	}
	defer rows.Close()

	records := []*domain.PredictionRecord{}
	for rows.Next() {
		rec, err := scanPredictionRecord(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan prediction record row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate prediction record rows: %w", err)
	}

	return records, total, nil
}

func scanPredictionRecord(row pgx.Row) (*domain.PredictionRecord, error) {
	rec := &domain.PredictionRecord{}
	var featuresJSON []byte
	var riskLevel, label string

	err := row.Scan(
		&rec.ID, &rec.CreatedAt, &rec.RequestID, &featuresJSON,
		&rec.PredictedClass, &rec.FraudProbability,
		&riskLevel, &label, &rec.ModelVersion,
	)
	if err != nil {
		return nil, err
	}
	rec.RiskLevel = domain.RiskLevel(riskLevel)
	rec.Label = domain.PredictionLabel(label)

	if len(featuresJSON) > 0 {
		if err := json.Unmarshal(featuresJSON, &rec.Features); err != nil {
			return nil, fmt.Errorf("unmarshal features: %w", err)
		}
	}
	return rec, nil
}
