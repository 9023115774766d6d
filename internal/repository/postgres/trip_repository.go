package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/trip-atlas/internal/domain"
	"github.com/trip-atlas/internal/domain/repository"
	"github.com/trip-atlas/internal/pkg/errors"
)

type tripRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewTripRepository(db *DB) repository.TripRepository {
	return &tripRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

// segmentRow - строка move_segments; трек хранится параллельными
// массивами координат
type segmentRow struct {
	ID        uuid.UUID       `db:"id"`
	TripID    uuid.UUID       `db:"trip_id"`
	Kind      string          `db:"kind"`
	Activity  string          `db:"activity"`
	Lats      pq.Float64Array `db:"lats"`
	Lons      pq.Float64Array `db:"lons"`
	StartedAt sql.NullTime    `db:"started_at"`
	EndedAt   sql.NullTime    `db:"ended_at"`
}

func (r *segmentRow) toDomain() *domain.MoveSegment {
	seg := &domain.MoveSegment{
		ID:       r.ID,
		TripID:   r.TripID,
		Kind:     r.Kind,
		Activity: r.Activity,
	}
	if r.StartedAt.Valid {
		seg.StartedAt = r.StartedAt.Time
	}
	if r.EndedAt.Valid {
		seg.EndedAt = r.EndedAt.Time
	}

	n := len(r.Lats)
	if len(r.Lons) < n {
		n = len(r.Lons)
	}
	seg.TrackPoints = make([]domain.Point, n)
	for i := 0; i < n; i++ {
		seg.TrackPoints[i] = domain.Point{Lat: r.Lats[i], Lon: r.Lons[i]}
	}
	return seg
}

func (r *tripRepository) SaveTrip(ctx context.Context, trip *domain.Trip) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to begin transaction", zap.Error(err))
		return errors.ErrDatabaseError
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO trips (id, name, created_at) VALUES ($1, $2, $3)`,
		trip.ID, trip.Name, trip.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to insert trip", zap.String("trip_id", trip.ID.String()), zap.Error(err))
		return errors.ErrDatabaseError
	}

	for _, seg := range trip.Segments {
		lats := make(pq.Float64Array, len(seg.TrackPoints))
		lons := make(pq.Float64Array, len(seg.TrackPoints))
		for i, p := range seg.TrackPoints {
			lats[i] = p.Lat
			lons[i] = p.Lon
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO move_segments (id, trip_id, kind, activity, lats, lons, started_at, ended_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			seg.ID, trip.ID, seg.Kind, seg.Activity, lats, lons, seg.StartedAt, seg.EndedAt,
		)
		if err != nil {
			r.logger.Error("Failed to insert segment",
				zap.String("trip_id", trip.ID.String()),
				zap.String("segment_id", seg.ID.String()),
				zap.Error(err))
			return errors.ErrDatabaseError
		}
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Failed to commit trip", zap.Error(err))
		return errors.ErrDatabaseError
	}
	return nil
}

func (r *tripRepository) GetTrip(ctx context.Context, id uuid.UUID) (*domain.Trip, error) {
	var trip domain.Trip
	err := r.db.GetContext(ctx, &trip,
		`SELECT id, name, created_at FROM trips WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, errors.ErrTripNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get trip", zap.String("trip_id", id.String()), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	segments, err := r.GetSegments(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	trip.Segments = segments
	return &trip, nil
}

func (r *tripRepository) ListTrips(ctx context.Context, limit, offset int) ([]*domain.Trip, error) {
	var trips []*domain.Trip
	err := r.db.SelectContext(ctx, &trips,
		`SELECT id, name, created_at FROM trips ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		r.logger.Error("Failed to list trips", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return trips, nil
}

func (r *tripRepository) GetSegments(ctx context.Context, tripIDs []uuid.UUID) ([]*domain.MoveSegment, error) {
	query := `
		SELECT s.id, s.trip_id, s.kind, s.activity, s.lats, s.lons, s.started_at, s.ended_at
		FROM move_segments s
		JOIN trips t ON t.id = s.trip_id
		ORDER BY t.created_at, s.started_at, s.id
	`
	args := []interface{}{}
	if len(tripIDs) > 0 {
		ids := make(pq.StringArray, len(tripIDs))
		for i, id := range tripIDs {
			ids[i] = id.String()
		}
		query = `
			SELECT s.id, s.trip_id, s.kind, s.activity, s.lats, s.lons, s.started_at, s.ended_at
			FROM move_segments s
			JOIN trips t ON t.id = s.trip_id
			WHERE s.trip_id = ANY($1::uuid[])
			ORDER BY t.created_at, s.started_at, s.id
		`
		args = append(args, ids)
	}

	var rows []segmentRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		r.logger.Error("Failed to get segments", zap.Int("trip_ids", len(tripIDs)), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	segments := make([]*domain.MoveSegment, len(rows))
	for i := range rows {
		segments[i] = rows[i].toDomain()
	}
	return segments, nil
}
