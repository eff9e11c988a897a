package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"WAYGO_BACK-END/internal/models"
)

// PgInputRepository stores input records in Postgres.
type PgInputRepository struct {
	db *pgxpool.Pool
}

// NewPgInputRepository creates a new PgInputRepository instance
func NewPgInputRepository(db *pgxpool.Pool) *PgInputRepository {
	return &PgInputRepository{db: db}
}

const inputColumns = `id, user_id, destination_city, destination_place_id,
	start_date, end_date, total_days,
	has_transport_ticket, arrival_time, departure_time,
	number_of_people, transport_modes, travel_styles, schedule_density,
	budget, needs_accommodation, accommodation_budget,
	status, created_at, updated_at`

// Create inserts a new record and returns its id.
func (r *PgInputRepository) Create(ctx context.Context, rec *models.InputRecord) (int64, error) {
	now := time.Now()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO itinerary_inputs
			(user_id, destination_city, destination_place_id, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		rec.UserID, rec.DestinationCity, rec.DestinationPlaceID, string(rec.Status), now, now,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	rec.ID = id
	return id, nil
}

// Get loads the full record by id.
func (r *PgInputRepository) Get(ctx context.Context, id int64) (*models.InputRecord, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+inputColumns+` FROM itinerary_inputs WHERE id = $1`, id)
	return scanInput(row)
}

// Mutate serializes same-record writes with SELECT ... FOR UPDATE so the
// read-validate-write sequence of a step is atomic per record. The scope
// handed to fn queries through the same transaction.
func (r *PgInputRepository) Mutate(ctx context.Context, id int64, fn func(rec *models.InputRecord, scope MutationScope) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx,
		`SELECT `+inputColumns+` FROM itinerary_inputs WHERE id = $1 FOR UPDATE`, id)
	rec, err := scanInput(row)
	if err != nil {
		return err
	}

	if err := fn(rec, txMutationScope{tx: tx}); err != nil {
		return err
	}

	rec.UpdatedAt = time.Now()
	_, err = tx.Exec(ctx,
		`UPDATE itinerary_inputs SET
			destination_city = $2, destination_place_id = $3,
			start_date = $4, end_date = $5, total_days = $6,
			has_transport_ticket = $7, arrival_time = $8, departure_time = $9,
			number_of_people = $10, transport_modes = $11, travel_styles = $12,
			schedule_density = $13, budget = $14,
			needs_accommodation = $15, accommodation_budget = $16,
			status = $17, updated_at = $18
		 WHERE id = $1`,
		rec.ID, rec.DestinationCity, rec.DestinationPlaceID,
		rec.StartDate, rec.EndDate, rec.TotalDays,
		rec.HasTransportTicket, rec.ArrivalTime, rec.DepartureTime,
		rec.NumberOfPeople, modesToStrings(rec.TransportModes), stylesToStrings(rec.TravelStyles),
		string(rec.ScheduleDensity), rec.Budget,
		rec.NeedsAccommodation, rec.AccommodationBudget,
		string(rec.Status), rec.UpdatedAt,
	)
	if err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// txMutationScope runs queries on the transaction opened by Mutate.
type txMutationScope struct {
	tx pgx.Tx
}

// HasOverlappingDates runs the inclusive-bounds EXISTS query against the
// user's other non-IN_PROGRESS records, inside the mutation transaction.
func (s txMutationScope) HasOverlappingDates(ctx context.Context, userID uuid.UUID, start, end time.Time, excludeID int64) (bool, error) {
	var exists bool
	err := s.tx.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM itinerary_inputs
			 WHERE user_id = $1
			   AND id != $2
			   AND status != 'IN_PROGRESS'
			   AND start_date <= $4
			   AND end_date >= $3
		 )`,
		userID, excludeID, start, end,
	).Scan(&exists)
	return exists, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInput(row rowScanner) (*models.InputRecord, error) {
	var rec models.InputRecord
	var modes, styles []string
	var density, status string

	err := row.Scan(
		&rec.ID, &rec.UserID, &rec.DestinationCity, &rec.DestinationPlaceID,
		&rec.StartDate, &rec.EndDate, &rec.TotalDays,
		&rec.HasTransportTicket, &rec.ArrivalTime, &rec.DepartureTime,
		&rec.NumberOfPeople, &modes, &styles, &density,
		&rec.Budget, &rec.NeedsAccommodation, &rec.AccommodationBudget,
		&status, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	rec.TransportModes = stringsToModes(modes)
	rec.TravelStyles = stringsToStyles(styles)
	rec.ScheduleDensity = models.ScheduleDensity(density)
	rec.Status = models.InputStatus(status)
	return &rec, nil
}

func modesToStrings(modes []models.TransportMode) []string {
	out := make([]string, len(modes))
	for i, m := range modes {
		out[i] = string(m)
	}
	return out
}

func stringsToModes(values []string) []models.TransportMode {
	if len(values) == 0 {
		return nil
	}
	out := make([]models.TransportMode, len(values))
	for i, v := range values {
		out[i] = models.TransportMode(v)
	}
	return out
}

func stylesToStrings(styles []models.TravelStyle) []string {
	out := make([]string, len(styles))
	for i, s := range styles {
		out[i] = string(s)
	}
	return out
}

func stringsToStyles(values []string) []models.TravelStyle {
	if len(values) == 0 {
		return nil
	}
	out := make([]models.TravelStyle, len(values))
	for i, v := range values {
		out[i] = models.TravelStyle(v)
	}
	return out
}
