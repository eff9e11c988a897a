package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"WAYGO_BACK-END/internal/models"
)

// PgItineraryRepository stores generated itineraries in Postgres.
type PgItineraryRepository struct {
	db *pgxpool.Pool
}

// NewPgItineraryRepository creates a new PgItineraryRepository instance
func NewPgItineraryRepository(db *pgxpool.Pool) *PgItineraryRepository {
	return &PgItineraryRepository{db: db}
}

// CreateFull writes the itinerary tree and flips the source input to
// GENERATED in one transaction. The status update is guarded so a raced
// or repeated generation cannot produce a second itinerary.
func (r *PgItineraryRepository) CreateFull(ctx context.Context, itinerary *models.Itinerary) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	now := time.Now()
	itinerary.CreatedAt = now
	itinerary.UpdatedAt = now

	var itineraryID int64
	err = tx.QueryRow(ctx,
		`INSERT INTO itineraries
			(itinerary_input_id, user_id, title, total_budget, total_spent, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		itinerary.InputID, itinerary.UserID, itinerary.Title,
		itinerary.TotalBudget, itinerary.TotalSpent, string(itinerary.Status), now, now,
	).Scan(&itineraryID)
	if err != nil {
		return 0, err
	}

	for di := range itinerary.Days {
		day := &itinerary.Days[di]
		day.ItineraryID = itineraryID

		err = tx.QueryRow(ctx,
			`INSERT INTO itinerary_days
				(itinerary_id, day_number, date, weather_condition, temperature, weather_advice, daily_budget, daily_spent)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			 RETURNING id`,
			itineraryID, day.DayNumber, day.Date,
			day.WeatherCondition, day.Temperature, day.WeatherAdvice,
			day.DailyBudget, day.DailySpent,
		).Scan(&day.ID)
		if err != nil {
			return 0, err
		}

		for ai := range day.Activities {
			act := &day.Activities[ai]
			act.DayID = day.ID

			var transport *string
			if act.TransportToNext != nil {
				s := string(*act.TransportToNext)
				transport = &s
			}
			err = tx.QueryRow(ctx,
				`INSERT INTO itinerary_activities
					(itinerary_day_id, sequence, activity_type, place_name, place_id, address, rating,
					 start_time, end_time, duration_minutes, entrance_fee, meal_cost,
					 transport_to_next, transport_duration, transport_cost, tips)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
				 RETURNING id`,
				day.ID, act.Sequence, string(act.ActivityType), act.PlaceName, act.PlaceID, act.Address, act.Rating,
				act.StartTime, act.EndTime, act.DurationMinutes, act.EntranceFee, act.MealCost,
				transport, act.TransportDuration, act.TransportCost, act.Tips,
			).Scan(&act.ID)
			if err != nil {
				return 0, err
			}
		}
	}

	tag, err := tx.Exec(ctx,
		`UPDATE itinerary_inputs SET status = 'GENERATED', updated_at = $2
		  WHERE id = $1 AND status = 'COMPLETED'`,
		itinerary.InputID, now,
	)
	if err != nil {
		return 0, err
	}
	if tag.RowsAffected() != 1 {
		return 0, ErrNotCompleted
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	itinerary.ID = itineraryID
	return itineraryID, nil
}

// Get loads one itinerary with its days and activities in order.
func (r *PgItineraryRepository) Get(ctx context.Context, id int64) (*models.Itinerary, error) {
	var it models.Itinerary
	var status string
	err := r.db.QueryRow(ctx,
		`SELECT id, itinerary_input_id, user_id, title, total_budget, total_spent, status, created_at, updated_at
		   FROM itineraries WHERE id = $1`, id).
		Scan(&it.ID, &it.InputID, &it.UserID, &it.Title, &it.TotalBudget, &it.TotalSpent,
			&status, &it.CreatedAt, &it.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	it.Status = models.ItineraryStatus(status)

	dayRows, err := r.db.Query(ctx,
		`SELECT id, itinerary_id, day_number, date, weather_condition, temperature, weather_advice, daily_budget, daily_spent
		   FROM itinerary_days WHERE itinerary_id = $1 ORDER BY day_number ASC`, id)
	if err != nil {
		return nil, err
	}
	defer dayRows.Close()

	for dayRows.Next() {
		var d models.Day
		if err := dayRows.Scan(&d.ID, &d.ItineraryID, &d.DayNumber, &d.Date,
			&d.WeatherCondition, &d.Temperature, &d.WeatherAdvice,
			&d.DailyBudget, &d.DailySpent); err != nil {
			return nil, err
		}
		it.Days = append(it.Days, d)
	}
	if err := dayRows.Err(); err != nil {
		return nil, err
	}

	for di := range it.Days {
		day := &it.Days[di]
		actRows, err := r.db.Query(ctx,
			`SELECT id, itinerary_day_id, sequence, activity_type, place_name, place_id, address, rating,
					start_time, end_time, duration_minutes, entrance_fee, meal_cost,
					transport_to_next, transport_duration, transport_cost, tips
			   FROM itinerary_activities WHERE itinerary_day_id = $1 ORDER BY sequence ASC`, day.ID)
		if err != nil {
			return nil, err
		}
		for actRows.Next() {
			var a models.Activity
			var actType string
			var transport *string
			if err := actRows.Scan(&a.ID, &a.DayID, &a.Sequence, &actType, &a.PlaceName, &a.PlaceID, &a.Address, &a.Rating,
				&a.StartTime, &a.EndTime, &a.DurationMinutes, &a.EntranceFee, &a.MealCost,
				&transport, &a.TransportDuration, &a.TransportCost, &a.Tips); err != nil {
				actRows.Close()
				return nil, err
			}
			a.ActivityType = models.ActivityType(actType)
			if transport != nil {
				m := models.TransportMode(*transport)
				a.TransportToNext = &m
			}
			day.Activities = append(day.Activities, a)
		}
		actRows.Close()
		if err := actRows.Err(); err != nil {
			return nil, err
		}
	}

	return &it, nil
}
