package repository

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// statements are idempotent so Migrate can run on every boot.
var statements = []string{
	`CREATE TABLE IF NOT EXISTS itinerary_inputs (
		id                   BIGSERIAL PRIMARY KEY,
		user_id              UUID NOT NULL,
		destination_city     VARCHAR(255) NOT NULL,
		destination_place_id VARCHAR(500) NOT NULL,
		start_date           DATE,
		end_date             DATE,
		total_days           INT NOT NULL DEFAULT 0,
		has_transport_ticket BOOLEAN NOT NULL DEFAULT FALSE,
		arrival_time         INT,
		departure_time       INT,
		number_of_people     INT NOT NULL DEFAULT 0,
		transport_modes      TEXT[] NOT NULL DEFAULT '{}',
		travel_styles        TEXT[] NOT NULL DEFAULT '{}',
		schedule_density     VARCHAR(20) NOT NULL DEFAULT '',
		budget               INT NOT NULL DEFAULT 0,
		needs_accommodation  BOOLEAN NOT NULL DEFAULT FALSE,
		accommodation_budget INT,
		status               VARCHAR(20) NOT NULL,
		created_at           TIMESTAMPTZ NOT NULL,
		updated_at           TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_itinerary_inputs_user_dates
		ON itinerary_inputs (user_id, start_date, end_date)`,
	`CREATE TABLE IF NOT EXISTS itineraries (
		id                 BIGSERIAL PRIMARY KEY,
		itinerary_input_id BIGINT NOT NULL REFERENCES itinerary_inputs(id),
		user_id            UUID NOT NULL,
		title              VARCHAR(200) NOT NULL,
		total_budget       INT NOT NULL DEFAULT 0,
		total_spent        INT NOT NULL DEFAULT 0,
		status             VARCHAR(20) NOT NULL,
		created_at         TIMESTAMPTZ NOT NULL,
		updated_at         TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS itinerary_days (
		id                BIGSERIAL PRIMARY KEY,
		itinerary_id      BIGINT NOT NULL REFERENCES itineraries(id) ON DELETE CASCADE,
		day_number        INT NOT NULL,
		date              DATE NOT NULL,
		weather_condition VARCHAR(50) NOT NULL DEFAULT '',
		temperature       INT NOT NULL DEFAULT 0,
		weather_advice    TEXT NOT NULL DEFAULT '',
		daily_budget      INT NOT NULL DEFAULT 0,
		daily_spent       INT NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS itinerary_activities (
		id                 BIGSERIAL PRIMARY KEY,
		itinerary_day_id   BIGINT NOT NULL REFERENCES itinerary_days(id) ON DELETE CASCADE,
		sequence           INT NOT NULL,
		activity_type      VARCHAR(20) NOT NULL,
		place_name         VARCHAR(200) NOT NULL,
		place_id           VARCHAR(500) NOT NULL DEFAULT '',
		address            VARCHAR(500) NOT NULL DEFAULT '',
		rating             DOUBLE PRECISION,
		start_time         INT NOT NULL,
		end_time           INT NOT NULL,
		duration_minutes   INT NOT NULL,
		entrance_fee       INT NOT NULL DEFAULT 0,
		meal_cost          INT NOT NULL DEFAULT 0,
		transport_to_next  VARCHAR(20),
		transport_duration INT NOT NULL DEFAULT 0,
		transport_cost     INT NOT NULL DEFAULT 0,
		tips               TEXT NOT NULL DEFAULT ''
	)`,
}

// Migrate creates the itinerary tables when they do not exist yet.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	log.Println("itinerary schema ready")
	return nil
}
