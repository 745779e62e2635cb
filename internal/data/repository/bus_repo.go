package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"bus-booking/internal/data/entity"
	"bus-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BusRepository interface {
	Create(ctx context.Context, bus *entity.Bus) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Bus, error)
	// FindByIDTx runs the lookup on the caller's transaction.
	FindByIDTx(ctx context.Context, q database.Querier, id uuid.UUID) (*entity.Bus, error)
	FindAll(ctx context.Context) ([]*entity.Bus, error)
	Update(ctx context.Context, bus *entity.Bus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type busRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBusRepository(db database.PgxIface, log *zap.Logger) BusRepository {
	return &busRepository{
		db:  db,
		log: log.With(zap.String("repository", "bus")),
	}
}

func (r *busRepository) Create(ctx context.Context, bus *entity.Bus) error {
	schedule, err := json.Marshal(bus.Schedule)
	if err != nil {
		return fmt.Errorf("marshal bus schedule: %w", err)
	}

	query := `
		INSERT INTO buses (id, name, bus_number, no_of_seats, schedule, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err = r.db.Exec(ctx, query,
		bus.ID,
		bus.Name,
		bus.BusNumber,
		bus.NoOfSeats,
		schedule,
		bus.CreatedAt,
		bus.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create bus",
			zap.Error(err),
			zap.String("bus_number", bus.BusNumber),
		)
		return fmt.Errorf("create bus %s: %w", bus.BusNumber, err)
	}

	return nil
}

func (r *busRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Bus, error) {
	return r.findByID(ctx, r.db, id)
}

func (r *busRepository) FindByIDTx(ctx context.Context, q database.Querier, id uuid.UUID) (*entity.Bus, error) {
	return r.findByID(ctx, q, id)
}

func (r *busRepository) findByID(ctx context.Context, q database.Querier, id uuid.UUID) (*entity.Bus, error) {
	query := `
		SELECT id, name, bus_number, no_of_seats, schedule, created_at, updated_at
		FROM buses
		WHERE id = $1
	`

	bus, err := scanBus(q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find bus by ID",
			zap.Error(err),
			zap.String("bus_id", id.String()),
		)
		return nil, fmt.Errorf("find bus by ID %s: %w", id.String(), err)
	}

	return bus, nil
}

func (r *busRepository) FindAll(ctx context.Context) ([]*entity.Bus, error) {
	query := `
		SELECT id, name, bus_number, no_of_seats, schedule, created_at, updated_at
		FROM buses
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find all buses", zap.Error(err))
		return nil, fmt.Errorf("find all buses: %w", err)
	}
	defer rows.Close()

	var buses []*entity.Bus
	for rows.Next() {
		bus, err := scanBus(rows)
		if err != nil {
			r.log.Error("Failed to scan bus row", zap.Error(err))
			return nil, fmt.Errorf("scan bus row: %w", err)
		}
		buses = append(buses, bus)
	}

	return buses, nil
}

func (r *busRepository) Update(ctx context.Context, bus *entity.Bus) error {
	schedule, err := json.Marshal(bus.Schedule)
	if err != nil {
		return fmt.Errorf("marshal bus schedule: %w", err)
	}

	query := `
		UPDATE buses
		SET name = $2, bus_number = $3, no_of_seats = $4, schedule = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		bus.ID,
		bus.Name,
		bus.BusNumber,
		bus.NoOfSeats,
		schedule,
		bus.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update bus",
			zap.Error(err),
			zap.String("bus_id", bus.ID.String()),
		)
		return fmt.Errorf("update bus %s: %w", bus.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("bus %s not found", bus.ID.String())
	}

	return nil
}

func (r *busRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM buses WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete bus",
			zap.Error(err),
			zap.String("bus_id", id.String()),
		)
		return fmt.Errorf("delete bus %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("bus %s not found", id.String())
	}

	r.log.Info("Bus deleted", zap.String("bus_id", id.String()))
	return nil
}

// scanBus scans one bus row, unmarshalling the jsonb schedule column.
func scanBus(row pgx.Row) (*entity.Bus, error) {
	var bus entity.Bus
	var schedule []byte

	err := row.Scan(
		&bus.ID,
		&bus.Name,
		&bus.BusNumber,
		&bus.NoOfSeats,
		&schedule,
		&bus.CreatedAt,
		&bus.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(schedule) > 0 {
		if err := json.Unmarshal(schedule, &bus.Schedule); err != nil {
			return nil, fmt.Errorf("unmarshal bus schedule: %w", err)
		}
	}

	return &bus, nil
}
