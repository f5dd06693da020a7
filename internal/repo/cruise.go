// Package repo contains all database access logic for the cruise logbook.
// No business logic lives here — only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/pkordes/cruiselog/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and
// pgx.Tx. Accepting this interface instead of *pgxpool.Pool directly
// allows integration tests to pass a transaction that is rolled back
// after each test, giving free per-test isolation without any manual
// cleanup. Begin is needed because whole aggregates are written in one
// transaction; on pgx.Tx it opens a savepoint.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// CruiseRepo defines the persistence operations for cruise aggregates.
// Every read returns the full aggregate (route, expenses, photos); every
// write persists or removes a whole aggregate atomically.
type CruiseRepo interface {
	// Create inserts a cruise with all its children in one transaction
	// and returns the persisted aggregate.
	Create(ctx context.Context, cruise domain.Cruise) (domain.Cruise, error)

	// CreateBatch inserts several aggregates in a single transaction.
	// If any insert fails, nothing from the batch is persisted.
	CreateBatch(ctx context.Context, cruises []domain.Cruise) error

	// GetByID retrieves a single cruise aggregate by primary key.
	// Returns domain.ErrNotFound if no cruise with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Cruise, error)

	// List returns all cruise aggregates ordered by start_date descending.
	List(ctx context.Context) ([]domain.Cruise, error)

	// Delete removes a cruise by ID; children go with it via the cascade
	// foreign keys. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgCruiseRepo is the Postgres implementation of CruiseRepo.
type pgCruiseRepo struct {
	db db
}

// NewCruiseRepo constructs a CruiseRepo backed by the provided db
// connection. In production pass *pgxpool.Pool; in tests pass a pgx.Tx
// for rollback isolation.
func NewCruiseRepo(db db) CruiseRepo {
	return &pgCruiseRepo{db: db}
}

func (r *pgCruiseRepo) Create(ctx context.Context, cruise domain.Cruise) (domain.Cruise, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return domain.Cruise{}, fmt.Errorf("repo.CruiseRepo.Create: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	result, err := insertCruise(ctx, tx, cruise)
	if err != nil {
		return domain.Cruise{}, fmt.Errorf("repo.CruiseRepo.Create: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return domain.Cruise{}, fmt.Errorf("repo.CruiseRepo.Create: commit: %w", err)
	}
	return result, nil
}

func (r *pgCruiseRepo) CreateBatch(ctx context.Context, cruises []domain.Cruise) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repo.CruiseRepo.CreateBatch: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, c := range cruises {
		if _, err := insertCruise(ctx, tx, c); err != nil {
			return fmt.Errorf("repo.CruiseRepo.CreateBatch: %w", err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("repo.CruiseRepo.CreateBatch: commit: %w", err)
	}
	return nil
}

func (r *pgCruiseRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Cruise, error) {
	const q = `
		SELECT id, title, start_date, end_date, shipping_line, ship,
		       cabin_type, cabin_number, booking_number, notes, rating,
		       created_at, updated_at
		FROM cruises
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	cruise, err := scanCruise(row)
	if err != nil {
		return domain.Cruise{}, fmt.Errorf("repo.CruiseRepo.GetByID: %w", err)
	}
	if err := r.loadChildren(ctx, &cruise); err != nil {
		return domain.Cruise{}, fmt.Errorf("repo.CruiseRepo.GetByID: %w", err)
	}
	return cruise, nil
}

func (r *pgCruiseRepo) List(ctx context.Context) ([]domain.Cruise, error) {
	const q = `
		SELECT id, title, start_date, end_date, shipping_line, ship,
		       cabin_type, cabin_number, booking_number, notes, rating,
		       created_at, updated_at
		FROM cruises
		ORDER BY start_date DESC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.CruiseRepo.List: %w", err)
	}
	defer rows.Close()

	var cruises []domain.Cruise
	for rows.Next() {
		c, err := scanCruise(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.CruiseRepo.List: scan: %w", err)
		}
		cruises = append(cruises, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.CruiseRepo.List: rows: %w", err)
	}

	for i := range cruises {
		if err := r.loadChildren(ctx, &cruises[i]); err != nil {
			return nil, fmt.Errorf("repo.CruiseRepo.List: %w", err)
		}
	}
	return cruises, nil
}

func (r *pgCruiseRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM cruises WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.CruiseRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.CruiseRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// insertCruise writes one aggregate through the given transaction: the
// cruise row first, then ports, expenses, and photos referencing it.
func insertCruise(ctx context.Context, tx pgx.Tx, cruise domain.Cruise) (domain.Cruise, error) {
	const q = `
		INSERT INTO cruises (title, start_date, end_date, shipping_line, ship,
		                     cabin_type, cabin_number, booking_number, notes, rating)
		VALUES (@title, @start_date, @end_date, @shipping_line, @ship,
		        @cabin_type, @cabin_number, @booking_number, @notes, @rating)
		RETURNING id, title, start_date, end_date, shipping_line, ship,
		          cabin_type, cabin_number, booking_number, notes, rating,
		          created_at, updated_at`

	args := pgx.NamedArgs{
		"title":          cruise.Title,
		"start_date":     cruise.StartDate,
		"end_date":       cruise.EndDate,
		"shipping_line":  cruise.ShippingLine,
		"ship":           cruise.Ship,
		"cabin_type":     cruise.CabinType,
		"cabin_number":   cruise.CabinNumber,
		"booking_number": cruise.BookingNumber,
		"notes":          cruise.Notes,
		"rating":         cruise.Rating,
	}

	result, err := scanCruise(tx.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Cruise{}, fmt.Errorf("insert cruise: %w", err)
	}

	for _, p := range cruise.SortedRoute() {
		port, err := insertPort(ctx, tx, result.ID, p)
		if err != nil {
			return domain.Cruise{}, err
		}
		result.Route = append(result.Route, port)
	}
	for _, e := range cruise.Expenses {
		expense, err := insertExpense(ctx, tx, result.ID, e)
		if err != nil {
			return domain.Cruise{}, err
		}
		result.Expenses = append(result.Expenses, expense)
	}
	for _, p := range cruise.SortedPhotos() {
		photo, err := insertPhoto(ctx, tx, result.ID, p)
		if err != nil {
			return domain.Cruise{}, err
		}
		result.Photos = append(result.Photos, photo)
	}

	return result, nil
}

func insertPort(ctx context.Context, tx pgx.Tx, cruiseID uuid.UUID, p domain.Port) (domain.Port, error) {
	const q = `
		INSERT INTO ports (cruise_id, name, country, latitude, longitude,
		                   arrival, departure, sort_order, is_sea_day,
		                   excursions, image_data)
		VALUES (@cruise_id, @name, @country, @latitude, @longitude,
		        @arrival, @departure, @sort_order, @is_sea_day,
		        @excursions, @image_data)
		RETURNING id`

	args := pgx.NamedArgs{
		"cruise_id":  cruiseID,
		"name":       p.Name,
		"country":    p.Country,
		"latitude":   p.Latitude,
		"longitude":  p.Longitude,
		"arrival":    p.Arrival,
		"departure":  p.Departure,
		"sort_order": p.SortOrder,
		"is_sea_day": p.IsSeaDay,
		"excursions": p.Excursions,
		"image_data": p.ImageData,
	}

	var id pgtype.UUID
	if err := tx.QueryRow(ctx, q, args).Scan(&id); err != nil {
		return domain.Port{}, fmt.Errorf("insert port %q: %w", p.Name, err)
	}
	p.ID = uuid.UUID(id.Bytes)
	p.CruiseID = cruiseID
	return p, nil
}

func insertExpense(ctx context.Context, tx pgx.Tx, cruiseID uuid.UUID, e domain.Expense) (domain.Expense, error) {
	const q = `
		INSERT INTO expenses (cruise_id, category, description, amount, expense_date)
		VALUES (@cruise_id, @category, @description, @amount, @expense_date)
		RETURNING id, created_at`

	args := pgx.NamedArgs{
		"cruise_id":    cruiseID,
		"category":     e.Category.String(),
		"description":  e.Description,
		"amount":       e.Amount,
		"expense_date": e.ExpenseDate,
	}

	var id pgtype.UUID
	if err := tx.QueryRow(ctx, q, args).Scan(&id, &e.CreatedAt); err != nil {
		return domain.Expense{}, fmt.Errorf("insert expense: %w", err)
	}
	e.ID = uuid.UUID(id.Bytes)
	e.CruiseID = cruiseID
	return e, nil
}

func insertPhoto(ctx context.Context, tx pgx.Tx, cruiseID uuid.UUID, p domain.Photo) (domain.Photo, error) {
	const q = `
		INSERT INTO photos (cruise_id, image_data, sort_order)
		VALUES (@cruise_id, @image_data, @sort_order)
		RETURNING id, created_at`

	args := pgx.NamedArgs{
		"cruise_id":  cruiseID,
		"image_data": p.ImageData,
		"sort_order": p.SortOrder,
	}

	var id pgtype.UUID
	if err := tx.QueryRow(ctx, q, args).Scan(&id, &p.CreatedAt); err != nil {
		return domain.Photo{}, fmt.Errorf("insert photo: %w", err)
	}
	p.ID = uuid.UUID(id.Bytes)
	p.CruiseID = cruiseID
	return p, nil
}

// loadChildren populates the route, expenses, and photos of a cruise.
func (r *pgCruiseRepo) loadChildren(ctx context.Context, cruise *domain.Cruise) error {
	ports, err := r.listPorts(ctx, cruise.ID)
	if err != nil {
		return err
	}
	cruise.Route = ports

	expenses, err := r.listExpenses(ctx, cruise.ID)
	if err != nil {
		return err
	}
	cruise.Expenses = expenses

	photos, err := r.listPhotos(ctx, cruise.ID)
	if err != nil {
		return err
	}
	cruise.Photos = photos
	return nil
}

func (r *pgCruiseRepo) listPorts(ctx context.Context, cruiseID uuid.UUID) ([]domain.Port, error) {
	const q = `
		SELECT id, cruise_id, name, country, latitude, longitude,
		       arrival, departure, sort_order, is_sea_day, excursions, image_data
		FROM ports
		WHERE cruise_id = @cruise_id
		ORDER BY sort_order`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"cruise_id": cruiseID})
	if err != nil {
		return nil, fmt.Errorf("list ports: %w", err)
	}
	defer rows.Close()

	var ports []domain.Port
	for rows.Next() {
		var (
			p          domain.Port
			id, crID   pgtype.UUID
			excursions []string
		)
		err := rows.Scan(&id, &crID, &p.Name, &p.Country, &p.Latitude, &p.Longitude,
			&p.Arrival, &p.Departure, &p.SortOrder, &p.IsSeaDay, &excursions, &p.ImageData)
		if err != nil {
			return nil, fmt.Errorf("scan port: %w", err)
		}
		p.ID = uuid.UUID(id.Bytes)
		p.CruiseID = uuid.UUID(crID.Bytes)
		p.Excursions = excursions
		ports = append(ports, p)
	}
	return ports, rows.Err()
}

func (r *pgCruiseRepo) listExpenses(ctx context.Context, cruiseID uuid.UUID) ([]domain.Expense, error) {
	const q = `
		SELECT id, cruise_id, category, description, amount, expense_date, created_at
		FROM expenses
		WHERE cruise_id = @cruise_id
		ORDER BY created_at`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"cruise_id": cruiseID})
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []domain.Expense
	for rows.Next() {
		var (
			e           domain.Expense
			id, crID    pgtype.UUID
			category    string
			amount      decimal.Decimal
			expenseDate pgtype.Date
		)
		err := rows.Scan(&id, &crID, &category, &e.Description, &amount, &expenseDate, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		e.ID = uuid.UUID(id.Bytes)
		e.CruiseID = uuid.UUID(crID.Bytes)
		e.Category = domain.MapExpenseCategory(category)
		e.Amount = amount
		if expenseDate.Valid {
			d := expenseDate.Time
			e.ExpenseDate = &d
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

func (r *pgCruiseRepo) listPhotos(ctx context.Context, cruiseID uuid.UUID) ([]domain.Photo, error) {
	const q = `
		SELECT id, cruise_id, image_data, sort_order, created_at
		FROM photos
		WHERE cruise_id = @cruise_id
		ORDER BY sort_order, created_at`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"cruise_id": cruiseID})
	if err != nil {
		return nil, fmt.Errorf("list photos: %w", err)
	}
	defer rows.Close()

	var photos []domain.Photo
	for rows.Next() {
		var (
			p        domain.Photo
			id, crID pgtype.UUID
		)
		if err := rows.Scan(&id, &crID, &p.ImageData, &p.SortOrder, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan photo: %w", err)
		}
		p.ID = uuid.UUID(id.Bytes)
		p.CruiseID = uuid.UUID(crID.Bytes)
		photos = append(photos, p)
	}
	return photos, rows.Err()
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scanCruise
// to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanCruise maps a single database row into a domain.Cruise (without
// children). It handles the UUID and date conversions.
func scanCruise(s scanner) (domain.Cruise, error) {
	var (
		c         domain.Cruise
		id        pgtype.UUID
		startDate pgtype.Date
		endDate   pgtype.Date
	)

	err := s.Scan(&id, &c.Title, &startDate, &endDate, &c.ShippingLine, &c.Ship,
		&c.CabinType, &c.CabinNumber, &c.BookingNumber, &c.Notes, &c.Rating,
		&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Cruise{}, domain.ErrNotFound
		}
		return domain.Cruise{}, err
	}

	c.ID = uuid.UUID(id.Bytes)
	c.StartDate = startDate.Time
	c.EndDate = endDate.Time
	return c, nil
}
