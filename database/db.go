package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"
	"tripagent/catalog"

	_ "github.com/lib/pq"
)

var DB *sql.DB

// ─── Init ─────────────────────────────────────────────────────────────────────

func InitDB(dsn string) error {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// The database container may still be starting
	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		log.Printf("⏳ Waiting for database... attempt %d/10: %v", i+1, err)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		db.Close()
		return fmt.Errorf("connect to database after retries: %w", err)
	}

	DB = db
	if err := Migrate(context.Background()); err != nil {
		return err
	}
	log.Println("✅ Database connected and migrated")
	return nil
}

func Close() error {
	if DB == nil {
		return nil
	}
	return DB.Close()
}

// ─── Migrations ───────────────────────────────────────────────────────────────

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS flights (
		id          SERIAL PRIMARY KEY,
		from_city   TEXT NOT NULL,
		to_city     TEXT NOT NULL,
		airline     TEXT NOT NULL,
		price       NUMERIC(12,2) NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS hotels (
		id              SERIAL PRIMARY KEY,
		city            TEXT NOT NULL,
		name            TEXT NOT NULL,
		price_per_night NUMERIC(12,2) NOT NULL,
		stars           INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE TABLE IF NOT EXISTS places (
		id      SERIAL PRIMARY KEY,
		city    TEXT NOT NULL,
		name    TEXT NOT NULL,
		rating  NUMERIC(3,1) NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_flights_route ON flights(from_city, to_city)`,
	`CREATE INDEX IF NOT EXISTS idx_hotels_city ON hotels(city)`,
	`CREATE INDEX IF NOT EXISTS idx_places_city ON places(city)`,
}

func Migrate(ctx context.Context) error {
	for _, m := range migrations {
		if _, err := DB.ExecContext(ctx, m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}

// ─── Catalog ──────────────────────────────────────────────────────────────────

// LoadCatalog reads all three tables in insertion order.
func LoadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	flights, err := loadFlights(ctx)
	if err != nil {
		return nil, err
	}
	hotels, err := loadHotels(ctx)
	if err != nil {
		return nil, err
	}
	places, err := loadPlaces(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.New(flights, hotels, places), nil
}

func loadFlights(ctx context.Context) ([]catalog.Flight, error) {
	rows, err := DB.QueryContext(ctx, `
		SELECT from_city, to_city, airline, price
		FROM flights ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query flights: %w", err)
	}
	defer rows.Close()

	var flights []catalog.Flight
	for rows.Next() {
		var f catalog.Flight
		if err := rows.Scan(&f.From, &f.To, &f.Airline, &f.Price); err != nil {
			return nil, fmt.Errorf("scan flight: %w", err)
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

func loadHotels(ctx context.Context) ([]catalog.Hotel, error) {
	rows, err := DB.QueryContext(ctx, `
		SELECT city, name, price_per_night, stars
		FROM hotels ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query hotels: %w", err)
	}
	defer rows.Close()

	var hotels []catalog.Hotel
	for rows.Next() {
		var h catalog.Hotel
		if err := rows.Scan(&h.City, &h.Name, &h.PricePerNight, &h.Stars); err != nil {
			return nil, fmt.Errorf("scan hotel: %w", err)
		}
		hotels = append(hotels, h)
	}
	return hotels, rows.Err()
}

func loadPlaces(ctx context.Context) ([]catalog.Place, error) {
	rows, err := DB.QueryContext(ctx, `
		SELECT city, name, rating
		FROM places ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query places: %w", err)
	}
	defer rows.Close()

	var places []catalog.Place
	for rows.Next() {
		var p catalog.Place
		if err := rows.Scan(&p.City, &p.Name, &p.Rating); err != nil {
			return nil, fmt.Errorf("scan place: %w", err)
		}
		places = append(places, p)
	}
	return places, rows.Err()
}

// ImportCatalog replaces the stored catalog with c in a single transaction.
func ImportCatalog(ctx context.Context, c *catalog.Catalog) (err error) {
	tx, err := DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	for _, table := range []string{"flights", "hotels", "places"} {
		if _, err = tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for _, f := range c.Flights() {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO flights (from_city, to_city, airline, price)
			VALUES ($1, $2, $3, $4)`,
			f.From, f.To, f.Airline, f.Price); err != nil {
			return fmt.Errorf("insert flight %s->%s: %w", f.From, f.To, err)
		}
	}

	for _, h := range c.Hotels() {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO hotels (city, name, price_per_night, stars)
			VALUES ($1, $2, $3, $4)`,
			h.City, h.Name, h.PricePerNight, h.Stars); err != nil {
			return fmt.Errorf("insert hotel %s: %w", h.Name, err)
		}
	}

	for _, p := range c.Places() {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO places (city, name, rating)
			VALUES ($1, $2, $3)`,
			p.City, p.Name, p.Rating); err != nil {
			return fmt.Errorf("insert place %s: %w", p.Name, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit import: %w", err)
	}
	return nil
}

// Ping reports database health for the health endpoint.
func Ping(ctx context.Context) string {
	if DB == nil {
		return "not initialized"
	}
	if err := DB.PingContext(ctx); err != nil {
		return "error: " + err.Error()
	}
	return "ok"
}
