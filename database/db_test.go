package database

import (
	"context"
	"errors"
	"testing"
	"tripagent/catalog"

	"github.com/DATA-DOG/go-sqlmock"
)

func setupMock(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	DB = db
	t.Cleanup(func() {
		db.Close()
		DB = nil
	})
	return mock
}

func TestLoadCatalog(t *testing.T) {
	mock := setupMock(t)

	mock.ExpectQuery("SELECT from_city, to_city, airline, price\\s+FROM flights ORDER BY id").
		WillReturnRows(sqlmock.NewRows([]string{"from_city", "to_city", "airline", "price"}).
			AddRow("Delhi", "Goa", "IndiGo", 5400.0).
			AddRow("Delhi", "Goa", "SpiceJet", 4800.0))
	mock.ExpectQuery("SELECT city, name, price_per_night, stars\\s+FROM hotels ORDER BY id").
		WillReturnRows(sqlmock.NewRows([]string{"city", "name", "price_per_night", "stars"}).
			AddRow("Goa", "Zostel", 1200.0, 2))
	mock.ExpectQuery("SELECT city, name, rating\\s+FROM places ORDER BY id").
		WillReturnRows(sqlmock.NewRows([]string{"city", "name", "rating"}).
			AddRow("Goa", "Baga Beach", 4.5).
			AddRow("Goa", "Fort Aguada", 4.5))

	c, err := LoadCatalog(context.Background())
	if err != nil {
		t.Fatalf("LoadCatalog returned error: %v", err)
	}

	flights := c.Flights()
	if len(flights) != 2 || flights[0].Airline != "IndiGo" || flights[1].Price != 4800 {
		t.Fatalf("flights loaded incorrectly: %+v", flights)
	}
	if h := c.Hotels(); len(h) != 1 || h[0].Stars != 2 || h[0].PricePerNight != 1200 {
		t.Fatalf("hotels loaded incorrectly: %+v", h)
	}
	// row order decides ties
	if names := catalog.PlaceNames(c.DiscoverPlaces("Goa", 2)); names[0] != "Baga Beach" {
		t.Fatalf("place order not preserved: %v", names)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestLoadCatalogQueryError(t *testing.T) {
	mock := setupMock(t)

	mock.ExpectQuery("FROM flights").WillReturnError(errors.New("relation does not exist"))

	if _, err := LoadCatalog(context.Background()); err == nil {
		t.Fatalf("expected error when flights query fails")
	}
}

func TestImportCatalog(t *testing.T) {
	mock := setupMock(t)

	c := catalog.New(
		[]catalog.Flight{{From: "Delhi", To: "Goa", Airline: "IndiGo", Price: 5400}},
		[]catalog.Hotel{{City: "Goa", Name: "Zostel", PricePerNight: 1200, Stars: 2}},
		[]catalog.Place{{City: "Goa", Name: "Baga Beach", Rating: 4.5}},
	)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM flights").WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("DELETE FROM hotels").WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("DELETE FROM places").WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("INSERT INTO flights").
		WithArgs("Delhi", "Goa", "IndiGo", 5400.0).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO hotels").
		WithArgs("Goa", "Zostel", 1200.0, 2).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO places").
		WithArgs("Goa", "Baga Beach", 4.5).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	if err := ImportCatalog(context.Background(), c); err != nil {
		t.Fatalf("ImportCatalog returned error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestImportCatalogRollsBack(t *testing.T) {
	mock := setupMock(t)

	c := catalog.New([]catalog.Flight{{From: "A", To: "B", Airline: "X", Price: 1}}, nil, nil)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM flights").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM hotels").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM places").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO flights").WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	if err := ImportCatalog(context.Background(), c); err == nil {
		t.Fatalf("expected import error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMigrate(t *testing.T) {
	mock := setupMock(t)

	for range migrations {
		mock.ExpectExec("CREATE").WillReturnResult(sqlmock.NewResult(0, 0))
	}

	if err := Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate returned error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPingWithoutDB(t *testing.T) {
	DB = nil
	if got := Ping(context.Background()); got != "not initialized" {
		t.Fatalf("Ping = %q", got)
	}
}
