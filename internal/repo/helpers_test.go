package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-registry/internal/domain"
	"github.com/pkordes/trip-registry/testutil"
)

// newTestTx returns a transaction rolled back when the test ends.
// Requires TEST_DATABASE_URL; TestMain applies the migrations.
func newTestTx(t *testing.T) pgx.Tx {
	t.Helper()
	return testutil.NewTx(t)
}

// insertTrip writes a trip row directly; trips are owned by another system so
// the repos have no Create method.
func insertTrip(t *testing.T, tx pgx.Tx, name string, dateFrom time.Time) int {
	t.Helper()
	var id int
	err := tx.QueryRow(context.Background(), `
		INSERT INTO trip (name, description, date_from, date_to, max_people)
		VALUES ($1, $2, $3, $4, 20)
		RETURNING id_trip`,
		name, name+" description", dateFrom, dateFrom.AddDate(0, 0, 7),
	).Scan(&id)
	require.NoError(t, err, "insert trip")
	return id
}

// insertCountry writes a country and links it to the given trip.
func insertCountry(t *testing.T, tx pgx.Tx, tripID int, name string) {
	t.Helper()
	var id int
	err := tx.QueryRow(context.Background(),
		`INSERT INTO country (name) VALUES ($1) RETURNING id_country`, name).Scan(&id)
	require.NoError(t, err, "insert country")

	_, err = tx.Exec(context.Background(),
		`INSERT INTO country_trip (id_country, id_trip) VALUES ($1, $2)`, id, tripID)
	require.NoError(t, err, "link country")
}

// clientFixture returns a domain.Client with sensible defaults for use in tests.
func clientFixture(pesel string) domain.Client {
	return domain.Client{
		FirstName: "Jan",
		LastName:  "Kowalski",
		Email:     "jan.kowalski@example.com",
		Telephone: "+48 600 100 200",
		Pesel:     pesel,
	}
}
