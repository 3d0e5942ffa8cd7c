package bootstrap

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coreconfig "github.com/SI1V/GymStars/core/config"
	coredatabase "github.com/SI1V/GymStars/core/database"
)

// nopConnector lets tests hand Run a pool that never dials out.
type nopConnector struct{}

func (nopConnector) Connect(context.Context) (driver.Conn, error) {
	return nil, errors.New("not dialable")
}

func (nopConnector) Driver() driver.Driver { return nil }

func testOptions(t *testing.T) Options {
	t.Helper()
	return Options{
		Config:     &coreconfig.Config{},
		LoggerInit: func(*coreconfig.Config) error { return nil },
		Connect: func(coredatabase.Config) (*sqlx.DB, error) {
			return sqlx.NewDb(sql.OpenDB(nopConnector{}), "postgres"), nil
		},
		Migrate: func(coredatabase.Config) error { return nil },
	}
}

type fakeStore struct{ seeded int }

func TestRunExecutesSeeders(t *testing.T) {
	store := &fakeStore{}

	opts := testOptions(t)
	opts.NewStorage = func(*sqlx.DB) Storage { return store }
	opts.Modules = Modules{Seeders: []Seeder{
		SeederFunc(func(_ context.Context, st Storage) error {
			fs, ok := st.(*fakeStore)
			require.True(t, ok)
			fs.seeded++
			return nil
		}),
	}}

	res, err := Run(opts)
	require.NoError(t, err)
	defer res.DB.Close()

	assert.Equal(t, 1, store.seeded)
	assert.Same(t, store, res.Storage)
}

func TestRunSeederFailureAborts(t *testing.T) {
	opts := testOptions(t)
	opts.NewStorage = func(*sqlx.DB) Storage { return &fakeStore{} }
	opts.Modules = Modules{Seeders: []Seeder{
		SeederFunc(func(context.Context, Storage) error {
			return errors.New("reference data missing")
		}),
	}}

	_, err := Run(opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "seeding failed")
}

func TestRunSeedersRequireStorage(t *testing.T) {
	opts := testOptions(t)
	opts.Modules = Modules{Seeders: []Seeder{
		SeederFunc(func(context.Context, Storage) error { return nil }),
	}}

	_, err := Run(opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "without storage")
}
