package migrations

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{}) {}

func TestList_OrderedAndEmbedded(t *testing.T) {
	migrations, err := List()
	require.NoError(t, err)
	require.Len(t, migrations, 2)

	assert.Equal(t, "0001_init.sql", migrations[0].Version)
	assert.Contains(t, migrations[0].SQL, "bookings_no_overlap")
	assert.Equal(t, "0002_routines.sql", migrations[1].Version)
	assert.Contains(t, migrations[1].SQL, "get_available_slots")
	assert.Contains(t, migrations[1].SQL, "is_slot_available")
	assert.Contains(t, migrations[1].SQL, "sync_lot_cache")
}

func TestApply_SkipsAppliedVersions(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT EXISTS").WithArgs("0001_init.sql").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery("SELECT EXISTS").WithArgs("0002_routines.sql").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectBegin()
	mock.ExpectExec("CREATE OR REPLACE FUNCTION").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO schema_migrations").WithArgs("0002_routines.sql").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	applied, err := Apply(context.Background(), db, nopLogger{})

	require.NoError(t, err)
	assert.Equal(t, 1, applied)
	assert.NoError(t, mock.ExpectationsWereMet())
}
