package database

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestAddIndexes_SkipsDialectsWithoutCatalog(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, AddIndexes(db))
}

func TestAddIndexes_MySQLChecksInformationSchema(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	for _, idx := range compositeIndexes {
		mock.ExpectQuery(`FROM information_schema\.statistics`).
			WithArgs(idx.table, idx.name).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	}

	require.NoError(t, AddIndexes(db))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAddIndexes_MySQLCreatesMissingIndex(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	for i, idx := range compositeIndexes {
		count := 1
		if i == 0 {
			count = 0
		}
		mock.ExpectQuery(`FROM information_schema\.statistics`).
			WithArgs(idx.table, idx.name).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(count))
		if count == 0 {
			mock.ExpectExec(`CREATE INDEX ` + idx.name).
				WillReturnResult(sqlmock.NewResult(0, 0))
		}
	}

	require.NoError(t, AddIndexes(db))
	require.NoError(t, mock.ExpectationsWereMet())
}
