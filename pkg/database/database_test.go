package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRow struct {
	ID   int64
	Name string
}

func TestOpen_SQLiteMemory(t *testing.T) {
	db, err := Open(Options{Driver: DriverSQLite, DSN: ":memory:"}, &testRow{})
	require.NoError(t, err)
	defer Close(db)

	require.NoError(t, db.Create(&testRow{Name: "a"}).Error)

	var count int64
	require.NoError(t, db.Model(&testRow{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestOpen_InvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"未知驱动", Options{Driver: "mysql", DSN: "x"}},
		{"postgres 缺少 dsn", Options{Driver: DriverPostgres}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, err := Open(tt.opts)
			assert.Error(t, err)
			assert.Nil(t, db)
		})
	}
}
