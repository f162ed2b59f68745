package service

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/kairowan/gatehouse/internal/domain"
)

func newMockGorm(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)
	return gdb, mock
}

func TestExportActiveUsersJSON(t *testing.T) {
	gdb, mock := newMockGorm(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, username, email FROM users WHERE deleted_at IS NULL ORDER BY id")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email"}).
			AddRow(1, "alice", "alice@example.com").
			AddRow(2, "bob", "bob@example.com"))

	e := NewExporter(gdb)
	res, err := e.Export(context.Background(), "active-users", "json")
	require.NoError(t, err)

	assert.Equal(t, "active-users", res.Report)
	assert.Equal(t, []string{"id", "username", "email"}, res.Columns)
	require.Len(t, res.Rows, 2)
	assert.Equal(t, "alice", res.Rows[0][1])
	assert.Empty(t, res.CSV)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExportCSV(t *testing.T) {
	gdb, mock := newMockGorm(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) AS total FROM records WHERE deleted_at IS NULL")).
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(42))

	e := NewExporter(gdb)
	res, err := e.Export(context.Background(), "record-count", "csv")
	require.NoError(t, err)

	assert.Nil(t, res.Rows)
	assert.Equal(t, "total\n42\n", res.CSV)
}

func TestExportRejectsUnknownReport(t *testing.T) {
	gdb, _ := newMockGorm(t)
	e := NewExporter(gdb)

	// 自由查询文本没有任何通路
	for _, name := range []string{"DROP TABLE users", "select 1", "nope"} {
		_, err := e.Export(context.Background(), name, "json")
		require.Error(t, err, "report %q", name)
		assert.True(t, domain.IsKind(err, domain.KindValidation), "report %q", name)
	}
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	gdb, _ := newMockGorm(t)
	e := NewExporter(gdb)

	_, err := e.Export(context.Background(), "record-count", "xml")
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindValidation))
}
