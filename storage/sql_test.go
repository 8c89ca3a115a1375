package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockSQL(t *testing.T) (*SQL, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{Conn: conn, SkipInitializeWithVersion: true}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return NewSQL(db, ""), mock
}

func TestSQLLoad(t *testing.T) {
	s, mock := newMockSQL(t)
	doc, err := Encode(sampleCorpus())
	require.NoError(t, err)

	now := time.Now()
	mock.ExpectQuery("SELECT \\* FROM `kv_entries` WHERE `key` = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"key", "value", "created_at", "updated_at"}).
			AddRow(DefaultKey, string(doc), now, now))

	got, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, sampleCorpus(), got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLLoadMissingRow(t *testing.T) {
	s, mock := newMockSQL(t)
	mock.ExpectQuery("SELECT \\* FROM `kv_entries`").
		WillReturnRows(sqlmock.NewRows([]string{"key", "value", "created_at", "updated_at"}))

	got, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSQLSaveUpserts(t *testing.T) {
	s, mock := newMockSQL(t)
	mock.ExpectExec("INSERT INTO `kv_entries` .* ON DUPLICATE KEY UPDATE").
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, s.Save(context.Background(), sampleCorpus()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLSaveError(t *testing.T) {
	s, mock := newMockSQL(t)
	mock.ExpectExec("INSERT INTO `kv_entries`").WillReturnError(errors.New("connection reset"))

	err := s.Save(context.Background(), sampleCorpus())
	assert.ErrorContains(t, err, "connection reset")
}
