package appointment

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newGormOverMock(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	assert.NoError(t, err)
	return gdb, mock
}

func TestRepository_WithTx_RunsOnCallerTransaction(t *testing.T) {
	gdb, poolMock := newGormOverMock(t)

	txDB, txMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer txDB.Close()

	txMock.ExpectBegin()
	txMock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "appointments" WHERE id = $1`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	txMock.ExpectCommit()

	tx, err := txDB.Begin()
	assert.NoError(t, err)

	repo := NewRepository(gdb)
	assert.NoError(t, repo.WithTx(tx).Delete(context.Background(), uuid.New().String()))
	assert.NoError(t, tx.Commit())

	// The delete must have run on the transaction's connection; the gorm
	// pool connection saw nothing.
	assert.NoError(t, txMock.ExpectationsWereMet())
	assert.NoError(t, poolMock.ExpectationsWereMet())
}

func TestRepository_WithTx_DoesNotLeakIntoRootSession(t *testing.T) {
	gdb, _ := newGormOverMock(t)

	txDB, txMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer txDB.Close()
	txMock.ExpectBegin()

	tx, err := txDB.Begin()
	assert.NoError(t, err)

	base := NewRepository(gdb).(*repository)
	bound := base.WithTx(tx).(*repository)

	assert.Same(t, tx, bound.db.Statement.ConnPool)
	assert.NotSame(t, tx, base.db.Statement.ConnPool)
}
