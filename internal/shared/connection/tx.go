package connection

import (
	"database/sql"

	"gorm.io/gorm"
)

// UseTx binds a gorm session to tx so every statement issued through the
// returned handle runs on the caller's transaction instead of the pool.
// Passing the parent context forces the session to clone its statement, so
// swapping the conn pool cannot leak into the shared root session.
func UseTx(db *gorm.DB, tx *sql.Tx) *gorm.DB {
	session := db.Session(&gorm.Session{
		NewDB:                  true,
		SkipDefaultTransaction: true,
		Context:                db.Statement.Context,
	})
	session.Statement.ConnPool = tx
	return session
}
