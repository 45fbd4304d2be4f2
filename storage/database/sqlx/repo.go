// Package sqlxrepos implements the domain repositories on top of jmoiron/sqlx.
// Queries are written with `?` placeholders and rebound for the connected driver.
package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

// trapNoRowsErr maps the "no rows" err to the domain `notFound` err.
func trapNoRowsErr(err error, notFound error, msg string) error {
	if errors.Cause(err) == sql.ErrNoRows {
		return notFound
	}
	return errors.Wrap(err, msg)
}

// insert runs an INSERT ... RETURNING id statement and returns the new id.
func insert(ctx context.Context, ext sqlx.ExtContext, query string, args ...interface{}) (int, error) {
	var id int
	if err := sqlx.GetContext(ctx, ext, &id, ext.Rebind(query+" RETURNING id"), args...); err != nil {
		return 0, err
	}
	return id, nil
}

// inTx runs `fn` in a transaction committed only when `fn` succeeds.
func inTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	return errors.Wrap(tx.Commit(), "committing transaction")
}

// selectIn runs a SELECT with an `IN (?)` clause expanded for `args`.
func selectIn(ctx context.Context, db *sqlx.DB, dest interface{}, query string, args ...interface{}) error {
	q, inArgs, err := sqlx.In(query, args...)
	if err != nil {
		return err
	}
	return db.SelectContext(ctx, dest, db.Rebind(q), inArgs...)
}
