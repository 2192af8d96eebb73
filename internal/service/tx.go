package service

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// runTx executes fn inside a GORM transaction. Any error returned by fn
// rolls the whole unit back. Under SQLite the pool holds one connection,
// so fn must only use tx.
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	return db.WithContext(ctx).Transaction(fn)
}

// naoEncontrado translates gorm.ErrRecordNotFound into ErrNaoEncontrado and
// passes any other error through.
func naoEncontrado(err error, oque string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return wrap(ErrNaoEncontrado, oque)
	}
	return err
}
