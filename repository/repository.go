// Package repository stores orders and the reference data checkout reads
// (branches, delivery areas, promo codes, the discount setting) in MongoDB.
package repository

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("already exists")
	ErrConflict  = errors.New("modified concurrently")
)

// translate maps driver errors onto the package's sentinel errors.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return ErrDuplicate
	default:
		return err
	}
}

// Timestamp is the current time truncated to seconds, the precision every
// stored createdAt/updatedAt uses.
func Timestamp() time.Time {
	now, _ := time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
	return now
}
