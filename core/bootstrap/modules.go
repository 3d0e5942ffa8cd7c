package bootstrap

import "context"

// Storage represents the application's storage gateway passed to seeders.
// Bootstrap does not depend on the concrete store type.
type Storage interface{}

// Seeder loads reference data into a storage implementation.
type Seeder interface {
	Seed(ctx context.Context, storage Storage) error
}

// SeederFunc adapts a bare function to the Seeder interface.
type SeederFunc func(ctx context.Context, storage Storage) error

// Seed executes the underlying function.
func (f SeederFunc) Seed(ctx context.Context, storage Storage) error {
	return f(ctx, storage)
}

// Modules groups optional startup hooks executed by Run after migrations.
type Modules struct {
	Seeders []Seeder
}
