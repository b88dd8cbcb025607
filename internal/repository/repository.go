// Package repository is the persistence layer. Repositories take the pgx pool
// from the server container and return model types.
package repository
