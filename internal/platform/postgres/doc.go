// Package postgres contains the PostgreSQL implementations of the store
// interfaces, built on the standard database/sql package with the pgx driver.
package postgres
