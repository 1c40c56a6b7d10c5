// Package postgres provides PostgreSQL-backed implementations of the
// store interfaces. Stores accept a store.DBTX, so the same code runs
// against a connection pool or inside a transaction.
package postgres
