// Package store defines the persistence interfaces of the pizza service and
// the errors every implementation reports. Business rules depend on these
// interfaces only; PostgreSQL and Redis implementations live under
// internal/platform.
package store
