// Package redis keeps login sessions in Redis as an alternative to the
// sessions table. Keys expire with their token, so no purge is needed.
package redis
