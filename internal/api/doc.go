// Package api contains the HTTP handlers of the pizza service. Handlers
// decode and validate requests, call the services in internal/service and
// translate their errors into status codes and client-safe messages.
package api
