// Package config loads and validates the service configuration from defaults,
// an optional config file and PIZZA_-prefixed environment variables. It keeps
// configuration details out of the business logic and hands each component
// only the section it needs.
package config
