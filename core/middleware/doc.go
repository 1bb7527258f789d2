// Package middleware groups the Fiber middlewares used by the stub backend
// server: request-id tagging (requestid) and API key authentication (auth).
package middleware
