// Package server implements the development stub backend: an in-memory
// entitlement service exposing the subscriber and receipt routes the client
// stack talks to, plus its configuration partial.
package server
