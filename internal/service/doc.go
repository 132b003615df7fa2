// Package service provides application-level services for managing tasks.
//
// Services sit between the HTTP handlers and the store: they normalise and
// validate input, call the store, log, and emit lifecycle events.
package service
