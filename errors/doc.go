// Package errors provides the structured error body used by the mock scene
// service. Errors carry a machine-readable code, an HTTP status and optional
// details, and serialize as {"error": {...}} following RFC 7807.
package errors
