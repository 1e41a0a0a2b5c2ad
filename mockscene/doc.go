// Package mockscene is an in-process scene service for development and tests.
//
// It serves the two routes the client uses, under a configurable prefix:
//
//	GET  {prefix}/health        200 {"status":"ok","service":"scene-svc"}
//	POST {prefix}/scenes/apply  202 {"status":"accepted"}
//
// Run serves the handler over HTTPS and requires client certificates signed by
// the configured CA.
package mockscene
