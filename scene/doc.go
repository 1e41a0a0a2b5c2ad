// Package scene is the client for the Lokan scene service.
//
// A Client owns one HTTP transport configured for mutual TLS and issues
// synchronous requests against two endpoints:
//
//	GET  {base}/health        -> Health
//	POST {base}/scenes/apply  -> ApplyScene, ApplyOperations
//
// Every failure is a *Error carrying one of a closed set of result codes
// (CodeInvalidArgument, CodeAllocationFailure, CodeTransportError,
// CodeHTTPError, CodeParseError).
//
// # Usage
//
//	client, err := scene.New(&scene.Config{
//	    BaseURL:        "https://hub.local:9443/scene-svc",
//	    ClientCertFile: "/etc/lokan/client.pem",
//	    ClientKeyFile:  "/etc/lokan/client-key.pem",
//	    CAFile:         "/etc/lokan/ca.pem",
//	})
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	status, err := client.Health(ctx)
//
// A Client is not safe for concurrent use. Use one Client per goroutine or
// serialize access.
package scene
