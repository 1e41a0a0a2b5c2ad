// Command scenectl talks to a Lokan scene service over mutual TLS.
//
//	scenectl health
//	scenectl apply evening
//	scenectl apply --payload '{"sceneId":"evening","fade":3}'
//	scenectl apply night --op lamp-1='{"on":false}' --op lock-1='{"locked":true}'
//
// Connection settings come from LOKAN_SDK_* environment variables, an
// optional YAML file (--config) and flags.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
