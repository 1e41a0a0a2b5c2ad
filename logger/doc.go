// Package logger provides structured logging built on zerolog.
//
// The scene client takes a *Logger through an option and logs nothing when
// none is given. Command-line tools configure one from the logging section of
// their configuration:
//
//	logging:
//	  level: "debug"
//	  format: "json"
//	  output: "stderr"
//
// # Usage
//
//	log := logger.Get("scenectl")
//	log.Info("health checked", logger.Fields("status", status))
package logger
