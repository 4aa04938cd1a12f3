// Package httpserver runs the HTTP server with graceful shutdown.
//
// Run listens on the configured address, serves until the context is
// cancelled or SIGINT/SIGTERM arrives and then shuts down within
// ShutdownTimeout. Liveness and Readiness return probe handlers.
//
//	srv := httpserver.New(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
package httpserver
