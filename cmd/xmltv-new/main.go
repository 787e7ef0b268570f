// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// xmltv-new lists upcoming broadcasts of new programmes found in a
// directory of daily XMLTV snapshots.
//
// Usage:
//
//	xmltv-new [table] [--config config] [--base DIR] [-o FILE]
//	xmltv-new feed    [--config config] [--base DIR] [-o FILE]
//	xmltv-new version
//
// Exit codes:
//   - 0: Document written
//   - 1: Run failed (configuration or snapshot error)
//   - 2: Usage error
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
