// Command cognet builds the CogNet cognate graph and bulk-loads it into
// PostgreSQL.
//
// Subcommands:
//
//	run           all phases in order (--phase selects a subset)
//	normalize     corpus → unique word entries
//	load-entries  entries → cognates table
//	languages     entries → languages table
//	export        cognates table → snapshot
//	edges         corpus + snapshot → canonical edges
//	load-edges    edges → edges table
//	migrate       apply goose migrations
//	version       print build information
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand(os.Stdout).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "cognet: failed: %v\n", err)
		os.Exit(1)
	}
}
