// anylog - log line timestamp splitter
//
// anylog splits free-form log lines into a recognized timestamp and the
// remaining message, detecting the timestamp convention per line.
package main

import (
	"os"

	"github.com/getsentry/anylog/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
