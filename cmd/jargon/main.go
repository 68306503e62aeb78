// Jargon - consent-first personal data vault client
package main

import "github.com/jargon-id/jargon/internal/cli"

var version = "0.1.0"

func main() {
	cli.SetVersion(version)
	cli.Execute()
}
