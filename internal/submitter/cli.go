package submitter

import "os"

// ShowHelp prints usage information for the coin-submit tool.
func ShowHelp() {
	os.Stdout.WriteString(`Coin Submit Tool
================

Posts coin detail payloads to the coin API's /coin/detail endpoint.

Usage:
  go run ./cmd/coin-submit [options]

Options:
  -url string
        Base address of the coin API (default "http://localhost:8088/api")
  -symbol string
        Submit {"symbol": <value>}
  -data string
        Submit an inline JSON payload
  -file string
        Submit every element of a JSON array file
  -workers int
        Number of concurrent workers (default 4)
  -timeout duration
        Per-request timeout (default 0, no timeout)
  -verbose
        Print response bodies
  -help
        Show this help message

Examples:
  go run ./cmd/coin-submit -symbol BTC
  go run ./cmd/coin-submit -data '{"symbol":"ETH","currency":"USD"}'
  go run ./cmd/coin-submit -file coins.json -workers 8 -verbose
`)
}
