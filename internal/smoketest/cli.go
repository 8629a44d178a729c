package smoketest

import "os"

// ShowHelp prints usage information for the smoke test tool.
func ShowHelp() {
	os.Stdout.WriteString(`Activities Smoke Test Tool
==========================

Exercises a running activities server: list, signup, duplicate signup,
unregister, and absent unregister, checking each response against the API
contract.

Usage:
  go run cmd/smoke/main.go [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:8000")
  -activity string
        Activity to sign up for (default "Chess Club")
  -email string
        Email to use (default: generated smoke-<uuid>@mergington.edu)
  -timeout duration
        HTTP request timeout (default 10s)
  -verbose
        Log each step as it passes
  -help
        Show this help message

Examples:
  # Test a local server with default settings
  go run cmd/smoke/main.go

  # Test another activity on a remote server
  go run cmd/smoke/main.go -url http://school.example:8000 -activity "Drama Club"
`)
}
