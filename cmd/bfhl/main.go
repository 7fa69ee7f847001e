// Command bfhl runs the BFHL computation API.
//
//	bfhl                      serve until SIGINT/SIGTERM (same as "bfhl serve")
//	bfhl compute '<json>'     evaluate one request body offline
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
