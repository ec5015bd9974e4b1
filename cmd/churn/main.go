// Package main is the entry point for the churn CLI tool.
package main

import (
	"github.com/hargabyte/churn/internal/cmd"
)

func main() {
	cmd.Execute()
}
