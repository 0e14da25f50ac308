package main

import "github.com/sslp23/world-cup-sim-26/internal/cli"

func main() {
	cli.Execute()
}
