package main

import "github.com/pfrederiksen/fgo-events/internal/cli"

func main() {
	cli.Execute()
}
