package main

import "lumidex/internal/cli"

func main() {
	cli.Execute()
}
