package main

import "briefy/internal/cli"

func main() {
	cli.Execute()
}
