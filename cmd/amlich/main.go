package main

import "github.com/guttosm/amlich/internal/cli"

func main() {
	cli.Execute()
}
