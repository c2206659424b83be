package main

import "personarank/internal/cli"

func main() {
	cli.Execute()
}
