package main

import "github.com/RMvanderGaag/find-a-buddy/internal/cli"

func main() {
	cli.Execute()
}
