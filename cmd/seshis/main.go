package main

import "github.com/pfxtools/seshis/internal/cli"

func main() {
	cli.Execute()
}
