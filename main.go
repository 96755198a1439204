package main

import "github.com/isdelr/fittrack-be/internal/cli"

func main() {
	cli.Execute()
}
