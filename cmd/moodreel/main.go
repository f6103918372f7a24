package main

import "github.com/kittclouds/moodreel/internal/cli"

func main() {
	cli.Execute()
}
