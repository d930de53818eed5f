package main

import "github.com/wbliga/wb-liga/internal/cli"

func main() {
	cli.Execute()
}
