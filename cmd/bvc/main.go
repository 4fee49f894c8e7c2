package main

import "github.com/bisonvert/bv.libclient/internal/cli"

func main() {
	cli.Execute()
}
