package main

import "github.com/cppla/askboard/cli"

func main() {
	cli.Execute()
}
