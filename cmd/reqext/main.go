package main

import "github.com/mvp-joe/reqext/internal/cli"

func main() {
	cli.Execute()
}
