package main

import "github.com/yukimura/cfp-tracker/internal/cli"

func main() {
	cli.Execute()
}
