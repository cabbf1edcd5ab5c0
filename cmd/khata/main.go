package main

import "github.com/khata-pos/khata/internal/cli"

func main() {
	cli.Execute()
}
