package main

import "github.com/qdev-tools/aerdev/cmd"

func main() {
	cmd.Execute()
}
