package main

import "github.com/relloyd/sfsync/cmd"

func main() {
	cmd.Execute()
}
