package main

import "github.com/KestrelData/tabsum-cli/cmd"

func main() {
	cmd.Execute()
}
