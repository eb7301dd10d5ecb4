package main

import "github.com/declbridge/declbridge/cmd"

func main() {
	cmd.Execute()
}
