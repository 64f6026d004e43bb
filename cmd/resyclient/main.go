package main

import "github.com/example/resy-client/cmd"

func main() {
	cmd.Execute()
}
