package main

import "github.com/eventorbit/server/cmd/server/cmd"

func main() {
	cmd.Execute()
}
