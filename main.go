package main

import "github.com/docvault/docvault/cmd"

func main() {
	cmd.Execute()
}
