package main

import "mtodo/cmd/mtodo/commands"

func main() {
	commands.Execute()
}
