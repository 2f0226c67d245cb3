package main

import "github.com/meikuraledutech/graphnav/cmd/graphnav/commands"

func main() {
	commands.Execute()
}
