package main

import (
	"pitwall-results/cmd/pitwall/commands"
)

func main() {
	commands.ExecuteContext(commands.SignalContext())
}
