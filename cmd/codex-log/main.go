package main

import "github.com/clsung/codex-log/cmd/codex-log/commands"

func main() {
	commands.Execute()
}
