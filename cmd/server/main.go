package main

import "github.com/anonto42/blogcms/cmd/server/commands"

func main() {
	commands.Execute()
}
