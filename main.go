package main

import "github.com/ngld/ktbind/cmd"

func main() {
	cmd.Execute()
}
