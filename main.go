package main

import "github.com/mouse-blink/butterfly/cmd"

func main() {
	cmd.Execute()
}
