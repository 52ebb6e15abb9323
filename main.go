package main

import "tripagent/cmd"

func main() {
	cmd.Execute()
}
