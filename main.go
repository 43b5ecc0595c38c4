package main

import "shellout/cmd"

func main() {
	cmd.Execute()
}
