package main

import "decalls-stats/cmd"

func main() {
	cmd.Execute()
}
