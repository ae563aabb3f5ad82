package main

import "github.com/Alijeyrad/health_companion/cmd"

func main() {
	cmd.Execute()
}
