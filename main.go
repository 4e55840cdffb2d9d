package main

import "github.com/riversh/riversh/cmd"

func main() {
	cmd.Execute()
}
