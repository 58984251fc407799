package main

import "github.com/ronak-kumar-sing/makeit/cmd"

func main() {
	cmd.Execute()
}
