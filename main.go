package main

import "github.com/papapumpkin/graha/cmd"

func main() {
	cmd.Execute()
}
