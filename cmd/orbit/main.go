package main

import "github.com/autonyze/orbit-go/cmd/orbit/cmd"

func main() {
	cmd.Execute()
}
