package main

import "github/chapool/go-xwc/cmd"

func main() {
	cmd.Execute()
}
