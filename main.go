package main

import "github.com/codegraphhq/codegraph/cmd"

func main() {
	cmd.Execute()
}
