package main

import "github.com/twiced-technology-gmbh/tasktrack/cmd"

func main() {
	cmd.Execute()
}
