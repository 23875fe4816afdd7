package main

import "github.com/jsphweid/tonas/cmd"

func main() {
	cmd.Execute()
}
