package main

import "github.com/kagglekit/kagglectl/cmd"

func main() {
	cmd.Execute()
}
