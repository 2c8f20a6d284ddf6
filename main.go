package main

import "debt-tracker/cmd"

func main() {
	cmd.Execute()
}
