package main

import "site-manager/cmd"

func main() {
	cmd.Execute()
}
