package main

import "hookhunter/cmd"

func main() {
	cmd.Execute()
}
