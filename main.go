package main

import "payprep/cmd"

func main() {
	cmd.Execute()
}
