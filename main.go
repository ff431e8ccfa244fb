package main

import "s3util/cmd"

func main() {
	cmd.Execute()
}
