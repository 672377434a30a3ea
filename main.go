package main

import "github.com/HSouheill/sower_backend/cmd"

func main() {
	cmd.Execute()
}
