package main

import "github.com/RayZh-hs/neutronic/cmd"

func main() {
	cmd.Execute()
}
