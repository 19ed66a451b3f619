package main

import "github.com/ChaturnaK/Firebase-To-do-List-PWA/cmd"

func main() {
	cmd.Execute()
}
