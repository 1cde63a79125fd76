package main

import (
	// база часовых поясов нужна на Windows, где её нет в системе
	_ "time/tzdata"

	"github.com/Vaflel/schedule-parser/cmd"
)

func main() {
	cmd.Execute()
}
