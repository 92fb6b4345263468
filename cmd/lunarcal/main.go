// Command lunarcal converts, steps and formats dates on the Chinese lunar calendar.
package main

import "github.com/zapponejosh/lunar-calendar/internal/cli"

func main() {
	cli.Execute()
}
