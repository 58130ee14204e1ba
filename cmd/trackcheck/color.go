package main

import (
	"github.com/fatih/color"
)

// colorPrinter wraps fatih/color functions for consistent color output.
type colorPrinter struct {
	red    *color.Color
	green  *color.Color
	yellow *color.Color
	cyan   *color.Color
}

func newColorPrinter(noColor bool) *colorPrinter {
	color.NoColor = noColor

	return &colorPrinter{
		red:    color.New(color.FgRed, color.Bold),
		green:  color.New(color.FgGreen, color.Bold),
		yellow: color.New(color.FgYellow),
		cyan:   color.New(color.FgCyan),
	}
}

func (c *colorPrinter) Red(s string) string    { return c.red.Sprint(s) }
func (c *colorPrinter) Green(s string) string  { return c.green.Sprint(s) }
func (c *colorPrinter) Yellow(s string) string { return c.yellow.Sprint(s) }
func (c *colorPrinter) Cyan(s string) string   { return c.cyan.Sprint(s) }

// Severity colours an issue label.
func (c *colorPrinter) Severity(label string, fail bool) string {
	if fail {
		return c.Red(label)
	}
	return c.Yellow(label)
}
