package domain

import "strings"

// Command is an external process invocation.
type Command struct {
	// Args holds the program name followed by its arguments.
	Args []string

	// Dir is the working directory. Empty means the current directory.
	Dir string

	// Env overrides or extends the inherited environment.
	Env map[string]string
}

// String returns the command line joined by spaces.
func (c *Command) String() string {
	return strings.Join(c.Args, " ")
}
