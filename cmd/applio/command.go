package main

import (
	"flag"
	"fmt"
	"io"
	"sort"
)

// Command is one CLI subcommand.
type Command struct {
	Name        string
	Description string
	Usage       string
	Run         func(args []string) error
}

// NewFlagSet creates a flag set that prints the command usage.
func (c *Command) NewFlagSet(out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(c.Name, flag.ContinueOnError)
	fs.SetOutput(out)
	fs.Usage = func() {
		fmt.Fprintf(out, "%s\n\nUSAGE:\n    %s\n", c.Description, c.Usage)
		fs.PrintDefaults()
	}
	return fs
}

// CommandRegistry dispatches os.Args to commands.
type CommandRegistry struct {
	commands map[string]*Command
	out      io.Writer
}

// NewCommandRegistry creates an empty registry printing help to out.
func NewCommandRegistry(out io.Writer) *CommandRegistry {
	return &CommandRegistry{commands: make(map[string]*Command), out: out}
}

// Register adds a command.
func (r *CommandRegistry) Register(cmd *Command) {
	r.commands[cmd.Name] = cmd
}

// Execute runs the command named by args[0].
func (r *CommandRegistry) Execute(args []string) error {
	if len(args) < 1 {
		r.PrintHelp()
		return fmt.Errorf("no command specified")
	}

	switch args[0] {
	case "help", "-h", "--help":
		r.PrintHelp()
		return nil
	}

	cmd, ok := r.commands[args[0]]
	if !ok {
		r.PrintHelp()
		return fmt.Errorf("unknown command: %s", args[0])
	}
	return cmd.Run(args[1:])
}

// PrintHelp lists the commands.
func (r *CommandRegistry) PrintHelp() {
	fmt.Fprintln(r.out, "applio - track job applications from the terminal")
	fmt.Fprintln(r.out, "")
	fmt.Fprintln(r.out, "USAGE:")
	fmt.Fprintln(r.out, "    applio <command> [arguments]")
	fmt.Fprintln(r.out, "")
	fmt.Fprintln(r.out, "COMMANDS:")

	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(r.out, "    %-10s %s\n", name, r.commands[name].Description)
	}
}
