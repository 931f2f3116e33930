package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/clevermation/watchsmith/cmd/watchsmith/terminal"
)

// commandTimeout bounds a full run including the compose restart.
const commandTimeout = 5 * time.Minute

// resolveCommand maps raw arguments to a subcommand and its remaining
// flags. A leading -h/--help asks for usage; any other leading flag
// belongs to the default install command.
func resolveCommand(args []string) (string, []string) {
	if len(args) == 0 {
		return "install", nil
	}

	switch args[0] {
	case "help", "-h", "--help":
		return "help", args[1:]
	}

	if args[0] != "" && args[0][0] != '-' {
		return args[0], args[1:]
	}
	return "install", args
}

func main() {
	command, args := resolveCommand(os.Args[1:])

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	var err error
	switch command {
	case "install":
		cmd := NewInstallCommand()
		if err = cmd.ParseFlags(args); err == nil {
			err = cmd.Run(ctx)
		}
	case "check":
		cmd := NewCheckCommand()
		if err = cmd.ParseFlags(args); err == nil {
			err = cmd.Run(ctx)
		}
	case "rollback":
		cmd := NewRollbackCommand()
		if err = cmd.ParseFlags(args); err == nil {
			err = cmd.Run(ctx)
		}
	case "history":
		cmd := NewHistoryCommand()
		if err = cmd.ParseFlags(args); err == nil {
			err = cmd.Run(ctx)
		}
	case "help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "%sUnknown command: %s%s\n\n", terminal.Red(), command, terminal.Reset())
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "%sError: %v%s\n", terminal.Red(), err, terminal.Reset())
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("watchsmith - install a Watchtower auto-update service into a compose stack")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  watchsmith [install] [flags]   merge the watchtower block and restart the stack")
	fmt.Println("  watchsmith check [flags]       report whether the compose file is up to date")
	fmt.Println("  watchsmith rollback [flags]    restore the newest backup and restart")
	fmt.Println("  watchsmith history [flags]     list recorded runs and backups")
	fmt.Println()
	fmt.Println("Run 'watchsmith <command> -h' for command flags.")
}
