package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/term"

	"github.com/trezcool/orientation/core/analysis"
	"github.com/trezcool/orientation/core/profile"
)

var (
	isTerminalFunc = term.IsTerminal // mockable

	errHelp       = errors.New("help provided")
	errNoDatabase = errors.New("migrations need the postgres storage backend")

	commands = []string{"migrate", "analyze", "setrole"}

	// minimum similarity for a command to be suggested
	suggestionRatio = 0.6
)

type commandLine struct {
	db          *sql.DB // nil with the in-memory storage
	profileSvc  *profile.Service
	analysisSvc *analysis.Service
	validate    *validator.Validate
	translator  ut.Translator
	out         io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  migrate COMMAND [ARGS...] - run a migration command: up, up-by-one, up-to, down, down-to, redo, reset, status, version, create, fix")
	fmt.Fprintln(cli.out, "  analyze -user ID [-json] - print the analysis report of a user")
	fmt.Fprintln(cli.out, "  setrole -user ID -role ROLE - change the role of a user's profile")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	analyzeCmd := flag.NewFlagSet("analyze", flag.ContinueOnError)
	analyzeCmd.SetOutput(cli.out)
	analyzeUser := analyzeCmd.String("user", "", "The ID of the user to analyze.")
	analyzeJSON := analyzeCmd.Bool("json", false, "Print the report as JSON (default when the output is not a terminal).")

	setRoleCmd := flag.NewFlagSet("setrole", flag.ContinueOnError)
	setRoleCmd.SetOutput(cli.out)
	setRoleUser := setRoleCmd.String("user", "", "The ID of the user.")
	setRoleRole := setRoleCmd.String("role", "", "One of: "+strings.Join(profile.AllRoles, ", ")+".")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "analyze":
		if err := analyzeCmd.Parse(args[2:]); err != nil {
			return flagError(err)
		}
		if *analyzeUser == "" {
			analyzeCmd.Usage()
			return errHelp
		}
		asJSON := *analyzeJSON || !cli.isTerminal()
		return cli.analyze(*analyzeUser, asJSON)
	case "setrole":
		if err := setRoleCmd.Parse(args[2:]); err != nil {
			return flagError(err)
		}
		if *setRoleUser == "" || *setRoleRole == "" {
			setRoleCmd.Usage()
			return errHelp
		}
		return cli.setRole(*setRoleUser, *setRoleRole)
	default:
		if cmd, ok := closestCommand(args[1]); ok {
			fmt.Fprintf(cli.out, "unknown command %q, did you mean %q?\n", args[1], cmd)
		}
		cli.printUsage()
		return errHelp
	}
}

// isTerminal reports whether the output is an interactive terminal.
func (cli *commandLine) isTerminal() bool {
	f, ok := cli.out.(*os.File)
	return ok && isTerminalFunc(int(f.Fd()))
}

func flagError(err error) error {
	if err == flag.ErrHelp {
		return errHelp
	}
	return err
}

// closestCommand returns the known command most similar to name, if similar enough.
func closestCommand(name string) (string, bool) {
	var (
		best      string
		bestRatio float64
	)
	for _, cmd := range commands {
		ratio := difflib.NewMatcher(strings.Split(name, ""), strings.Split(cmd, "")).Ratio()
		if ratio > bestRatio {
			best, bestRatio = cmd, ratio
		}
	}
	return best, bestRatio >= suggestionRatio
}
