package main

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/term"

	"github.com/trezcool/orientation/core"
	"github.com/trezcool/orientation/core/analysis"
	"github.com/trezcool/orientation/core/assessment"
	"github.com/trezcool/orientation/core/profile"
	emailsvc "github.com/trezcool/orientation/services/email"
	logsvc "github.com/trezcool/orientation/services/logger"
	inmemdb "github.com/trezcool/orientation/storage/database/inmem"
	"github.com/trezcool/orientation/tests"
)

var (
	profileRepo profile.Repository
	resultRepo  assessment.Repository
)

func setup(t *testing.T) (*commandLine, *bytes.Buffer) {
	// set up DB & repos
	db := inmemdb.Open()
	profileRepo = inmemdb.NewProfileRepository(db)
	resultRepo = inmemdb.NewTestResultRepository(db)

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	profile.InitValidators(validate, translator)

	logger := logsvc.NewRollbarLogger(log.New(ioutil.Discard, "", 0), core.Conf)
	out := new(bytes.Buffer)

	// start CLI
	return &commandLine{
		profileSvc:  profile.NewService(profileRepo),
		analysisSvc: analysis.NewService(resultRepo, profileRepo, emailsvc.NewConsoleServiceMock(core.Conf, logger), 6),
		validate:    validate,
		translator:  translator,
		out:         out,
	}, out
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
	wantOut    string
}

func runCLITests(t *testing.T, cli *commandLine, out *bytes.Buffer, tests []cliTest) {
	t.Helper()
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			out.Reset()
			err := cli.run(args)
			switch {
			case tt.wantErr != nil:
				assert.Equal(t, tt.wantErr, err)
			case tt.wantErrStr != "":
				require.Error(t, err)
				assert.Equal(t, tt.wantErrStr, err.Error())
			default:
				assert.NoError(t, err)
			}
			if tt.wantOut != "" {
				assert.Contains(t, out.String(), tt.wantOut)
			}
		})
	}
}

func Test_commandLine_run(t *testing.T) {
	cli, out := setup(t)

	runCLITests(t, cli, out, []cliTest{
		{name: "no command", wantErr: errHelp, wantOut: "Usage:"},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "close match", args: []string{"analyse"}, wantErr: errHelp, wantOut: `did you mean "analyze"?`},
		{name: "close match (migrate)", args: []string{"migrat", "up"}, wantErr: errHelp, wantOut: `did you mean "migrate"?`},
		{name: "help flag", args: []string{"analyze", "-h"}, wantErr: errHelp},
	})
}

func Test_closestCommand(t *testing.T) {
	tests := []struct {
		name   string
		want   string
		wantOk bool
	}{
		{name: "setrol", want: "setrole", wantOk: true},
		{name: "analyzer", want: "analyze", wantOk: true},
		{name: "xyz"},
		{name: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := closestCommand(tt.name)
			assert.Equal(t, tt.wantOk, ok)
			if tt.wantOk {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func Test_commandLine_migrate(t *testing.T) {
	cli, out := setup(t)

	t.Run("in-memory storage", func(t *testing.T) {
		assert.Equal(t, errNoDatabase, cli.run([]string{"admin", "migrate", "up"}))
	})

	cli.db = new(sql.DB)
	migrateFunc = func(db *sql.DB, command string, args ...string) error {
		switch command {
		case "up", "up-by-one", "down", "fix", "redo", "reset", "status", "version": // pass
		case "up-to":
			if len(args) == 0 {
				return fmt.Errorf("up-to must be of form: goose [OPTIONS] DRIVER DBSTRING up-to VERSION")
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		case "create":
			if len(args) == 0 {
				return fmt.Errorf("create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]")
			}
		case "down-to":
			if len(args) == 0 {
				return fmt.Errorf("down-to must be of form: goose [OPTIONS] DRIVER DBSTRING down-to VERSION")
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		default:
			return fmt.Errorf("%q: no such command", command)
		}
		return nil
	}

	runCLITests(t, cli, out, []cliTest{
		{name: "no subcommand", args: []string{"migrate"}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"migrate", "lol"}, wantErrStr: "\"lol\": no such command"},
		{name: "up-to: no args", args: []string{"migrate", "up-to"}, wantErrStr: "up-to must be of form: goose [OPTIONS] DRIVER DBSTRING up-to VERSION"},
		{name: "up-to: non-int arg", args: []string{"migrate", "up-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "create: no args", args: []string{"migrate", "create"}, wantErrStr: "create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]"},
		{name: "down-to: no args", args: []string{"migrate", "down-to"}, wantErrStr: "down-to must be of form: goose [OPTIONS] DRIVER DBSTRING down-to VERSION"},
		{name: "down-to: non-int arg", args: []string{"migrate", "down-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "up", args: []string{"migrate", "up"}},
		{name: "up-by-one", args: []string{"migrate", "up-by-one"}},
		{name: "up-to", args: []string{"migrate", "up-to", "2"}},
		{name: "down", args: []string{"migrate", "down"}},
		{name: "down-to", args: []string{"migrate", "down-to", "1"}},
		{name: "redo", args: []string{"migrate", "redo"}},
		{name: "reset", args: []string{"migrate", "reset"}},
		{name: "status", args: []string{"migrate", "status"}},
		{name: "version", args: []string{"migrate", "version"}},
		{name: "create", args: []string{"migrate", "create", "counselor_notes", "sql"}},
		{name: "fix", args: []string{"migrate", "fix"}},
	})
}

func Test_commandLine_analyze(t *testing.T) {
	cli, out := setup(t)

	student := testutil.CreateProfile(t, profileRepo, "s1", "Amani Bahati", "amani@example.cd", profile.RoleStudent)
	testutil.CreateTestResult(t, resultRepo, student.ID, assessment.RIASECScores{S: 40, I: 30}, time.Now())

	runCLITests(t, cli, out, []cliTest{
		{name: "no args", args: []string{"analyze"}, wantErr: errHelp},
		{name: "unknown flag", args: []string{"analyze", "-lol"}, wantErrStr: "flag provided but not defined: -lol"},
		{name: "profile not found", args: []string{"analyze", "-user", "nope"}, wantErr: profile.ErrNotFound},
	})

	t.Run("json when not a terminal", func(t *testing.T) {
		out.Reset()
		require.NoError(t, cli.run([]string{"admin", "analyze", "-user", student.ID}))
		assert.True(t, json.Valid(out.Bytes()))
	})

	t.Run("text on a terminal", func(t *testing.T) {
		f, err := os.CreateTemp(t.TempDir(), "out")
		require.NoError(t, err)
		defer f.Close()

		isTerminalFunc = func(int) bool { return true }
		defer func() { isTerminalFunc = term.IsTerminal }()

		termCLI := *cli
		termCLI.out = f
		require.NoError(t, termCLI.run([]string{"admin", "analyze", "-user", student.ID}))

		data, err := os.ReadFile(f.Name())
		require.NoError(t, err)
		assert.Contains(t, string(data), "Points forts :\n  - Sens du contact et de l'entraide\n")
	})

	t.Run("json output", func(t *testing.T) {
		out.Reset()
		require.NoError(t, cli.run([]string{"admin", "analyze", "-user", student.ID, "-json"}))

		var report analysis.Report
		require.NoError(t, json.Unmarshal(out.Bytes(), &report))
		assert.Equal(t, []string{"Sens du contact et de l'entraide", "Esprit analytique et curiosité scientifique"}, report.Strengths)
		assert.Equal(t, "Enseignement", report.Recommendations[0].Field)
	})

	t.Run("text output", func(t *testing.T) {
		out.Reset()
		cli.printReport(analysis.Report{
			Strengths:       []string{"Empathie développée"},
			Recommendations: []analysis.CareerRecommendation{{Field: "Psychologie", Score: 8.5, Reason: "r"}},
			SuggestedTests:  []string{"Personnalité"},
		})
		assert.Contains(t, out.String(), "  - Empathie développée\n")
		assert.Contains(t, out.String(), "  - Psychologie (8.5/10) : r\n")
		assert.Contains(t, out.String(), "Tests suggérés :\n  - Personnalité\n")
	})
}

func Test_commandLine_setRole(t *testing.T) {
	cli, out := setup(t)

	student := testutil.CreateProfile(t, profileRepo, "s1", "Amani Bahati", "amani@example.cd", profile.RoleStudent)

	runCLITests(t, cli, out, []cliTest{
		{name: "no args", args: []string{"setrole"}, wantErr: errHelp},
		{name: "no role", args: []string{"setrole", "-user", student.ID}, wantErr: errHelp},
		{name: "invalid role", args: []string{"setrole", "-user", student.ID, "-role", "king"}, wantErrStr: "role: rôle invalide"},
		{name: "profile not found", args: []string{"setrole", "-user", "nope", "-role", "admin"}, wantErr: profile.ErrNotFound},
		{name: "promote", args: []string{"setrole", "-user", student.ID, "-role", " Counselor "}, wantOut: "Amani Bahati is now counselor"},
	})

	p, err := profileRepo.GetProfile(context.Background(), student.ID)
	require.NoError(t, err)
	assert.Equal(t, profile.RoleCounselor, p.Role)
}
