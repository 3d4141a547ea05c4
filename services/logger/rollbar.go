// Package logsvc provides the Rollbar-backed core.Logger.
package logsvc

import (
	"log"

	"github.com/pkg/errors"
	"github.com/rollbar/rollbar-go"
	rollbarerrors "github.com/rollbar/rollbar-go/errors"

	"github.com/trezcool/orientation/core"
	"github.com/trezcool/orientation/core/analysis"
	"github.com/trezcool/orientation/core/profile"
)

// RollbarLogger prints every entry on a std logger and reports it to Rollbar when enabled.
type RollbarLogger struct {
	std *log.Logger
}

var _ core.Logger = (*RollbarLogger)(nil)

func NewRollbarLogger(std *log.Logger, conf *core.Config) *RollbarLogger {
	rollbar.SetToken(conf.RollbarToken)
	rollbar.SetEnvironment(conf.Env)
	rollbar.SetServerHost(conf.Server.Host)
	rollbar.SetCodeVersion(conf.Build)
	rollbar.SetStackTracer(rollbarerrors.StackTracer)
	rollbar.SetEnabled(conf.RollbarToken != "" && !conf.TestMode)
	return &RollbarLogger{std: std}
}

func (l RollbarLogger) Enable(enabled bool) {
	rollbar.SetEnabled(enabled)
}

// entry sorts the args of a log call: errors, extra data & the profile the entry is about.
type entry struct {
	msg     string
	errs    []error
	extras  map[string]interface{}
	profile *profile.Profile
	others  []interface{}
}

func newEntry(msg string, args []interface{}) entry {
	e := entry{msg: msg}
	for _, arg := range args {
		switch a := arg.(type) {
		case profile.Profile:
			if e.profile == nil { // only the first one
				p := a
				e.profile = &p
			}
		case error:
			e.errs = append(e.errs, a)
			var fe *analysis.FetchError
			if errors.As(a, &fe) {
				e.extra("fetch_source", fe.Source)
			}
		case map[string]interface{}:
			for k, v := range a {
				e.extra(k, v)
			}
		default:
			e.others = append(e.others, a)
		}
	}
	return e
}

func (e *entry) extra(key string, val interface{}) {
	if e.extras == nil {
		e.extras = make(map[string]interface{})
	}
	e.extras[key] = val
}

// rollbarArgs returns the args expected by rollbar: msg | error, extras.
func (e entry) rollbarArgs() []interface{} {
	if e.profile != nil {
		rollbar.SetPerson(e.profile.ID, e.profile.DisplayName(), e.profile.Email)
	} else {
		rollbar.ClearPerson()
	}

	args := []interface{}{e.msg}
	if len(e.errs) > 0 {
		args = []interface{}{e.errs[0]}
		e.extra("message", e.msg)
	}
	if len(e.others) > 0 {
		e.extra("args", e.others)
	}
	if e.extras != nil {
		args = append(args, e.extras)
	}
	return args
}

func (e entry) print(std *log.Logger) {
	std.Println(e.msg)
	if e.profile != nil {
		std.Printf("profile: %s <%s>\n", e.profile.ID, e.profile.Email)
	}
	for _, err := range e.errs {
		std.Printf("%+v\n", err)
	}
	for k, v := range e.extras {
		std.Printf("%s: %v\n", k, v)
	}
	for _, o := range e.others {
		std.Printf("%+v\n", o)
	}
}

func (l RollbarLogger) Debug(msg string, args ...interface{}) {
	e := newEntry(msg, args)
	rollbar.Debug(e.rollbarArgs()...)
	e.print(l.std)
}

func (l RollbarLogger) Info(msg string, args ...interface{}) {
	e := newEntry(msg, args)
	rollbar.Info(e.rollbarArgs()...)
	e.print(l.std)
}

func (l RollbarLogger) Warn(msg string, args ...interface{}) {
	e := newEntry(msg, args)
	rollbar.Warning(e.rollbarArgs()...)
	e.print(l.std)
}

func (l RollbarLogger) Error(msg string, args ...interface{}) {
	e := newEntry(msg, args)
	rollbar.Error(e.rollbarArgs()...)
	e.print(l.std)
}

func (l RollbarLogger) Fatal(msg string, args ...interface{}) {
	e := newEntry(msg, args)
	rollbar.Critical(e.rollbarArgs()...)
	e.print(l.std)
	rollbar.Wait()
	l.std.Fatal(msg)
}
