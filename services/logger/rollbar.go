package logsvc

import (
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"

	"github.com/trezcool/codedaily/core"
	"github.com/trezcool/codedaily/core/user"
)

// RollbarLogger prints every entry to `std` and reports it to Rollbar when enabled.
type RollbarLogger struct {
	std *log.Logger
}

var _ core.Logger = (*RollbarLogger)(nil)

func NewRollbarLogger(std *log.Logger, conf *core.Config) *RollbarLogger {
	rollbar.SetToken(conf.RollbarToken)
	rollbar.SetEnvironment(conf.Env)
	rollbar.SetServerHost(conf.Server.Host)
	rollbar.SetCodeVersion(conf.Build)
	rollbar.SetServerRoot("github.com/trezcool/codedaily")
	rollbar.SetStackTracer(errors.StackTracer)
	rollbar.SetEnabled(!conf.Debug && !conf.TestMode && conf.RollbarToken != "")
	return &RollbarLogger{std: std}
}

func (l RollbarLogger) Enable(enabled bool) {
	rollbar.SetEnabled(enabled)
}

// Close waits for queued Rollbar items to be sent.
func (l RollbarLogger) Close() {
	rollbar.Close()
}

// entry is one log call sorted by kind of argument.
// The first error is reported, extras maps are merged (later keys win) and the first user is the person.
type entry struct {
	msg    string
	err    error
	extras map[string]interface{}
	person *user.User
	rest   []interface{}
}

func newEntry(msg string, args []interface{}) entry {
	e := entry{msg: msg}
	for _, arg := range args {
		switch v := arg.(type) {
		case user.User:
			if e.person == nil {
				e.person = &v
			}
		case *user.User:
			if e.person == nil && v != nil {
				e.person = v
			}
		case error:
			if e.err == nil {
				e.err = v
			} else {
				e.rest = append(e.rest, v)
			}
		case map[string]interface{}:
			if e.extras == nil {
				e.extras = make(map[string]interface{}, len(v))
			}
			for k, val := range v {
				e.extras[k] = val
			}
		default:
			e.rest = append(e.rest, v)
		}
	}
	return e
}

// rollbarArgs is the argument list understood by rollbar's level functions: msg, error, extras.
func (e entry) rollbarArgs() []interface{} {
	args := []interface{}{e.msg}
	if e.err != nil {
		args = append(args, e.err)
	}
	if e.extras != nil || e.err != nil {
		extras := make(map[string]interface{}, len(e.extras)+1)
		for k, v := range e.extras {
			extras[k] = v
		}
		if e.err != nil {
			extras["message"] = e.msg
		}
		args = append(args, extras)
	}
	return args
}

// lines renders the entry for the std logger: msg with sorted extras, then the error and other args.
func (e entry) lines() []string {
	head := e.msg
	if len(e.extras) > 0 {
		keys := make([]string, 0, len(e.extras))
		for k := range e.extras {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		pairs := make([]string, 0, len(keys))
		for _, k := range keys {
			pairs = append(pairs, fmt.Sprintf("%s=%v", k, e.extras[k]))
		}
		head += " " + strings.Join(pairs, " ")
	}
	if e.person != nil {
		head += " user=" + e.person.ID
	}

	lines := []string{head}
	if e.err != nil {
		lines = append(lines, fmt.Sprintf("%+v", e.err))
	}
	for _, arg := range e.rest {
		lines = append(lines, fmt.Sprintf("%+v", arg))
	}
	return lines
}

func (l RollbarLogger) report(level func(...interface{}), msg string, args []interface{}) {
	e := newEntry(msg, args)
	if e.person != nil {
		rollbar.SetPerson(e.person.ID, e.person.FullName, e.person.Email)
	} else {
		rollbar.ClearPerson()
	}
	level(e.rollbarArgs()...)
	for _, line := range e.lines() {
		l.std.Println(line)
	}
}

func (l RollbarLogger) Debug(msg string, args ...interface{}) {
	l.report(rollbar.Debug, msg, args)
}

func (l RollbarLogger) Info(msg string, args ...interface{}) {
	l.report(rollbar.Info, msg, args)
}

func (l RollbarLogger) Warn(msg string, args ...interface{}) {
	l.report(rollbar.Warning, msg, args)
}

func (l RollbarLogger) Error(msg string, args ...interface{}) {
	l.report(rollbar.Error, msg, args)
}

func (l RollbarLogger) Fatal(msg string, args ...interface{}) {
	l.report(rollbar.Critical, msg, args)
	rollbar.Close()
	l.std.Fatal(msg)
}
