package logsvc

import (
	"fmt"
	"log"
	"net/http"
	"sort"
	"strings"

	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"

	"github.com/httpspriya/GVP-AI-Hackathon-2026/core"
)

// RollbarLogger reports to rollbar (when a token is configured) and mirrors every entry to std.
type RollbarLogger struct {
	std     *log.Logger
	enabled bool
}

var _ core.Logger = (*RollbarLogger)(nil)

func NewRollbarLogger(std *log.Logger, conf *core.Config) *RollbarLogger {
	rollbar.SetToken(conf.RollbarToken)
	rollbar.SetEnvironment(conf.Env)
	rollbar.SetServerHost(conf.Server.Host)
	rollbar.SetCodeVersion(conf.Build)
	rollbar.SetStackTracer(errors.StackTracer)

	l := &RollbarLogger{std: std}
	l.Enable(conf.RollbarToken != "" && !conf.TestMode)
	return l
}

func (l *RollbarLogger) Enable(enabled bool) {
	l.enabled = enabled
	rollbar.SetEnabled(enabled)
}

// Close waits for queued rollbar items to be sent.
func (l *RollbarLogger) Close() {
	if l.enabled {
		rollbar.Close()
	}
}

// expected args: error, map[string]interface{}, *http.Request
func (l *RollbarLogger) report(level, msg string, args []interface{}) {
	if !l.enabled {
		return
	}
	items := make([]interface{}, 0, len(args)+1)
	items = append(items, msg)
	for _, arg := range args {
		switch arg.(type) {
		case error, map[string]interface{}, *http.Request:
			items = append(items, arg)
		}
	}
	rollbar.Log(level, items...)
}

func (l *RollbarLogger) print(level, msg string, args []interface{}) {
	var sb strings.Builder
	sb.WriteString(strings.ToUpper(level))
	sb.WriteString(": ")
	sb.WriteString(msg)
	for _, arg := range args {
		switch v := arg.(type) {
		case map[string]interface{}:
			writeExtras(&sb, v)
		case *http.Request:
			sb.WriteString(" ")
			sb.WriteString(v.Method)
			sb.WriteString(" ")
			sb.WriteString(v.URL.Path)
		case error:
			l.std.Println(sb.String())
			sb.Reset()
			l.std.Printf("%+v\n", v)
		default:
			l.std.Printf("%+v\n", v)
		}
	}
	if sb.Len() > 0 {
		l.std.Println(sb.String())
	}
}

func writeExtras(sb *strings.Builder, extras map[string]interface{}) {
	keys := make([]string, 0, len(extras))
	for k := range extras {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		sb.WriteString(" ")
		sb.WriteString(k)
		sb.WriteString("=")
		fmt.Fprintf(sb, "%v", extras[k])
	}
}

func (l *RollbarLogger) Debug(msg string, args ...interface{}) {
	l.report(rollbar.DEBUG, msg, args)
	l.print(rollbar.DEBUG, msg, args)
}

func (l *RollbarLogger) Info(msg string, args ...interface{}) {
	l.report(rollbar.INFO, msg, args)
	l.print(rollbar.INFO, msg, args)
}

func (l *RollbarLogger) Warn(msg string, args ...interface{}) {
	l.report(rollbar.WARN, msg, args)
	l.print(rollbar.WARN, msg, args)
}

func (l *RollbarLogger) Error(msg string, args ...interface{}) {
	l.report(rollbar.ERR, msg, args)
	l.print(rollbar.ERR, msg, args)
}

func (l *RollbarLogger) Fatal(msg string, args ...interface{}) {
	l.report(rollbar.CRIT, msg, args)
	l.print(rollbar.CRIT, msg, args)
	l.Close()
	l.std.Fatal(msg)
}
