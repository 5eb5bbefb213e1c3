package reach

import (
	"log"
	"os"
	"strconv"
)

// logChannel is the Go equivalent of the original's LOG(channel, ...) macro:
// a named diagnostic stream gated behind an environment variable, checked
// once and cached rather than re-reading os.Getenv on every call. The
// teacher never pulls in a third-party logging library even in its
// production CLI (cmd/main.go, cmd/langlang/main.go both use stdlib log and
// flag exclusively), so this stays on stdlib log too.
type logChannel struct {
	name    string
	enabled bool
	logger  *log.Logger
}

var logChannels = map[string]*logChannel{}

func newLogChannel(name string) *logChannel {
	enabled, _ := strconv.ParseBool(os.Getenv("LOG_" + name))
	return &logChannel{
		name:    name,
		enabled: enabled,
		logger:  log.New(os.Stderr, "["+name+"] ", log.Lmicroseconds),
	}
}

func channel(name string) *logChannel {
	if c, ok := logChannels[name]; ok {
		return c
	}
	c := newLogChannel(name)
	logChannels[name] = c
	return c
}

func (c *logChannel) Printf(format string, args ...interface{}) {
	if !c.enabled {
		return
	}
	c.logger.Printf(format, args...)
}

// logUnificationScope and logConstraintSolving mirror spec §6's
// LOG_UnificationScope / LOG_ConstraintSolving channels.
func logUnificationScope(format string, args ...interface{}) {
	channel("UnificationScope").Printf(format, args...)
}

func logConstraintSolving(format string, args ...interface{}) {
	channel("ConstraintSolving").Printf(format, args...)
}
