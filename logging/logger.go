package logging

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/natefinch/lumberjack"
	"github.com/sirupsen/logrus"
)

const (
	callerField = "caller"

	fnWidth    = 30
	levelWidth = 5
)

func init() {
	logrus.SetReportCaller(false) // caller is resolved manually in the helpers below
	logrus.SetFormatter(CustomFormatter())
}

var (
	logBufPool = sync.Pool{
		New: func() any {
			return &bytes.Buffer{}
		},
	}
)

// Fixed-width formatter, e.g.,
//
//	2010-09-15 15:44:43.000 INFO  isodate.Encode                 : unknown zone 'Mars/Base'
type CTFormatter struct {
}

func (c *CTFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var fn string
	if caller, ok := entry.Data[callerField].(string); ok {
		fn = caller
	}

	levelstr := toLevelStr(entry.Level)

	b := logBufPool.Get().(*bytes.Buffer)
	defer putLogBuf(b)

	b.WriteString(entry.Time.Format("2006-01-02 15:04:05.000"))
	b.WriteByte(' ')
	b.WriteString(levelstr)
	if len(levelstr) < levelWidth {
		b.WriteString(strings.Repeat(" ", levelWidth-len(levelstr)))
	}

	b.WriteByte(' ')
	b.WriteString(fn)
	if len(fn) < fnWidth {
		b.WriteString(strings.Repeat(" ", fnWidth-len(fn)))
	}

	b.WriteString(" : ")
	b.WriteString(entry.Message)

	for k, v := range entry.Data {
		if k == callerField {
			continue
		}
		b.WriteByte(' ')
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(toStr(v))
	}
	b.WriteByte('\n')

	// the buffer goes back to the pool, logrus writes the returned slice before that
	out := make([]byte, b.Len())
	copy(out, b.Bytes())
	return out, nil
}

func putLogBuf(b *bytes.Buffer) {
	b.Reset()
	logBufPool.Put(b)
}

func toLevelStr(level logrus.Level) string {
	switch level {
	case logrus.TraceLevel:
		return "TRACE"
	case logrus.DebugLevel:
		return "DEBUG"
	case logrus.InfoLevel:
		return "INFO"
	case logrus.WarnLevel:
		return "WARN"
	case logrus.ErrorLevel:
		return "ERROR"
	case logrus.FatalLevel:
		return "FATAL"
	case logrus.PanicLevel:
		return "PANIC"
	}
	return "UNKNOWN"
}

// Get custom formatter logrus
func CustomFormatter() logrus.Formatter {
	return &CTFormatter{}
}

type RollingLogFileParam struct {
	Filename   string // filename
	MaxSize    int    // max file size in mb
	MaxAge     int    // max age in day
	MaxBackups int    // max number of files
}

// Create rolling file based logger
func BuildRollingLogFileWriter(p RollingLogFileParam) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   p.Filename,
		MaxSize:    p.MaxSize,    // megabytes
		MaxAge:     p.MaxAge,     // days
		MaxBackups: p.MaxBackups, // num of files
		LocalTime:  true,
		Compress:   false,
	}
}

// Write logs to both stderr and the rolling log file.
func SetRollingLogFile(p RollingLogFileParam) io.Closer {
	w := BuildRollingLogFileWriter(p)
	logrus.SetOutput(io.MultiWriter(os.Stderr, w))
	return w
}

func SetOutput(w io.Writer) {
	logrus.SetOutput(w)
}

// Parse log level
func ParseLogLevel(logLevel string) (logrus.Level, bool) {
	switch strings.ToUpper(strings.TrimSpace(logLevel)) {
	case "INFO":
		return logrus.InfoLevel, true
	case "DEBUG":
		return logrus.DebugLevel, true
	case "WARN":
		return logrus.WarnLevel, true
	case "ERROR":
		return logrus.ErrorLevel, true
	case "TRACE":
		return logrus.TraceLevel, true
	}
	return logrus.InfoLevel, false
}

func SetLogLevel(level string) bool {
	ll, ok := ParseLogLevel(level)
	if !ok {
		return false
	}
	logrus.SetLevel(ll)
	return true
}

// Check whether current log level is DEBUG
func IsDebugLevel() bool {
	return logrus.IsLevelEnabled(logrus.DebugLevel)
}

func Debugf(format string, args ...interface{}) {
	if !logrus.IsLevelEnabled(logrus.DebugLevel) {
		return
	}
	logrus.WithField(callerField, getCallerFn()).Debugf(format, args...)
}

func Infof(format string, args ...interface{}) {
	if !logrus.IsLevelEnabled(logrus.InfoLevel) {
		return
	}
	logrus.WithField(callerField, getCallerFn()).Infof(format, args...)
}

func Warnf(format string, args ...interface{}) {
	if !logrus.IsLevelEnabled(logrus.WarnLevel) {
		return
	}
	logrus.WithField(callerField, getCallerFn()).Warnf(format, args...)
}

func Errorf(format string, args ...interface{}) {
	if !logrus.IsLevelEnabled(logrus.ErrorLevel) {
		return
	}
	logrus.WithField(callerField, getCallerFn()).Errorf(format, args...)
}

// logger calls getCallerFn very frequently, the slices are pooled.
var callerUintptrPool = sync.Pool{
	New: func() any {
		p := make([]uintptr, 4)
		return &p
	},
}

func getCallerFn() string {
	pcs := callerUintptrPool.Get().(*[]uintptr)
	defer putCallerUintptrPool(pcs)

	depth := runtime.Callers(3, *pcs)
	if depth < 1 {
		return ""
	}
	frames := runtime.CallersFrames((*pcs)[:depth])
	f, _ := frames.Next()
	return shortFnName(f.Function)
}

func putCallerUintptrPool(pcs *[]uintptr) {
	clear(*pcs)
	callerUintptrPool.Put(pcs)
}

func shortFnName(fn string) string {
	j := strings.LastIndexByte(fn, '/')
	if j < 0 {
		return fn
	}
	return fn[j+1:]
}

func toStr(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case error:
		return t.Error()
	}
	return strings.ReplaceAll(fmt.Sprint(v), "\n", " ")
}
