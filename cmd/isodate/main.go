package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/curtisnewbie/isodate/config"
	"github.com/curtisnewbie/isodate/isodate"
	"github.com/curtisnewbie/isodate/logging"
	"github.com/curtisnewbie/isodate/store"
	"github.com/curtisnewbie/isodate/util/cli"
	"github.com/curtisnewbie/isodate/util/errs"
	"github.com/curtisnewbie/isodate/util/json"
	"github.com/curtisnewbie/isodate/version"
	"golang.design/x/clipboard"
	"golang.org/x/text/width"
	"gopkg.in/yaml.v2"

	_ "time/tzdata"
)

const (
	OutText = "text"
	OutJson = "json"
	OutYaml = "yaml"
)

var (
	// KEY=VALUE overrides, e.g., isodate.wrap=false
	overridePat = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_.\-]*=`)

	ErrUsage = errs.NewErrfCode("USAGE", "Invalid usage")
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		cli.ErrorFprintlnf(os.Stderr, "%v", err)
		if logging.IsDebugLevel() {
			cli.Fprintlnf(os.Stderr, "%v", errs.ErrorStackTrace(err))
		}
		os.Exit(1)
	}
}

type env struct {
	out    io.Writer
	format string
	debug  bool
	conf   *config.AppConfig
}

type command struct {
	name  string
	args  string
	usage string
	input bool // whether the command consumes an input text
	exec  func(e *env, input string, args []string) (any, error)
}

var commands = []command{
	{name: "parse", args: "TEXT", usage: "parse ISO 8601 date-time", input: true, exec: parseCmd},
	{name: "encode", args: "TEXT", usage: "parse ISO 8601 date-time and encode it using the configured presentation", input: true, exec: encodeCmd},
	{name: "normalize", args: "VALUE", usage: "normalize ISO 8601 text, epoch seconds or encoded value", input: true, exec: normalizeCmd},
	{name: "decode", args: "TEXT", usage: "decode annotated value", input: true, exec: decodeCmd},
	{name: "legacy-encode", args: "TEXT", usage: "parse ISO 8601 date-time and encode it using the legacy pattern", input: true, exec: legacyEncodeCmd},
	{name: "legacy-decode", args: "TEXT", usage: "decode text in legacy pattern", input: true, exec: legacyDecodeCmd},
	{name: "prep", args: "FILE", usage: "encode ISO 8601 date-time strings in JSON document", exec: prepCmd},
	{name: "record", args: "TEXT", usage: "parse ISO 8601 date-time and persist it", input: true, exec: recordCmd},
	{name: "history", args: "[LIMIT]", usage: "list persisted records", exec: historyCmd},
}

func findCommand(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

func run(args []string, w io.Writer) error {
	fs := flag.NewFlagSet("isodate", flag.ContinueOnError)
	fs.SetOutput(w)
	confFile := fs.String("conf", "", "Path to yaml config file")
	format := fs.String("out", OutText, "Output format: text, json or yaml")
	clip := fs.Bool("clip", false, "Read input text from clipboard")
	debug := fs.Bool("debug", false, "Enable debug log")
	fs.Usage = func() {
		cli.Fprintlnf(w, "\nisodate - parse, encode and convert ISO 8601 date-time\n")
		cli.Fprintlnf(w, "  Version: %v\n", version.Version)
		cli.Fprintlnf(w, "Usage: isodate [flags] <command> [args] [KEY=VALUE...]\n")
		cli.Fprintlnf(w, "Commands:")
		for _, c := range commands {
			cli.Fprintlnf(w, "  %-14s %-8s %s", c.name, c.args, c.usage)
		}
		cli.Fprintlnf(w, "\nFlags:")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	var positional, overrides []string
	for _, a := range fs.Args() {
		if overridePat.MatchString(a) {
			overrides = append(overrides, a)
		} else {
			positional = append(positional, a)
		}
	}
	if len(positional) < 1 {
		fs.Usage()
		return ErrUsage.WithDetail("missing command")
	}

	cmd, ok := findCommand(positional[0])
	if !ok {
		fs.Usage()
		return ErrUsage.WithDetail("unknown command '%v'", positional[0])
	}
	positional = positional[1:]

	switch *format {
	case OutText, OutJson, OutYaml:
	default:
		return ErrUsage.WithDetail("unknown output format '%v'", *format)
	}

	conf := config.NewAppConfig()
	if err := conf.LoadConfigFromFile(*confFile); err != nil {
		return err
	}
	conf.OverwriteConf(overrides)

	closer := setupLogging(conf, *debug)
	if closer != nil {
		defer closer.Close()
	}
	cli.DebugFprintlnf(w, *debug, "command: %v, args: %v, overrides: %v", cmd.name, positional, overrides)

	var input string
	if cmd.input {
		if *clip {
			s, err := readClipboard()
			if err != nil {
				return err
			}
			input = s
		} else {
			if len(positional) < 1 {
				return ErrUsage.WithDetail("missing %v for command '%v'", cmd.args, cmd.name)
			}
			input = positional[0]
			positional = positional[1:]
		}
		input = width.Narrow.String(input)
	}

	e := &env{out: w, format: *format, debug: *debug, conf: conf}
	res, err := cmd.exec(e, input, positional)
	if err != nil {
		return err
	}
	return e.print(res)
}

func setupLogging(conf *config.AppConfig, debug bool) io.Closer {
	level := conf.GetPropStr(config.PropLoggingLevel)
	if debug {
		level = "debug"
	}
	if !logging.SetLogLevel(level) {
		logging.Warnf("Unknown log level '%v'", level)
	}
	if f := conf.GetPropStr(config.PropLoggingFile); f != "" {
		return logging.SetRollingLogFile(logging.RollingLogFileParam{
			Filename:   f,
			MaxSize:    conf.GetPropInt(config.PropLoggingMaxSize),
			MaxAge:     conf.GetPropInt(config.PropLoggingMaxAge),
			MaxBackups: conf.GetPropInt(config.PropLoggingMaxBackups),
		})
	}
	return nil
}

func readClipboard() (string, error) {
	if err := clipboard.Init(); err != nil {
		return "", errs.WrapErrf(err, "clipboard is not available")
	}
	txt := clipboard.Read(clipboard.FmtText)
	if len(txt) < 1 {
		return "", ErrUsage.WithDetail("clipboard is empty")
	}
	return strings.TrimSpace(string(txt)), nil
}

// textual results print themselves in text output format.
type textual interface {
	Text() string
}

func (e *env) print(v any) error {
	switch e.format {
	case OutJson:
		s, err := json.SWriteIndent(v)
		if err != nil {
			return errs.WrapErrf(err, "failed to write json")
		}
		cli.Fprintlnf(e.out, "%s", s)
	case OutYaml:
		buf, err := yaml.Marshal(v)
		if err != nil {
			return errs.WrapErrf(err, "failed to write yaml")
		}
		fmt.Fprint(e.out, string(buf))
	default:
		switch t := v.(type) {
		case string:
			cli.Fprintlnf(e.out, "%s", t)
		case textual:
			cli.Fprintlnf(e.out, "%s", t.Text())
		default:
			s, err := json.SWriteIndent(v)
			if err != nil {
				return errs.WrapErrf(err, "failed to write json")
			}
			cli.Fprintlnf(e.out, "%s", s)
		}
	}
	return nil
}

func (e *env) defaultTimezone() (isodate.FixedOffset, error) {
	return isodate.ResolveTimezoneStr(e.conf.GetPropStr(config.PropDefaultTimezone), isodate.UTC)
}

func (e *env) encodeOpts() []isodate.EncodeOption {
	return []isodate.EncodeOption{
		isodate.WithPresentation(isodate.Presentation(e.conf.GetPropStr(config.PropPresentation))),
		isodate.WithZone(e.conf.GetPropStr(config.PropTargetTimezone)),
		isodate.WithWrap(e.conf.GetPropBool(config.PropWrap)),
	}
}

func (e *env) parse(input string) (isodate.Timestamp, error) {
	def, err := e.defaultTimezone()
	if err != nil {
		return isodate.Timestamp{}, err
	}
	return isodate.Parse(input, def)
}

type Moment struct {
	Input  string `json:"input" yaml:"input"`
	Value  string `json:"value" yaml:"value"`
	Offset string `json:"offset" yaml:"offset"`
	Utc    string `json:"utc" yaml:"utc"`
	Legacy string `json:"legacy" yaml:"legacy"`
	Unix   int64  `json:"unix" yaml:"unix"`
}

func (m Moment) Text() string {
	return fmt.Sprintf("%s (%s)", m.Value, m.Utc)
}

func newMoment(input string, ts isodate.Timestamp) Moment {
	return Moment{
		Input:  input,
		Value:  ts.String(),
		Offset: ts.Offset().Label(),
		Utc:    isodate.Encode(ts, isodate.WithoutWrap()),
		Legacy: isodate.LegacyEncode(ts),
		Unix:   ts.Time().Unix(),
	}
}

func parseCmd(e *env, input string, _ []string) (any, error) {
	ts, err := e.parse(input)
	if err != nil {
		return nil, err
	}
	return newMoment(input, ts), nil
}

func encodeCmd(e *env, input string, _ []string) (any, error) {
	ts, err := e.parse(input)
	if err != nil {
		return nil, err
	}
	return isodate.Encode(ts, e.encodeOpts()...), nil
}

func normalizeCmd(e *env, input string, _ []string) (any, error) {
	return isodate.Normalize(input, e.encodeOpts()...), nil
}

func decodeCmd(e *env, input string, _ []string) (any, error) {
	ts, err := isodate.DecodeAnnotated(input)
	if err != nil {
		return nil, err
	}
	return newMoment(input, ts), nil
}

func legacyEncodeCmd(e *env, input string, _ []string) (any, error) {
	ts, err := e.parse(input)
	if err != nil {
		return nil, err
	}
	return isodate.LegacyEncode(ts), nil
}

func legacyDecodeCmd(e *env, input string, _ []string) (any, error) {
	ts, err := isodate.LegacyDecode(input)
	if err != nil {
		return nil, err
	}
	if ts.IsZero() {
		return "", nil
	}
	return newMoment(input, ts), nil
}

func prepCmd(e *env, _ string, args []string) (any, error) {
	if len(args) < 1 {
		return nil, ErrUsage.WithDetail("missing FILE for command 'prep'")
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, errs.WrapErrf(err, "failed to open '%v'", args[0])
	}
	defer f.Close()

	var doc any
	if err := json.DecodeJson(f, &doc); err != nil {
		return nil, errs.WrapErrf(err, "failed to parse json document '%v'", args[0])
	}
	def, err := e.defaultTimezone()
	if err != nil {
		return nil, err
	}
	return isodate.Prep(parseStrings(doc, def)), nil
}

// Replace strings that are valid ISO 8601 date-time with Timestamp.
func parseStrings(v any, def isodate.FixedOffset) any {
	switch t := v.(type) {
	case map[string]any:
		for k, v := range t {
			t[k] = parseStrings(v, def)
		}
	case []any:
		for i, v := range t {
			t[i] = parseStrings(v, def)
		}
	case string:
		if ts, err := isodate.Parse(t, def); err == nil {
			return ts
		}
	}
	return v
}

type RecordView struct {
	Id         int64  `json:"id" yaml:"id"`
	Input      string `json:"input" yaml:"input"`
	Iso        string `json:"iso" yaml:"iso"`
	Legacy     string `json:"legacy" yaml:"legacy"`
	RecordedAt string `json:"recordedAt" yaml:"recordedAt"`
}

func (r RecordView) Text() string {
	return fmt.Sprintf("%-4d %-22s %-30s %s", r.Id, r.Iso, r.Legacy, r.Input)
}

type RecordViews []RecordView

func (l RecordViews) Text() string {
	lines := make([]string, 0, len(l))
	for _, r := range l {
		lines = append(lines, r.Text())
	}
	return strings.Join(lines, "\n")
}

func newRecordView(r store.Record) RecordView {
	return RecordView{
		Id:         r.Id,
		Input:      r.Input,
		Iso:        r.Iso,
		Legacy:     isodate.LegacyEncode(r.Legacy.Unwrap()),
		RecordedAt: isodate.Encode(r.RecordedAt.Unwrap(), isodate.WithoutWrap()),
	}
}

func (e *env) openStore() (*store.Store, error) {
	return store.Open(store.ParamFromConfig(e.conf))
}

func recordCmd(e *env, input string, _ []string) (any, error) {
	ts, err := e.parse(input)
	if err != nil {
		return nil, err
	}
	s, err := e.openStore()
	if err != nil {
		return nil, err
	}
	defer s.Close()

	r, err := s.Save(context.Background(), input, ts)
	if err != nil {
		return nil, err
	}
	return newRecordView(r), nil
}

func historyCmd(e *env, _ string, args []string) (any, error) {
	limit := 0
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 0 {
			return nil, ErrUsage.WithDetail("invalid LIMIT '%v'", args[0])
		}
		limit = n
	}
	s, err := e.openStore()
	if err != nil {
		return nil, err
	}
	defer s.Close()

	l, err := s.List(context.Background(), limit)
	if err != nil {
		return nil, err
	}
	views := make(RecordViews, 0, len(l))
	for _, r := range l {
		views = append(views, newRecordView(r))
	}
	return views, nil
}
