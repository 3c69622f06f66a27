package config

import (
	"bytes"
	"io"
	"os"
	"regexp"
	"strings"
	"sync"

	"github.com/curtisnewbie/isodate/logging"
	"github.com/curtisnewbie/isodate/util/errs"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

const (
	EnvPrefix = "ISODATE"
)

var (
	// regex for arg expansion
	resolveArgRegexp = regexp.MustCompile(`\${[a-zA-Z0-9\-\_\.]+}`)

	_globalConfig = NewAppConfig()

	ErrConfig = errs.NewErrfCode("CONFIG_FAILURE", "Config failure")
)

type AppConfig struct {
	vp   *viper.Viper
	rwmu *sync.RWMutex
}

// Create new AppConfig with default values registered.
//
// Environment variables prefixed with ISODATE_ override loaded values, e.g.,
// ISODATE_ISODATE_TARGET_TIMEZONE overrides 'isodate.target-timezone'.
func NewAppConfig() *AppConfig {
	vp := viper.New()
	vp.SetEnvPrefix(EnvPrefix)
	vp.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	vp.AutomaticEnv()
	a := &AppConfig{
		vp:   vp,
		rwmu: &sync.RWMutex{},
	}
	registerDefaults(a)
	return a
}

// Set value for the prop
func (a *AppConfig) SetProp(prop string, val any) {
	doWithWriteLock(a, func() {
		a.vp.Set(prop, val)
	})
}

// Set default value for the prop
func (a *AppConfig) SetDefProp(prop string, defVal any) {
	doWithWriteLock(a, func() {
		a.vp.SetDefault(prop, defVal)
	})
}

// Check whether the prop exists
func (a *AppConfig) HasProp(prop string) bool {
	return returnWithReadLock(a, func() bool { return a.vp.IsSet(prop) })
}

// Get prop as int
//
// Values that cannot be coerced to int are logged and treated as 0.
func (a *AppConfig) GetPropInt(prop string) int {
	v := returnWithReadLock(a, func() any { return a.vp.Get(prop) })
	n, err := cast.ToIntE(v)
	if err != nil {
		logging.Warnf("Prop '%v' is not a valid int, %v", prop, err)
	}
	return n
}

// Get prop as bool
//
// Values that cannot be coerced to bool are logged and treated as false.
func (a *AppConfig) GetPropBool(prop string) bool {
	v := returnWithReadLock(a, func() any { return a.vp.Get(prop) })
	b, err := cast.ToBoolE(v)
	if err != nil {
		logging.Warnf("Prop '%v' is not a valid bool, %v", prop, err)
	}
	return b
}

/*
Get prop as string

If the value is an argument that can be expanded, the actual value will be resolved if possible.

e.g, for "dsn" : "${DB_DSN}".

This func will attempt to resolve the actual value for '${DB_DSN}'.
*/
func (a *AppConfig) GetPropStr(prop string) string {
	v := returnWithReadLock(a, func() any { return a.vp.Get(prop) })
	return a.ResolveArg(cast.ToString(v))
}

// Overwrite existing conf using cli args in KEY=VALUE form.
func (a *AppConfig) OverwriteConf(args []string) {
	for k, v := range ArgKeyVal(args) {
		if len(v) == 1 {
			a.SetProp(k, v[0])
		} else {
			a.SetProp(k, v)
		}
	}
}

// Load config from io Reader.
//
// It's the caller's responsibility to close the provided reader.
//
// Calling this method overides previously loaded config.
func (a *AppConfig) LoadConfigFromReader(reader io.Reader) error {
	var eo error
	doWithWriteLock(a, func() {
		a.vp.SetConfigType("yml")
		if err := a.vp.MergeConfig(reader); err != nil {
			eo = ErrConfig.Wrapf(err, "failed to load config from reader")
		}
	})
	return eo
}

// Load config from string.
//
// Calling this method overides previously loaded config.
func (a *AppConfig) LoadConfigFromStr(s string) error {
	return a.LoadConfigFromReader(bytes.NewReader([]byte(s)))
}

// Load config from file.
//
// Calling this method overides previously loaded config.
func (a *AppConfig) LoadConfigFromFile(configFile string) error {
	if configFile == "" {
		return nil
	}

	f, err := os.Open(configFile)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrConfig.Wrapf(err, "unable to find config file: '%s'", configFile)
		}
		return ErrConfig.Wrapf(err, "failed to open config file: '%s'", configFile)
	}
	defer f.Close()

	if err := a.LoadConfigFromReader(f); err != nil {
		return ErrConfig.Wrapf(err, "failed to load config file: '%s'", configFile)
	}
	logging.Debugf("Loaded config file: '%v'", configFile)
	return nil
}

// Resolve argument, e.g., for arg like '${someArg}', it will in fact look for 'someArg' in os.Env
func (a *AppConfig) ResolveArg(arg string) string {
	return resolveArgRegexp.ReplaceAllStringFunc(arg, func(s string) string {
		key := s[2 : len(s)-1]
		val := os.Getenv(key)

		if val == "" {
			val = cast.ToString(returnWithReadLock(a, func() any { return a.vp.Get(key) }))
		}

		if val == "" {
			val = s
		}
		return val
	})
}

func SetProp(prop string, val any) {
	_globalConfig.SetProp(prop, val)
}

func SetDefProp(prop string, defVal any) {
	_globalConfig.SetDefProp(prop, defVal)
}

func HasProp(prop string) bool {
	return _globalConfig.HasProp(prop)
}

func GetPropInt(prop string) int {
	return _globalConfig.GetPropInt(prop)
}

func GetPropBool(prop string) bool {
	return _globalConfig.GetPropBool(prop)
}

func GetPropStr(prop string) string {
	return _globalConfig.GetPropStr(prop)
}

func OverwriteConf(args []string) {
	_globalConfig.OverwriteConf(args)
}

func LoadConfigFromStr(s string) error {
	return _globalConfig.LoadConfigFromStr(s)
}

func LoadConfigFromFile(configFile string) error {
	return _globalConfig.LoadConfigFromFile(configFile)
}

// Get the global AppConfig.
func Global() *AppConfig {
	return _globalConfig
}

func doWithWriteLock(a *AppConfig, f func()) {
	a.rwmu.Lock()
	defer a.rwmu.Unlock()
	f()
}

func returnWithReadLock[T any](a *AppConfig, f func() T) T {
	a.rwmu.RLock()
	defer a.rwmu.RUnlock()
	return f()
}

// Parse CLI args to key-value map
func ArgKeyVal(args []string) map[string][]string {
	m := map[string][]string{}
	for _, s := range args {
		eq := strings.Index(s, "=")
		if eq == -1 {
			continue
		}

		key := strings.TrimSpace(s[:eq])
		val := strings.TrimSpace(s[eq+1:])
		if prev, ok := m[key]; ok {
			m[key] = append(prev, val)
		} else {
			m[key] = []string{val}
		}
	}
	return m
}
