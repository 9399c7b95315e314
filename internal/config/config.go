package config

import (
	"errors"
	"io/fs"
	"runtime"
	"strings"

	"github.com/spf13/viper"

	"github.com/nvmd-labs/nvmd/internal/branding"
	"github.com/nvmd-labs/nvmd/internal/dirs"
	"github.com/nvmd-labs/nvmd/internal/logging"
)

const fileType = "json"

// Proxy is the download proxy address.
type Proxy struct {
	IP   string `json:"ip" mapstructure:"ip"`
	Port string `json:"port" mapstructure:"port"`
}

// Settings mirrors setting.json. Every field is optional; nil means unset.
type Settings struct {
	// Closer is "minimize" or "close".
	Closer *string `json:"closer,omitempty" mapstructure:"closer"`
	// Coder is the editor command used to open projects.
	Coder     *string `json:"coder,omitempty" mapstructure:"coder"`
	Directory *string `json:"directory,omitempty" mapstructure:"directory"`

	EnableSilentStart *bool `json:"enable_silent_start,omitempty" mapstructure:"enable_silent_start"`

	// Locale is "en" or "zh-CN".
	Locale *string `json:"locale,omitempty" mapstructure:"locale"`
	// Mirror is the node distribution download URL.
	Mirror  *string `json:"mirror,omitempty" mapstructure:"mirror"`
	Proxy   *Proxy  `json:"proxy,omitempty" mapstructure:"proxy"`
	NoProxy *bool   `json:"no_proxy,omitempty" mapstructure:"no_proxy"`
	// Theme is "system", "light" or "dark".
	Theme *string `json:"theme,omitempty" mapstructure:"theme"`
}

// DefaultMirror is the official node distribution server.
const DefaultMirror = "https://nodejs.org/dist"

// DefaultCoder returns the editor command for the current host.
func DefaultCoder() string {
	if runtime.GOOS == "windows" {
		return "code.cmd"
	}
	return "code"
}

// Template returns the settings used when setting.json is absent or unreadable.
func Template(paths *dirs.Paths) Settings {
	return Settings{
		Closer:            ptr("minimize"),
		Coder:             ptr(DefaultCoder()),
		Directory:         ptr(paths.DefaultInstallDir()),
		EnableSilentStart: ptr(false),
		Locale:            ptr("en"),
		Mirror:            ptr(DefaultMirror),
		NoProxy:           ptr(false),
		Theme:             ptr("system"),
	}
}

// Load reads the settings file at path on top of tmpl. A missing file yields
// tmpl. Any other failure is logged and also yields tmpl, so a broken file
// never blocks startup. Environment overrides are not applied; the result is
// what gets committed back to disk.
func Load(path string, tmpl Settings, log logging.Logger) Settings {
	log = log.WithTarget("app")

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType(fileType)
	for key, value := range tmpl.defaults() {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, fs.ErrNotExist) && !errors.As(err, &notFound) {
			log.Errorf("reading %s: %v", path, err)
			return tmpl
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		log.Errorf("decoding %s: %v", path, err)
		return tmpl
	}
	return s
}

// ApplyEnv returns a copy of s with NVMD_* environment overrides applied
// (NVMD_THEME, NVMD_PROXY_IP, ...). Overrides are transient: use the result
// for display and keep committing s.
func ApplyEnv(s Settings, log logging.Logger) Settings {
	v := viper.New()
	for key, value := range s.defaults() {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(branding.EnvPrefix())
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, f := range fields {
		if err := v.BindEnv(f.key); err != nil {
			log.WithTarget("app").Warnf("binding %s: %v", f.key, err)
		}
	}

	var out Settings
	if err := v.Unmarshal(&out); err != nil {
		log.WithTarget("app").Errorf("applying environment overrides: %v", err)
		return s.Clone()
	}
	return out
}

// defaults flattens the set fields of s into viper keys.
func (s Settings) defaults() map[string]any {
	out := make(map[string]any)
	for _, f := range fields {
		if value, ok := f.get(&s); ok {
			out[f.key] = value
		}
	}
	return out
}

// Patch copies every set field of patch into s.
func (s *Settings) Patch(patch Settings) {
	if patch.Closer != nil {
		s.Closer = patch.Closer
	}
	if patch.Coder != nil {
		s.Coder = patch.Coder
	}
	if patch.Directory != nil {
		s.Directory = patch.Directory
	}
	if patch.EnableSilentStart != nil {
		s.EnableSilentStart = patch.EnableSilentStart
	}
	if patch.Locale != nil {
		s.Locale = patch.Locale
	}
	if patch.Mirror != nil {
		s.Mirror = patch.Mirror
	}
	if patch.Proxy != nil {
		s.Proxy = patch.Proxy
	}
	if patch.NoProxy != nil {
		s.NoProxy = patch.NoProxy
	}
	if patch.Theme != nil {
		s.Theme = patch.Theme
	}
}

// Clone returns a deep copy of s.
func (s Settings) Clone() Settings {
	out := Settings{}
	out.Closer = clonePtr(s.Closer)
	out.Coder = clonePtr(s.Coder)
	out.Directory = clonePtr(s.Directory)
	out.EnableSilentStart = clonePtr(s.EnableSilentStart)
	out.Locale = clonePtr(s.Locale)
	out.Mirror = clonePtr(s.Mirror)
	out.Proxy = clonePtr(s.Proxy)
	out.NoProxy = clonePtr(s.NoProxy)
	out.Theme = clonePtr(s.Theme)
	return out
}

func ptr[T any](v T) *T { return &v }

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
