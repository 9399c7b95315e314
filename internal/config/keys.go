package config

import (
	"fmt"
	"slices"
	"strconv"
)

type field struct {
	key     string
	allowed []string
	get     func(s *Settings) (any, bool)
	set     func(s *Settings, value string) error
}

var fields = []field{
	stringField("closer", func(s *Settings) **string { return &s.Closer }, "minimize", "close"),
	stringField("coder", func(s *Settings) **string { return &s.Coder }),
	stringField("directory", func(s *Settings) **string { return &s.Directory }),
	boolField("enable_silent_start", func(s *Settings) **bool { return &s.EnableSilentStart }),
	stringField("locale", func(s *Settings) **string { return &s.Locale }, "en", "zh-CN"),
	stringField("mirror", func(s *Settings) **string { return &s.Mirror }),
	{
		key: "proxy.ip",
		get: func(s *Settings) (any, bool) {
			if s.Proxy == nil {
				return nil, false
			}
			return s.Proxy.IP, true
		},
		set: func(s *Settings, value string) error {
			p := Proxy{}
			if s.Proxy != nil {
				p = *s.Proxy
			}
			p.IP = value
			s.Proxy = &p
			return nil
		},
	},
	{
		key: "proxy.port",
		get: func(s *Settings) (any, bool) {
			if s.Proxy == nil {
				return nil, false
			}
			return s.Proxy.Port, true
		},
		set: func(s *Settings, value string) error {
			if _, err := strconv.ParseUint(value, 10, 16); err != nil {
				return fmt.Errorf("proxy.port: %q is not a port number", value)
			}
			p := Proxy{}
			if s.Proxy != nil {
				p = *s.Proxy
			}
			p.Port = value
			s.Proxy = &p
			return nil
		},
	},
	boolField("no_proxy", func(s *Settings) **bool { return &s.NoProxy }),
	stringField("theme", func(s *Settings) **string { return &s.Theme }, "system", "light", "dark"),
}

func stringField(key string, ref func(*Settings) **string, allowed ...string) field {
	return field{
		key:     key,
		allowed: allowed,
		get: func(s *Settings) (any, bool) {
			p := *ref(s)
			if p == nil {
				return nil, false
			}
			return *p, true
		},
		set: func(s *Settings, value string) error {
			if len(allowed) > 0 && !slices.Contains(allowed, value) {
				return fmt.Errorf("%s: %q is not one of %v", key, value, allowed)
			}
			*ref(s) = &value
			return nil
		},
	}
}

func boolField(key string, ref func(*Settings) **bool) field {
	return field{
		key: key,
		get: func(s *Settings) (any, bool) {
			p := *ref(s)
			if p == nil {
				return nil, false
			}
			return *p, true
		},
		set: func(s *Settings, value string) error {
			b, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("%s: %q is not a boolean", key, value)
			}
			*ref(s) = &b
			return nil
		},
	}
}

func lookup(key string) (field, bool) {
	for _, f := range fields {
		if f.key == key {
			return f, true
		}
	}
	return field{}, false
}

// Keys returns every settings key in display order.
func Keys() []string {
	keys := make([]string, len(fields))
	for i, f := range fields {
		keys[i] = f.key
	}
	return keys
}

// Get returns the value of key formatted for display, and whether it is set.
func (s Settings) Get(key string) (string, bool, error) {
	f, ok := lookup(key)
	if !ok {
		return "", false, fmt.Errorf("unknown settings key %q", key)
	}
	value, set := f.get(&s)
	if !set {
		return "", false, nil
	}
	return fmt.Sprint(value), true, nil
}

// Set parses value for key and stores it in s.
func (s *Settings) Set(key, value string) error {
	f, ok := lookup(key)
	if !ok {
		return fmt.Errorf("unknown settings key %q (valid keys: %v)", key, Keys())
	}
	return f.set(s, value)
}
