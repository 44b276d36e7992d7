// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refactor

import (
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config controls a rewriting run.
type Config struct {
	// ExcludeFields names a file listing fully-qualified fields that
	// must not be rewritten. Empty means no such file.
	ExcludeFields string `toml:"exclude_fields"`

	// Wrapper is the class template that replaces raw pointers.
	Wrapper string `toml:"wrapper"`

	// Accessor is appended after a member name at use sites that
	// need the raw pointer back.
	Accessor string `toml:"accessor"`

	// Include is the header that declares Wrapper.
	Include string `toml:"include"`

	ThirdParty ThirdPartyConfig `toml:"third_party"`
}

// ThirdPartyConfig decides which paths belong to code that is not
// rewritten.
//
// A path is third-party if it contains an AlwaysThirdParty entry, or
// else if it contains Marker and no FirstParty entry.
type ThirdPartyConfig struct {
	Marker           string   `toml:"marker"`
	FirstParty       []string `toml:"first_party"`
	AlwaysThirdParty []string `toml:"always_third_party"`
}

// DefaultConfig returns the settings for the CheckedPtr migration.
func DefaultConfig() Config {
	return Config{
		Wrapper:  "CheckedPtr",
		Accessor: ".get()",
		Include:  "base/memory/checked_ptr.h",
		ThirdParty: ThirdPartyConfig{
			Marker: "third_party",
			// Blink lives in the main repository despite its path.
			FirstParty: []string{"third_party/blink/"},
			// V8's public headers are not rewritten, so uses of
			// their fields must not get accessors either.
			AlwaysThirdParty: []string{"v8/include/"},
		},
	}
}

// LoadConfig reads a TOML configuration file on top of DefaultConfig.
// Keys the file does not set keep their defaults; unknown keys are
// an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		var keys []string
		for _, k := range undec {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that the settings can produce compilable output.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Wrapper) == "" {
		return fmt.Errorf("wrapper must not be empty")
	}
	if strings.TrimSpace(c.Accessor) == "" {
		return fmt.Errorf("accessor must not be empty")
	}
	if strings.ContainsAny(c.Wrapper+c.Accessor+c.Include, "\n") {
		return fmt.Errorf("wrapper, accessor and include must be single-line")
	}
	return nil
}
