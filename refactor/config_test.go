// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refactor

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, text string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), "rawptr.toml")
	if err := os.WriteFile(file, []byte(text), 0666); err != nil {
		t.Fatal(err)
	}
	return file
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `
exclude_fields = "skip.txt"
wrapper = "raw_ptr"

[third_party]
always_third_party = ["v8/include/", "third_party/blink/public/web/"]
`))
	if err != nil {
		t.Fatal(err)
	}
	want := DefaultConfig()
	want.ExcludeFields = "skip.txt"
	want.Wrapper = "raw_ptr"
	want.ThirdParty.AlwaysThirdParty = []string{"v8/include/", "third_party/blink/public/web/"}
	if !reflect.DeepEqual(cfg, want) {
		t.Errorf("LoadConfig:\nhave %+v\nwant %+v", cfg, want)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"wrapper = \n", "failed to parse TOML"},
		{"wraper = \"raw_ptr\"\n", "unknown keys: wraper"},
		{"[third_party]\nmarkers = \"x\"\n", "unknown keys: third_party.markers"},
		{"accessor = \"\"\n", "accessor must not be empty"},
		{"wrapper = \" \"\n", "wrapper must not be empty"},
		{"include = \"a\\nb\"\n", "must be single-line"},
	}
	for _, tt := range tests {
		_, err := LoadConfig(writeConfig(t, tt.text))
		if err == nil || !strings.Contains(err.Error(), tt.want) {
			t.Errorf("LoadConfig(%q) = %v, want error containing %q", tt.text, err, tt.want)
		}
	}
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Errorf("LoadConfig of missing file succeeded")
	}
}

func TestThirdParty(t *testing.T) {
	tp := DefaultConfig().ThirdParty
	tests := []struct {
		file string
		want bool
	}{
		{"base/memory/checked_ptr.h", false},
		{"third_party/zlib/zlib.h", true},
		{"../../third_party/skia/include/core/SkRect.h", true},
		{"third_party/blink/renderer/core/dom/node.h", false},
		{`third_party\blink\renderer\core\dom\node.h`, false},
		{`C:\src\third_party\zlib\zlib.h`, true},
		{"v8/include/v8.h", true},
		{"../../v8/include/v8-isolate.h", true},
		{"v8/src/heap/heap.h", false},
		{"third_party/blink/v8/include/x.h", true},
		{"", false},
	}
	for _, tt := range tests {
		if got := tp.isThirdParty(tt.file); got != tt.want {
			t.Errorf("isThirdParty(%q) = %v, want %v", tt.file, got, tt.want)
		}
	}
}
