// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cxx

import (
	"fmt"
	"strings"
)

// A Language is the input language of a translation unit.
type Language int

const (
	LangUnknown Language = iota
	LangC
	LangCXX
	LangObjC
	LangObjCXX
	LangAsm
	LangLLVMIR
	LangOpenCL
	LangCUDA
	LangHIP
	LangRenderScript
)

var langNames = []string{
	LangUnknown:      "unknown",
	LangC:            "c",
	LangCXX:          "c++",
	LangObjC:         "objective-c",
	LangObjCXX:       "objective-c++",
	LangAsm:          "assembler",
	LangLLVMIR:       "ir",
	LangOpenCL:       "opencl",
	LangCUDA:         "cuda",
	LangHIP:          "hip",
	LangRenderScript: "renderscript",
}

func (l Language) String() string {
	if l < 0 || int(l) >= len(langNames) {
		return fmt.Sprintf("Language(%d)", int(l))
	}
	return langNames[l]
}

// ParseLanguage maps a language name, as used by clang's -x flag,
// to a Language. Header and preprocessed variants such as c++-header
// and objective-c-cpp-output map to their base language.
func ParseLanguage(s string) (Language, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "cpp-output" {
		return LangC, nil
	}
	for _, suffix := range []string{"-user-header", "-system-header", "-header", "-cpp-output"} {
		if base, ok := strings.CutSuffix(s, suffix); ok {
			s = base
			break
		}
	}
	switch s {
	case "cxx", "cpp":
		return LangCXX, nil
	case "objc":
		return LangObjC, nil
	case "objcxx", "objc++":
		return LangObjCXX, nil
	case "asm", "assembler-with-cpp":
		return LangAsm, nil
	case "llvm-ir":
		return LangLLVMIR, nil
	}
	for l, name := range langNames {
		if l != int(LangUnknown) && s == name {
			return Language(l), nil
		}
	}
	return LangUnknown, fmt.Errorf("unknown language %q", s)
}

// HasClasses reports whether sources in l can use a class template,
// which the wrapper type needs.
func (l Language) HasClasses() bool {
	return l == LangCXX || l == LangObjCXX
}
