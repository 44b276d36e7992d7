// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Rawptr migrates raw pointer fields of C++ classes to a wrapper type.
//
// Usage:
//
//	rawptr rewrite [--config file] [--exclude-fields file] [-j n] unit...
//	rawptr apply [--diff] [--dir dir] [stream...]
//
// Rawptr does not parse C++ itself. A compiler frontend dumps each
// translation unit, with resolved types and source locations, as a unit
// file; rewrite reads those and prints the edits that turn
//
//	SomeClass* field_;
//
// into
//
//	CheckedPtr<SomeClass> field_;
//
// together with the edits needed at uses of the field that would stop
// compiling. Apply merges the output of many rewrite runs and patches
// the tree.
//
// # Which fields are rewritten
//
// A field is rewritten if its type is a single-level pointer to
// something other than a function, a member pointer, a character type,
// an array, a class that deletes operator new, or a struct declared
// inline with the field. Fields sharing a type specifier, as in
//
//	int *a, *b;
//
// are left alone, as are fields declared under third_party (except
// third_party/blink), under v8/include, inside macro expansions, inside
// extern "C" blocks, in lambda closures, in implicit template
// instantiations, and fields listed in the --exclude-fields file:
//
//	# one fully-qualified name per line
//	autofill::AddressField::address1_  # some comment
//	WTF::HashTable::table_              # no template arguments
//
// A file that cannot be read is reported and treated as empty.
//
// # Which uses are patched
//
// A use of a rewritten field gets the accessor (.get()) appended when
// it is an argument to a variadic function, the operand of const_cast
// or reinterpret_cast, a branch of ?:, or the initializer of an auto*
// variable:
//
//	printf("%p", s.ptr)     ->  printf("%p", s.ptr.get())
//	auto* v = s.ptr;        ->  auto* v = s.ptr.get();
//
// # Output
//
// Rewrite prints one block per unit:
//
//	==== BEGIN EDITS ====
//	r:::<file>:::<offset>:::<length>:::<replacement text>
//	include-user-header:::<file>:::-1:::-1:::<header>
//	==== END EDITS ====
//
// Newlines in replacement text are printed as NUL bytes. Units in C,
// Objective-C, assembly and other languages without class templates
// produce no output at all.
//
// # Configuration
//
// The --config file is TOML:
//
//	exclude_fields = "fields-to-skip.txt"
//	wrapper = "CheckedPtr"
//	accessor = ".get()"
//	include = "base/memory/checked_ptr.h"
//
//	[third_party]
//	marker = "third_party"
//	first_party = ["third_party/blink/"]
//	always_third_party = ["v8/include/"]
//
// The values shown are the defaults.
//
// # Unit files
//
// A unit file is the JSON (or MessagePack) form of a cxx.Unit: the
// compilation directory, exactly one input file with its language, and
// the declaration tree. Locations are byte offsets; a location may
// instead give an address in the syntax of sam and acme, such as
// "/int\\* p/", evaluated against the file text.
package main
