package store

import "github.com/fooinha/wave/pkg/wave"

// errSyntax and errNoKey reuse the engine's error taxonomy (spec.md §7)
// so a host layered on top of Store sees one consistent Code across the
// whole call stack.
func errSyntax(msg string) error {
	return &wave.Error{Code: wave.CodeSyntax, Msg: msg}
}

func errNoKey(key string) error {
	return &wave.Error{Code: wave.CodeNoKey, Msg: "no such key: " + key}
}
