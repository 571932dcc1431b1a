// Package parse converts raw archive documents into warehouse rows.
//
// Every function is pure: it takes a session key and one or more raw
// documents and returns normalized row sets, performing no I/O. The shared
// numeric rules matter: empty or unparsable input always becomes nil, never
// zero, because a zero elapsed time is observably different from "not
// recorded".
package parse
