//go:build !windows

package cim

// nativeQuery is nil off Windows; queries go straight to the fallback.
var nativeQuery func(query string, dst any) error
