//go:build !linux && !windows

package source

// ForPlatform has no adapters on this target; every domain reports absent.
func ForPlatform(Env) Set { return Empty() }
