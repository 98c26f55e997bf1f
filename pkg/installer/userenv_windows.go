//go:build windows

package installer

import (
	"golang.org/x/sys/windows/registry"
)

// setUserEnv writes key=value to HKCU\Environment, where new processes of the
// current user pick it up.
func setUserEnv(key, value string) error {
	k, err := registry.OpenKey(registry.CURRENT_USER, `Environment`, registry.SET_VALUE)
	if err != nil {
		return err
	}
	defer func() { _ = k.Close() }()

	return k.SetStringValue(key, value)
}
