//go:build !windows

package installer

// setUserEnv is a no-op outside windows; shell profiles carry the variable.
func setUserEnv(key, value string) error {
	return nil
}
