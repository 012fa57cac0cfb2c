// Package xdg resolves the secondary, non-primary search location for
// dualkey's config file, following the [XDG Base Directory Specification]'s
// $XDG_CONFIG_HOME convention. config.Loader's primary location is always
// beside the executable (matching the original tool); ConfigFile gives it a
// second place to look so a config can live in a synced home directory
// instead of next to the binary. os.UserHomeDir stands in for the
// Linux-only $HOME so the same fallback resolves on Windows too.
//
// [XDG Base Directory Specification]: https://specifications.freedesktop.org/basedir-spec/latest
package xdg

import (
	"fmt"
	"os"
	"path/filepath"
)

func home() string {
	var (
		dir string
		err error
	)

	dir, err = os.UserHomeDir()
	if err != nil || dir == "" {
		return "/"
	}

	return dir
}

// configHome returns $XDG_CONFIG_HOME if it's set to an absolute path,
// otherwise home()/.config.
func configHome() string {
	var env string

	env = os.Getenv("XDG_CONFIG_HOME")
	if env == "" || !filepath.IsAbs(env) {
		return filepath.Join(home(), ".config")
	}

	return env
}

// ConfigFile opens relPath (e.g. "dualkey/config.txt") for read/write
// access under the config base directory, creating missing parent
// directories as needed. Don't forget to call *os.File.Close() after use.
func ConfigFile(relPath string) (*os.File, error) {
	const userOnly os.FileMode = 0o700

	var (
		file *os.File
		path string
		err  error
	)

	path = filepath.Join(configHome(), relPath)

	err = os.MkdirAll(filepath.Dir(path), userOnly)
	if err != nil {
		return nil, fmt.Errorf("xdg.ConfigFile: %w", err)
	}

	file, err = os.OpenFile(filepath.Clean(path), os.O_RDWR|os.O_CREATE, userOnly)
	if err != nil {
		return nil, fmt.Errorf("xdg.ConfigFile: %w", err)
	}

	return file, nil
}
