package pkg

import (
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/ardnew/mung"
)

// PathEnv is the environment variable holding additional directories, in
// PATH list format, that are searched for definition files.
const PathEnv = "ASCIIMATH_PATH"

// Prefix returns the base name used for the configuration and cache
// directories.
//
// By default, Prefix is the base name of the executable file unless it matches
// one of the following substitution rules:
//   - "__debug_bin" (default output of the dlv debugger): replaced with [Name]
//   - "^\.+" (dot-prefixed names): remove the dot prefix
//
//nolint:gochecknoglobals
var Prefix = sync.OnceValue(
	func() string {
		id := os.Args[0]
		if exe, err := os.Executable(); err == nil {
			id = exe
		}

		id = strings.TrimSuffix(filepath.Base(id), filepath.Ext(id))

		for rex, rep := range map[*regexp.Regexp]string{
			regexp.MustCompile(`^__debug_bin\d+$`): Name,
			regexp.MustCompile(`^\.+`):             "",
		} {
			id = rex.ReplaceAllString(id, rep)
		}

		if id == "" {
			return Name
		}

		return id
	},
)

// ConfigDir returns the configuration directory path.
//
//nolint:gochecknoglobals
var ConfigDir = sync.OnceValue(
	func() string {
		return filepath.Join(userDir(os.UserConfigDir, ".config"), Prefix())
	},
)

// CacheDir returns the cache directory path used for transient files such as
// the REPL history and profiles.
//
//nolint:gochecknoglobals
var CacheDir = sync.OnceValue(
	func() string {
		return filepath.Join(userDir(os.UserCacheDir, ".cache"), Prefix())
	},
)

// userDir returns the directory reported by base, falling back to a hidden
// directory in $HOME and then to the working directory.
func userDir(base func() (string, error), hidden string) string {
	if dir, err := base(); err == nil {
		return dir
	}

	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, hidden)
	}

	if wd, err := os.Getwd(); err == nil {
		return wd
	}

	return "."
}

// SearchPath returns the directories searched for definition files: the
// entries of [PathEnv] with [ConfigDir] prefixed. Empty entries are removed.
func SearchPath() []string {
	list := mung.Make(
		mung.WithSubjectItems(os.Getenv(PathEnv)),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(ConfigDir()),
	).String()

	return slices.DeleteFunc(filepath.SplitList(list), func(dir string) bool {
		return strings.TrimSpace(dir) == ""
	})
}

// FindFile locates name. Names that exist relative to the working directory
// are returned unchanged. Otherwise each directory of [SearchPath] is tried in
// order; absolute names are never searched.
func FindFile(name string) (string, error) {
	if exists(name) {
		return name, nil
	}

	if filepath.IsAbs(name) {
		return "", ErrFileNotFound.Wrapf("%s", name)
	}

	for _, dir := range SearchPath() {
		if path := filepath.Join(dir, name); exists(path) {
			return path, nil
		}
	}

	return "", ErrFileNotFound.Wrapf("%s", name)
}

func exists(path string) bool {
	info, err := os.Stat(path)

	return err == nil && !info.IsDir()
}
