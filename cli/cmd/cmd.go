package cmd

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/ardnew/asciimath/pkg"
)

// contextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

type outputKey struct{}

// WithOutput returns a new context.Context whose commands write their results
// to w instead of standard output.
func WithOutput(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, outputKey{}, w)
}

func outputFrom(ctx context.Context) io.Writer {
	if w, ok := ctx.Value(outputKey{}).(io.Writer); ok && w != nil {
		return w
	}

	return os.Stdout
}

type inputKey struct{}

// WithInput returns a new context.Context whose commands read standard input
// from r.
func WithInput(ctx context.Context, r io.Reader) context.Context {
	return context.WithValue(ctx, inputKey{}, r)
}

func inputFrom(ctx context.Context) io.Reader {
	if r, ok := ctx.Value(inputKey{}).(io.Reader); ok {
		return r
	}

	return os.Stdin
}

// stdinSource is the special source name for reading from stdin.
const stdinSource = "-"

// source is an opened input along with the name it was requested by.
type source struct {
	name string
	io.Reader
}

// fileKey uniquely identifies a file by its device and inode numbers.
// This handles deduplication across symlinks, absolute/relative paths, and
// special device files.
type fileKey struct {
	dev uint64
	ino uint64
}

// openSources opens each named file in order, locating relative names that
// do not exist in the working directory via [pkg.FindFile].
//
// Files reached by more than one name are opened once. All occurrences of
// "-" collapse into a single stdin source placed last. The returned function
// closes every opened file.
func openSources(names []string) (srcs []source, closeAll func(), err error) {
	var files []*os.File

	closeAll = func() {
		for _, f := range files {
			_ = f.Close()
		}
	}

	seen := make(map[fileKey]struct{})

	stdinInfo, _ := os.Stdin.Stat()
	stdinKey, _ := makeFileKey(stdinInfo)

	for _, name := range names {
		if name == stdinSource {
			seen[stdinKey] = struct{}{}

			continue
		}

		path, err := pkg.FindFile(name)
		if err != nil {
			closeAll()

			return nil, func() {}, err
		}

		file, err := openUniqueFile(path, seen)
		if err != nil {
			closeAll()

			return nil, func() {}, err
		}

		if file != nil {
			files = append(files, file)
			srcs = append(srcs, source{name: name, Reader: file})
		}
	}

	// Stdin may have been included via "-" or as a named file.
	// Both are represented by stdinKey in seen.
	if _, ok := seen[stdinKey]; ok {
		srcs = append(srcs, source{name: stdinSource, Reader: os.Stdin})
	}

	return srcs, closeAll, nil
}

// openUniqueFile opens the file at path unless it has been seen before,
// in which case it returns nil and no error.
func openUniqueFile(path string, seen map[fileKey]struct{}) (*os.File, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	resolved, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return nil, err
	}

	if key, ok := makeFileKey(info); ok {
		if _, exists := seen[key]; exists {
			return nil, nil
		}

		seen[key] = struct{}{}
	}

	return os.Open(resolved)
}

// makeFileKey creates a fileKey from os.FileInfo.
// Returns false if the underlying Sys() data is not of type *syscall.Stat_t.
func makeFileKey(info os.FileInfo) (key fileKey, ok bool) {
	if info == nil {
		return key, false
	}

	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true //nolint:unconvert
}
