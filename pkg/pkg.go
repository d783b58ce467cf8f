// Package pkg holds project metadata and the filesystem locations shared by
// the command-line tools.
//
//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

// Version is the semantic version embedded at build time from the VERSION
// file.
var Version = strings.TrimSpace(version)

const (
	// Name is the command name. It is also the directory name used for
	// configuration and cache files.
	Name = "asciimath"
	// Description is a short summary used in help output.
	Description = "Evaluate infix arithmetic expressions"
)

// AuthorInfo represents an individual author's name and email address.
type AuthorInfo struct {
	Name  string
	Email string
}

// Author lists the primary author(s) of the project.
var Author = []AuthorInfo{
	{"ardnew", "andrew@ardnew.com"},
}
