// Package langdetect decides which files are Swift sources.
// It uses go-enry for extension, shebang and vendored-path detection.
package langdetect

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Swift is the language name reported by go-enry for Swift sources.
const Swift = "Swift"

// IsSwift reports whether path is a Swift source. head holds the first
// bytes of the file and is consulted for extensionless scripts only.
func IsSwift(path string, head []byte) bool {
	if filepath.Ext(path) != "" {
		lang, _ := enry.GetLanguageByExtension(path)
		return lang == Swift
	}
	return isSwiftScript(head)
}

// isSwiftScript reports whether head starts with a shebang running swift.
func isSwiftScript(head []byte) bool {
	if !bytes.HasPrefix(head, []byte("#!")) {
		return false
	}
	if lang, ok := enry.GetLanguageByShebang(head); ok && lang == Swift {
		return true
	}

	line, _, _ := bytes.Cut(head[2:], []byte("\n"))
	fields := bytes.Fields(line)
	if len(fields) == 0 {
		return false
	}
	interpreter := filepath.Base(string(fields[0]))
	if interpreter == "env" {
		for _, f := range fields[1:] {
			if !bytes.HasPrefix(f, []byte("-")) {
				interpreter = string(f)
				break
			}
		}
	}
	return interpreter == "swift"
}

// dependencyDirs hold build output or checked-out packages of the Swift
// package managers. go-enry knows Carthage but not the rest.
//
//nolint:gochecknoglobals // Read-only lookup table.
var dependencyDirs = map[string]bool{
	".build":      true,
	".swiftpm":    true,
	"Carthage":    true,
	"DerivedData": true,
	"Pods":        true,
}

// IsDependencyDir reports whether a directory with this base name holds
// dependencies or build output.
func IsDependencyDir(name string) bool {
	return dependencyDirs[name]
}

// IsVendored reports whether path lies in a third-party dependency
// directory, such as Pods or Carthage.
func IsVendored(path string) bool {
	path = filepath.ToSlash(path)
	for segment := range strings.SplitSeq(path, "/") {
		if dependencyDirs[segment] {
			return true
		}
	}
	return enry.IsVendor(path)
}
