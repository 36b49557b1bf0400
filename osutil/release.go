// Package osutil answers small questions about the host machine.
package osutil

import (
	"bytes"
	"os"
)

var (
	// this is a variable so it can be overridden during unit-testing.
	osRelease = "/etc/os-release"
)

// ID returns the distribution ID from the osRelease file, "ubuntu", "void",
// etc. On any error, or when the file has no ID attribute, the empty string
// is returned.
func ID() string {
	buf, err := os.ReadFile(osRelease)
	if err != nil {
		return ""
	}
	buf = append([]byte("\n"), buf...) // so a leading ID= line is found too
	i := bytes.Index(buf, []byte("\nID="))
	if i < 0 {
		return ""
	}
	id := buf[i+len("\nID="):]
	if j := bytes.IndexByte(id, '\n'); j >= 0 {
		id = id[:j]
	}
	// Some attributes are quoted, some are not. Cover both.
	id = bytes.ReplaceAll(id, []byte("\""), []byte{})
	return string(bytes.TrimSpace(id))
}
