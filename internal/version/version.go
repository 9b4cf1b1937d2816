package version

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Set at build time with -ldflags "-X github.com/ecol-master/packhouse/internal/version.BuildVersion=..."
var (
	BuildVersion = "dev"
	BuildRef     = "unknown"
	BuildDate    = "unknown"
)

// String returns the version, git ref and build date on one line
func String() string {
	return fmt.Sprintf("%s (%s, built %s)", BuildVersion, BuildRef, BuildDate)
}

// WriteVersion prints the program name and version to w
func WriteVersion(w io.Writer) {
	fmt.Fprintf(w, "%s version %s\n", progName(), String()) //nolint:errcheck
}

func progName() string {
	if len(os.Args) == 0 {
		return "packhouse"
	}
	return filepath.Base(os.Args[0])
}
