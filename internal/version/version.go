package version

import (
	"fmt"
	"runtime"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Build описывает сборку сервиса.
type Build struct {
	Version   string
	Commit    string
	Date      string
	GoVersion string
}

// Current возвращает информацию о сборке, заполняемую через -ldflags.
func Current() Build {
	return Build{
		Version:   version,
		Commit:    commit,
		Date:      date,
		GoVersion: runtime.Version(),
	}
}

func (b Build) String() string {
	return fmt.Sprintf("version=%s commit=%s date=%s go=%s", b.Version, b.Commit, b.Date, b.GoVersion)
}
