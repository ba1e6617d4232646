package version

import (
	"fmt"
	"runtime/debug"
	"time"
)

// Заполняются через -ldflags "-X github.com/uhaszYsz/mmomicro/internal/version.BuildDate=..."
var (
	BuildDate   string // YYYY-MM-DD (UTC)
	BuildCommit string
	BuildBranch string
	BuildCI     string
)

// Номер сборки - число дней от запуска проекта.
var buildEpoch = time.Date(2025, time.December, 4, 0, 0, 0, 0, time.UTC)

// VersionInfo - метаданные сборки для /version.
type VersionInfo struct {
	BuildID    int    `json:"build_id"`
	BuildDate  string `json:"build_date"`
	Commit     string `json:"commit"`
	Branch     string `json:"branch"`
	CI         string `json:"ci"`
	GoVersion  string `json:"go_version"`
	Dirty      bool   `json:"dirty,omitempty"`
	Calculated bool   `json:"calculated"`
	Error      string `json:"error,omitempty"`
}

func CalculateBuildID() (int, error) {
	if BuildDate == "" {
		return 0, fmt.Errorf("BuildDate is empty")
	}

	t, err := time.ParseInLocation("2006-01-02", BuildDate, time.UTC)
	if err != nil {
		return 0, fmt.Errorf("invalid BuildDate %q: %w", BuildDate, err)
	}
	if t.Before(buildEpoch) {
		return 0, fmt.Errorf("BuildDate %s is before epoch", BuildDate)
	}

	return int(t.Sub(buildEpoch).Hours() / 24), nil
}

// Info собирает метаданные. Коммит без ldflags берется из VCS-данных go build.
func Info() VersionInfo {
	info := VersionInfo{
		BuildDate: BuildDate,
		Commit:    BuildCommit,
		Branch:    BuildBranch,
		CI:        BuildCI,
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		info.GoVersion = bi.GoVersion
		applyVCS(&info, bi.Settings)
	}

	id, err := CalculateBuildID()
	if err != nil {
		info.Error = err.Error()
		return info
	}
	info.BuildID = id
	info.Calculated = true
	return info
}

func applyVCS(info *VersionInfo, settings []debug.BuildSetting) {
	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "" {
				info.Commit = s.Value
			}
		case "vcs.modified":
			info.Dirty = s.Value == "true"
		}
	}
}

// String - строка для лога при старте.
func String() string {
	info := Info()

	commit := coalesce(info.Commit, "unknown")
	if len(commit) > 12 {
		commit = commit[:12]
	}
	if info.Dirty {
		commit += "+dirty"
	}

	build := "build unknown"
	if info.Calculated {
		build = fmt.Sprintf("build %d (%s)", info.BuildID, info.BuildDate)
	}
	return fmt.Sprintf("mmomicro %s commit[%s] branch[%s] ci[%s]",
		build, commit, coalesce(info.Branch, "unknown"), coalesce(info.CI, "local"))
}

func coalesce(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
