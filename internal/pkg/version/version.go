// Package version 빌드 시점에 주입된 버전 메타데이터와 실행 환경 정보를 제공합니다.
//
// 값은 -ldflags로 주입되며, 주입되지 않은 항목은 debug.ReadBuildInfo의 VCS 정보로 보강합니다.
//
//	go build -ldflags "-X .../internal/pkg/version.appVersion=v1.4.0 -X .../internal/pkg/version.gitCommitHash=$(git rev-parse HEAD)"
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
	"sync/atomic"
)

const (
	unknown = "unknown"
	none    = "none"
)

var current atomic.Value

// readBuildInfo 테스트에서 교체합니다.
var readBuildInfo = debug.ReadBuildInfo

// 링커 플래그 주입 대상. 직접 읽지 말고 Get()을 사용합니다.
var (
	appVersion    = ""
	gitCommitHash = ""
	gitTreeState  = "" // clean | dirty
	buildDate     = ""
	buildNumber   = ""
)

func init() {
	set(enrich(Info{
		Version:     strings.TrimSpace(appVersion),
		Commit:      strings.TrimSpace(gitCommitHash),
		BuildDate:   strings.TrimSpace(buildDate),
		BuildNumber: strings.TrimSpace(buildNumber),
		DirtyBuild:  strings.EqualFold(strings.TrimSpace(gitTreeState), "dirty"),
	}))
}

// Info 빌드 메타데이터입니다. /version 응답과 시작 로그에 사용됩니다.
type Info struct {
	Version     string `json:"version"`
	Commit      string `json:"commit"`
	BuildDate   string `json:"buildDate"`
	BuildNumber string `json:"buildNumber"`
	GoVersion   string `json:"goVersion"`
	OS          string `json:"os"`
	Arch        string `json:"arch"`
	DirtyBuild  bool   `json:"dirtyBuild"`
}

// Get 현재 빌드 정보를 반환합니다.
func Get() Info {
	if bi, ok := current.Load().(Info); ok {
		return bi
	}
	return Info{Version: unknown, Commit: unknown, BuildDate: unknown, BuildNumber: "0"}
}

func set(bi Info) {
	current.Store(bi)
}

// enrich 비어 있는 필드를 런타임 값과 VCS 메타데이터로 채웁니다.
func enrich(bi Info) Info {
	if bi.GoVersion == "" {
		bi.GoVersion = runtime.Version()
	}
	if bi.OS == "" {
		bi.OS = runtime.GOOS
	}
	if bi.Arch == "" {
		bi.Arch = runtime.GOARCH
	}

	if info, ok := readBuildInfo(); ok {
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if bi.Commit == "" || bi.Commit == unknown || bi.Commit == none {
					bi.Commit = s.Value
				}
			case "vcs.time":
				if bi.BuildDate == "" || bi.BuildDate == unknown {
					bi.BuildDate = s.Value
				}
			case "vcs.modified":
				if s.Value == "true" {
					bi.DirtyBuild = true
				}
			}
		}
		if bi.Version == "" && info.Main.Version != "(devel)" {
			bi.Version = info.Main.Version
		}
	}

	if bi.Version == "" {
		bi.Version = unknown
	}
	if bi.Commit == "" || bi.Commit == none {
		bi.Commit = unknown
	}

	return bi
}

// Version 버전 문자열을 반환합니다.
func Version() string {
	return Get().Version
}

// ToMap 구조적 로깅용 필드 맵을 반환합니다.
func (i Info) ToMap() map[string]any {
	return map[string]any{
		"version":      i.Version,
		"commit":       i.Commit,
		"build_date":   i.BuildDate,
		"build_number": i.BuildNumber,
		"go_version":   i.GoVersion,
		"os":           i.OS,
		"arch":         i.Arch,
		"dirty_build":  i.DirtyBuild,
	}
}

// String 한 줄 요약을 반환합니다. 예: "v1.4.0+dirty (commit: f25b8bf, build: 12, os: linux)"
func (i Info) String() string {
	if i.Version == "" {
		return unknown
	}

	v := i.Version
	if i.DirtyBuild {
		v += "+dirty"
	}

	var details []string
	if i.Commit != "" && i.Commit != unknown {
		commit := i.Commit
		if len(commit) > 7 {
			commit = commit[:7]
		}
		details = append(details, "commit: "+commit)
	}
	if i.BuildNumber != "" {
		details = append(details, "build: "+i.BuildNumber)
	}
	if i.BuildDate != "" && i.BuildDate != unknown {
		details = append(details, "date: "+i.BuildDate)
	}
	if i.GoVersion != "" {
		details = append(details, "go_version: "+i.GoVersion)
	}
	if i.OS != "" {
		details = append(details, "os: "+i.OS)
	}
	if i.Arch != "" {
		details = append(details, "arch: "+i.Arch)
	}

	if len(details) == 0 {
		return v
	}
	return fmt.Sprintf("%s (%s)", v, strings.Join(details, ", "))
}
