package utils

import "runtime"

// Set at build time with -ldflags "-X conda-locate/utils.version=..." and friends.
var (
	version      = "dev"
	gitCommitSha = ""
	buildTime    = ""
	buildHost    = ""
	buildUser    = ""
)

type VersionDetails struct {
	Version      string `json:"version"`
	GitCommitSha string `json:"git_commitsha"`

	BuildTime string `json:"build_time"`
	BuildHost string `json:"build_host"`
	BuildUser string `json:"build_user"`

	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// GetVersionDetails returns the build details baked into this binary.
func GetVersionDetails() VersionDetails {
	return VersionDetails{
		Version:      version,
		GitCommitSha: gitCommitSha,
		BuildTime:    buildTime,
		BuildHost:    buildHost,
		BuildUser:    buildUser,
		GoVersion:    runtime.Version(),
		Platform:     runtime.GOOS + "/" + runtime.GOARCH,
	}
}
