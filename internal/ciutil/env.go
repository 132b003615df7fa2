package ciutil

import (
	"os"
)

// CI environment detection variables.
const (
	EnvCI            = "CI"
	EnvGitHubActions = "GITHUB_ACTIONS"
	EnvGitLabCI      = "GITLAB_CI"
	EnvJenkinsURL    = "JENKINS_URL"
	EnvCircleCI      = "CIRCLECI"
)

// IsCI returns true if the current environment is a CI environment.
// It checks for common CI environment variables across different CI providers.
func IsCI() bool {
	return os.Getenv(EnvCI) != "" ||
		os.Getenv(EnvGitHubActions) != "" ||
		os.Getenv(EnvGitLabCI) != "" ||
		os.Getenv(EnvJenkinsURL) != "" ||
		os.Getenv(EnvCircleCI) != ""
}

// Provider names the detected CI system, or "" outside CI.
func Provider() string {
	switch {
	case os.Getenv(EnvGitHubActions) != "":
		return "github_actions"
	case os.Getenv(EnvGitLabCI) != "":
		return "gitlab_ci"
	case os.Getenv(EnvJenkinsURL) != "":
		return "jenkins"
	case os.Getenv(EnvCircleCI) != "":
		return "circleci"
	case os.Getenv(EnvCI) != "":
		return "generic"
	default:
		return ""
	}
}

// providerVars maps metadata keys to the variables each provider sets for them.
var providerVars = map[string]map[string]string{
	"github_actions": {
		"ci_run_id":  "GITHUB_RUN_ID",
		"ci_commit":  "GITHUB_SHA",
		"ci_ref":     "GITHUB_REF_NAME",
		"ci_job":     "GITHUB_JOB",
		"ci_project": "GITHUB_REPOSITORY",
	},
	"gitlab_ci": {
		"ci_run_id":  "CI_PIPELINE_ID",
		"ci_commit":  "CI_COMMIT_SHA",
		"ci_ref":     "CI_COMMIT_REF_NAME",
		"ci_job":     "CI_JOB_NAME",
		"ci_project": "CI_PROJECT_PATH",
	},
	"jenkins": {
		"ci_run_id": "BUILD_ID",
		"ci_commit": "GIT_COMMIT",
		"ci_ref":    "GIT_BRANCH",
		"ci_job":    "JOB_NAME",
	},
	"circleci": {
		"ci_run_id":  "CIRCLE_BUILD_NUM",
		"ci_commit":  "CIRCLE_SHA1",
		"ci_ref":     "CIRCLE_BRANCH",
		"ci_job":     "CIRCLE_JOB",
		"ci_project": "CIRCLE_PROJECT_REPONAME",
	},
}

// Metadata returns CI metadata for log enrichment. Keys whose variables are
// unset are omitted. Outside CI the map is empty.
func Metadata() map[string]string {
	md := make(map[string]string)

	provider := Provider()
	if provider == "" {
		return md
	}
	md["ci_provider"] = provider

	for key, envVar := range providerVars[provider] {
		if val := os.Getenv(envVar); val != "" {
			md[key] = val
		}
	}
	return md
}
