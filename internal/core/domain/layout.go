package domain

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	// ConfigFileName is the default name of the experiment config file.
	ConfigFileName = "experiment.yaml"

	// ResultFileSuffix is appended to the unique run name to form the
	// default checkpoint file name.
	ResultFileSuffix = ".result.json"

	// BackupSuffix is appended to a file that is rotated out of the way
	// before being overwritten.
	BackupSuffix = ".old"

	// ConfigNameKey is the config key holding the experiment name.
	ConfigNameKey = "NAME"

	// ConfigUniqueNameKey is the config key holding the collision-free
	// run name (name, timestamp and host).
	ConfigUniqueNameKey = "UNIQUE_NAME"

	// ConfigReuseFileKey is the config key holding the checkpoint path
	// loaded before scheduling begins.
	ConfigReuseFileKey = "REUSE_FILE"

	// ConfigResultFileKey is the config key holding the checkpoint path
	// written after each scheduling pass.
	ConfigResultFileKey = "RESULT_FILE"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// timeLayout matches the run-name timestamp format, e.g.
// "2011-Mar-25__14-03-59".
const timeLayout = "2006-Jan-02__15-04-05"

// TimeString formats t for use in file and run names.
func TimeString(t time.Time) string {
	return t.Format(timeLayout)
}

// HostString returns the first label of this machine's network name,
// handy to tell runs apart on a cluster.
func HostString() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		return "unknown"
	}
	host, _, _ = strings.Cut(host, ".")
	return host
}

// UniqueSuffix composes a collision-free run suffix from the current
// time and host.
func UniqueSuffix(now time.Time) string {
	return TimeString(now) + "_on_" + HostString()
}

// SanitizeName makes an experiment name safe for use as a directory
// name by replacing spaces and path separators.
func SanitizeName(name string) string {
	r := strings.NewReplacer(" ", "_", "/", "_", "\\", "_")
	return r.Replace(name)
}

// DefaultResultPath returns the derived checkpoint path for a run:
// a directory named after the experiment holding one file per run.
func DefaultResultPath(name, uniqueName string) string {
	return filepath.Join(name, uniqueName+ResultFileSuffix)
}
