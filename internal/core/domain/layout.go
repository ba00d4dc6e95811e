package domain

import "path/filepath"

const (
	// TaggerDirName is the name of the internal metadata directory under the model path.
	TaggerDirName = ".tagger"

	// StoreDirName is the name of the artifact store directory.
	StoreDirName = "store"

	// SettingsFileName is the default settings file name.
	SettingsFileName = "tagger.yaml"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultStorePath returns the artifact store directory below modelPath.
func DefaultStorePath(modelPath string) string {
	return filepath.Join(modelPath, TaggerDirName, StoreDirName)
}
