package filesystem

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"mtodo/pkg/slug"
)

const (
	// DefaultFileName is the store file name when none is configured
	DefaultFileName = "todos.json"

	backupInfix      = "_backup_"
	backupTimeLayout = "20060102_150405"
)

// PathBuilder constructs filesystem paths for the task store and its backups
type PathBuilder struct {
	dataDir  string
	fileName string
}

// NewPathBuilder creates a new PathBuilder
func NewPathBuilder(dataDir, fileName string) *PathBuilder {
	if fileName == "" {
		fileName = DefaultFileName
	}
	return &PathBuilder{
		dataDir:  dataDir,
		fileName: fileName,
	}
}

// DataDir returns the directory holding the store
func (pb *PathBuilder) DataDir() string {
	return pb.dataDir
}

// DataFile returns the path of the store file
func (pb *PathBuilder) DataFile() string {
	return filepath.Join(pb.dataDir, pb.fileName)
}

// BackupFile returns the backup path for a moment in time:
// <basename>_backup_<YYYYMMDD_HHmmss>.<ext>
func (pb *PathBuilder) BackupFile(at time.Time) string {
	ext := filepath.Ext(pb.fileName)
	base := strings.TrimSuffix(pb.fileName, ext)
	name := fmt.Sprintf("%s%s%s%s", base, backupInfix, at.Format(backupTimeLayout), ext)
	return filepath.Join(pb.dataDir, name)
}

// BackupPattern returns a glob matching every backup of the store
func (pb *PathBuilder) BackupPattern() string {
	ext := filepath.Ext(pb.fileName)
	base := strings.TrimSuffix(pb.fileName, ext)
	return filepath.Join(pb.dataDir, base+backupInfix+"*"+ext)
}

// ProfileFileName derives the store file name for a named profile:
// todos.json with profile "Work Stuff" becomes todos-work-stuff.json
func ProfileFileName(fileName, profile string) string {
	if fileName == "" {
		fileName = DefaultFileName
	}
	if strings.TrimSpace(profile) == "" {
		return fileName
	}
	ext := filepath.Ext(fileName)
	base := strings.TrimSuffix(fileName, ext)
	return base + "-" + slug.Generate(profile) + ext
}
