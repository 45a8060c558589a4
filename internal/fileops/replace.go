package fileops

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

const backupSuffix = ".tmr.bak"

var (
	osStat   = os.Stat
	osRename = os.Rename
	osRemove = os.Remove
)

// Install moves a staged temp file into place at target, keeping any
// existing target as a rollback backup until the move succeeds.
func Install(tempPath string, targetPath string) error {
	staged := strings.TrimSpace(tempPath)
	target := strings.TrimSpace(targetPath)
	switch {
	case staged == "":
		return fmt.Errorf("staged path is empty")
	case target == "":
		return fmt.Errorf("target path is empty")
	case staged == target:
		return fmt.Errorf("staged and target paths must differ")
	}

	info, err := osStat(staged)
	if err != nil {
		return fmt.Errorf("stat staged file %q: %w", staged, err)
	}
	if info.IsDir() {
		return fmt.Errorf("staged path is a directory: %s", staged)
	}

	backup := target + backupSuffix
	if err := clearStaleBackup(backup); err != nil {
		return err
	}

	restorable, err := stashTarget(target, backup)
	if err != nil {
		return err
	}

	if err := osRename(staged, target); err != nil {
		if restorable {
			if rollbackErr := osRename(backup, target); rollbackErr != nil {
				return fmt.Errorf("install failed (%v) and rollback failed (%w)", err, rollbackErr)
			}
		}
		return fmt.Errorf("move staged file into place: %w", err)
	}

	if restorable {
		if err := osRemove(backup); err != nil {
			return fmt.Errorf("remove backup %q: %w", backup, err)
		}
	}
	return nil
}

func clearStaleBackup(backup string) error {
	_, err := osStat(backup)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("stat backup %q: %w", backup, err)
	}
	if err := osRemove(backup); err != nil {
		return fmt.Errorf("remove stale backup %q: %w", backup, err)
	}
	return nil
}

func stashTarget(target string, backup string) (bool, error) {
	_, err := osStat(target)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat target %q: %w", target, err)
	}
	if err := osRename(target, backup); err != nil {
		return false, fmt.Errorf("move target to backup: %w", err)
	}
	return true, nil
}
