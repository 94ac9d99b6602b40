//go:build windows

package fileinfo

import (
	"os"
	"syscall"
	"time"
)

func hostBirthTime(path string, fi os.FileInfo) (time.Time, bool) {
	if fi == nil {
		var err error
		if fi, err = os.Stat(path); err != nil {
			return time.Time{}, false
		}
	}
	data, ok := fi.Sys().(*syscall.Win32FileAttributeData)
	if !ok {
		return time.Time{}, false
	}
	return time.Unix(0, data.CreationTime.Nanoseconds()), true
}
