package checklist

import (
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// ErrLocked is returned when another writer holds the list lock.
var ErrLocked = errors.New("checksum list is locked by another writer")

// fileLock guards a list path against concurrent SaveAtomic calls.
type fileLock struct {
	path string
	file *os.File
}

func lockPath(path string) string { return path + ".lock" }

func acquireLock(path string) (*fileLock, error) {
	lp := lockPath(path)
	f, err := os.OpenFile(lp, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		if os.IsExist(err) {
			return nil, errors.Wrap(ErrLocked, lp)
		}
		return nil, errors.Wrap(err, "create lock file")
	}
	body := "pid=" + strconv.Itoa(os.Getpid()) + "\n" +
		"time=" + time.Now().UTC().Format(time.RFC3339Nano) + "\n"
	_, _ = f.WriteString(body)
	return &fileLock{path: lp, file: f}, nil
}

func (l *fileLock) release() {
	if l == nil {
		return
	}
	if l.file != nil {
		_ = l.file.Close()
	}
	_ = os.Remove(l.path)
}
