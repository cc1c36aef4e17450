package tail

import (
	"fmt"
	"os"
	"syscall"
)

// fileIdentity pins the physical file behind a path at open time. If either
// number changes, the path has been pointed at a different file.
type fileIdentity struct {
	dev uint64
	ino uint64
}

func identityOf(fi os.FileInfo) (fileIdentity, error) {
	st, ok := fi.Sys().(*syscall.Stat_t)
	if !ok {
		return fileIdentity{}, fmt.Errorf("no stat identity for %s", fi.Name())
	}
	return fileIdentity{dev: uint64(st.Dev), ino: uint64(st.Ino)}, nil
}

type rotationStatus int

const (
	statusUnchanged rotationStatus = iota
	statusRotated
)

// checkRotation re-stats path and compares against the identity captured at
// open. A device or inode change means the log was rotated by replacement; a
// size below the consumed offset means it was truncated in place. Both read
// as rotated. A transient stat failure reads as unchanged so the next poll
// retries instead of tearing the session down.
func checkRotation(path string, ident fileIdentity, consumed int64) rotationStatus {
	fi, err := os.Stat(path)
	if err != nil {
		return statusUnchanged
	}
	cur, err := identityOf(fi)
	if err != nil {
		return statusUnchanged
	}
	if cur != ident {
		return statusRotated
	}
	if fi.Size() < consumed {
		return statusRotated
	}
	return statusUnchanged
}
