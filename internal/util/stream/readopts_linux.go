package stream

import (
	"os"

	"golang.org/x/sys/unix"
)

var ReadOptimizations = []ReadOpt{
	{
		Name: "Sequential Read fadvise",
		Action: func(f *os.File, s os.FileInfo) error {
			if !s.Mode().IsRegular() {
				return os.ErrInvalid
			}
			return unix.Fadvise(int(f.Fd()), 0, 0, unix.FADV_SEQUENTIAL)
		},
	},
}
