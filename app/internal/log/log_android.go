// SPDX-License-Identifier: Unlicense OR MIT

// Package log forwards standard output and standard error to
// logcat, mapping logrus levels to logcat priorities.
package log

/*
#cgo LDFLAGS: -llog

#include <stdlib.h>
#include <android/log.h>
*/
import "C"

import (
	"bufio"
	"bytes"
	"os"
	"runtime"
	"unsafe"

	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

const tag = "ndkarte"

func init() {
	// logcat already includes timestamps.
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		DisableColors:    true,
	})
	logFd(os.Stdout.Fd())
	logFd(os.Stderr.Fd())
}

func logFd(fd uintptr) {
	r, w, err := os.Pipe()
	if err != nil {
		panic(err)
	}
	if err := unix.Dup3(int(w.Fd()), int(fd), unix.O_CLOEXEC); err != nil {
		panic(err)
	}
	go func() {
		ctag := C.CString(tag)
		defer C.free(unsafe.Pointer(ctag))
		// 1024 is the truncation limit from android/log.h, plus a \n.
		lineBuf := bufio.NewReaderSize(r, 1024)
		// The buffer to pass to C, including the terminating '\0'.
		buf := make([]byte, lineBuf.Size()+1)
		cbuf := (*C.char)(unsafe.Pointer(&buf[0]))
		for {
			line, _, err := lineBuf.ReadLine()
			if err != nil {
				break
			}
			copy(buf, line)
			buf[len(line)] = 0
			C.__android_log_write(priority(line), ctag, cbuf)
		}
		// The garbage collector doesn't know that w's fd was dup'ed.
		// Avoid finalizing w, and thereby avoid its finalizer closing its fd.
		runtime.KeepAlive(w)
	}()
}

// priority maps the level field of a logrus text line.
func priority(line []byte) C.int {
	switch {
	case bytes.Contains(line, []byte("level=debug")), bytes.Contains(line, []byte("level=trace")):
		return C.ANDROID_LOG_DEBUG
	case bytes.Contains(line, []byte("level=warning")):
		return C.ANDROID_LOG_WARN
	case bytes.Contains(line, []byte("level=error")):
		return C.ANDROID_LOG_ERROR
	case bytes.Contains(line, []byte("level=fatal")), bytes.Contains(line, []byte("level=panic")):
		return C.ANDROID_LOG_FATAL
	default:
		return C.ANDROID_LOG_INFO
	}
}
