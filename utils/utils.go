package utils

import (
	"path/filepath"
	"reflect"
	"runtime"
	"strconv"
	"strings"
)

var entitykitSourceDir string

func init() {
	_, file, _, _ := runtime.Caller(0)
	// compatible solution to get entitykit source directory with various operating systems
	entitykitSourceDir = sourceDir(file)
}

func sourceDir(file string) string {
	dir := filepath.Dir(file)
	dir = filepath.Dir(dir)

	s := filepath.Dir(dir)
	if filepath.Base(s) != "entitykit" {
		s = dir
	}
	return filepath.ToSlash(s) + "/"
}

// FileWithLineNum return the file name and line number of the current file
func FileWithLineNum() string {
	// the second caller usually from entitykit internal, so set i start from 2
	for i := 2; i < 15; i++ {
		_, file, line, ok := runtime.Caller(i)
		if ok && (!strings.HasPrefix(file, entitykitSourceDir) || strings.HasSuffix(file, "_test.go")) {
			return file + ":" + strconv.FormatInt(int64(line), 10)
		}
	}

	return ""
}

// CallerFrame returns the first frame outside of entitykit, used by handlers that
// resolve the source themselves (slog)
func CallerFrame() runtime.Frame {
	pcs := [13]uintptr{}
	n := runtime.Callers(3, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])
	for i := 0; i < n; i++ {
		frame, more := frames.Next()
		if !strings.HasPrefix(frame.File, entitykitSourceDir) || strings.HasSuffix(frame.File, "_test.go") {
			return frame
		}
		if !more {
			break
		}
	}
	return runtime.Frame{}
}

// SameValue reports whether a and b are the same value: equal scalars, or the
// same reference for maps, slices, pointers, funcs and channels.
func SameValue(a, b interface{}) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}

	switch va.Kind() {
	case reflect.Map, reflect.Pointer, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	}

	if va.Comparable() && vb.Comparable() {
		return va.Equal(vb)
	}
	return false
}

// Contains reports whether elem is in elems, compared with SameValue
func Contains(elems []interface{}, elem interface{}) bool {
	for _, e := range elems {
		if SameValue(e, elem) {
			return true
		}
	}
	return false
}
