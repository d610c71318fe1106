package fsio

import (
	"io/fs"
	"os"
)

const DefaultDirPerm = 0o755

type Reader interface {
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	ReadDir(name string) ([]fs.DirEntry, error)
	DirFS(dir string) fs.FS
}

type Writer interface {
	MkdirAll(path string) error
	CreateTemp(dir, pattern string) (*os.File, error)
	Write(file *os.File, buf []byte) error
	Rename(oldpath, newpath string) error
	Remove(name string) error
}

type RealReader struct{}

func NewRealReader() *RealReader { return &RealReader{} }

func (r *RealReader) Stat(name string) (fs.FileInfo, error) { return os.Stat(name) }

func (r *RealReader) ReadFile(name string) ([]byte, error) { return os.ReadFile(name) }

func (r *RealReader) ReadDir(name string) ([]fs.DirEntry, error) { return os.ReadDir(name) }

func (r *RealReader) DirFS(dir string) fs.FS { return os.DirFS(dir) }

type RealWriter struct{}

func NewRealWriter() *RealWriter { return &RealWriter{} }

func (w *RealWriter) MkdirAll(path string) error { return os.MkdirAll(path, DefaultDirPerm) }

func (w *RealWriter) CreateTemp(dir, pattern string) (*os.File, error) {
	return os.CreateTemp(dir, pattern)
}

func (w *RealWriter) Write(file *os.File, buf []byte) error {
	_, err := file.Write(buf)
	return err
}

func (w *RealWriter) Rename(oldpath, newpath string) error { return os.Rename(oldpath, newpath) }

func (w *RealWriter) Remove(name string) error { return os.Remove(name) }
