package test

import (
	"fmt"
	"os"
	"path/filepath"

	. "github.com/onsi/gomega"
)

// Project is a minimal Unreal Engine project laid out on disk for tests.
type Project struct {
	Root string
	Name string
}

// NewProject creates <dir>/<name> with a .uproject file, the given number of
// C++ sources and headers under Source/, and assets under Content/.
func NewProject(dir, name string, cpp, headers, assets int) Project {
	root := filepath.Join(dir, name)

	WriteFile(filepath.Join(root, name+".uproject"), `{"FileVersion": 3, "EngineAssociation": "5.3"}`)
	for i := 0; i < cpp; i++ {
		WriteFile(filepath.Join(root, "Source", name, sourceName(i, ".cpp")), "#include \"CoreMinimal.h\"\n")
	}
	for i := 0; i < headers; i++ {
		WriteFile(filepath.Join(root, "Source", name, "Public", sourceName(i, ".h")), "#pragma once\n")
	}
	for i := 0; i < assets; i++ {
		WriteFile(filepath.Join(root, "Content", "Maps", sourceName(i, ".uasset")), "asset")
	}

	return Project{Root: root, Name: name}
}

// WriteFile creates path and its parents with content, failing the test on error.
func WriteFile(path, content string) {
	ExpectWithOffset(1, os.MkdirAll(filepath.Dir(path), 0o755)).To(Succeed())
	ExpectWithOffset(1, os.WriteFile(path, []byte(content), 0o644)).To(Succeed())
}

// ReadFile returns the content of path, failing the test on error.
func ReadFile(path string) string {
	data, err := os.ReadFile(path)
	ExpectWithOffset(1, err).NotTo(HaveOccurred())
	return string(data)
}

func sourceName(i int, ext string) string {
	return fmt.Sprintf("File%d%s", i, ext)
}
