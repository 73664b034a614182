package architecture_test

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const modulesPrefix = "jadwal/internal/modules/"

// walkImports calls visit for every import of every non-test Go file under
// root.
func walkImports(t *testing.T, root string, visit func(file, importPath string)) {
	t.Helper()
	fset := token.NewFileSet()
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		node, parseErr := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if parseErr != nil {
			return parseErr
		}
		for _, imp := range node.Imports {
			visit(filepath.ToSlash(path), strings.Trim(imp.Path.Value, `"`))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk %s: %v", root, err)
	}
}

func TestHexagonalLayerImports(t *testing.T) {
	t.Parallel()
	walkImports(t, filepath.Join("..", "modules"), func(file, importPath string) {
		module, layer := moduleName(file), detectLayer(file)
		if module == "" || layer == "" || !strings.HasPrefix(importPath, modulesPrefix) {
			return
		}
		if violatesLayerRule(module, layer, importPath) {
			t.Errorf("forbidden import in %s (%s): %s", file, layer, importPath)
		}
	})
}

// Domain packages hold the resolver and the planning rules; they stay free of
// third-party code and I/O-bound layers.
func TestDomainImportsStayPure(t *testing.T) {
	t.Parallel()
	walkImports(t, filepath.Join("..", "modules"), func(file, importPath string) {
		if detectLayer(file) != "domain" {
			return
		}
		switch {
		case isStdlib(importPath):
		case strings.HasPrefix(importPath, "jadwal/internal/platform/"):
		case strings.HasPrefix(importPath, modulesPrefix) && strings.HasSuffix(importPath, "/domain"):
		default:
			t.Errorf("domain file %s imports %s", file, importPath)
		}
	})
}

// The TUI talks to modules through their CLI handlers only, so it may see
// module dto types but nothing deeper.
func TestUIImportsOnlyModuleDTOs(t *testing.T) {
	t.Parallel()
	walkImports(t, filepath.Join("..", "ui"), func(file, importPath string) {
		if strings.HasPrefix(importPath, modulesPrefix) && !isDTO(importPath) {
			t.Errorf("ui file %s imports %s; only module dto packages are allowed", file, importPath)
		}
	})
}

func TestLayerRules(t *testing.T) {
	t.Parallel()
	cases := []struct {
		module, layer, imp string
		forbidden          bool
	}{
		{"status", "service", modulesPrefix + "timetable/port/in", false},
		{"status", "service", modulesPrefix + "timetable/usecase", true},
		{"reminder", "domain", modulesPrefix + "timetable/domain", false},
		{"reminder", "usecase", modulesPrefix + "reminder/adapter/out", true},
		{"export", "adapter/in", modulesPrefix + "export/service", true},
		{"export", "adapter/in", modulesPrefix + "export/dto", false},
	}
	for _, tc := range cases {
		if got := violatesLayerRule(tc.module, tc.layer, tc.imp); got != tc.forbidden {
			t.Errorf("%s/%s -> %s: forbidden=%v, want %v", tc.module, tc.layer, tc.imp, got, tc.forbidden)
		}
	}
}

func isStdlib(importPath string) bool {
	first, _, _ := strings.Cut(importPath, "/")
	return !strings.Contains(first, ".") && first != "jadwal"
}

func moduleName(path string) string {
	_, rest, ok := strings.Cut(path, "modules/")
	if !ok {
		return ""
	}
	name, _, _ := strings.Cut(rest, "/")
	return name
}

func detectLayer(path string) string {
	for _, layer := range []string{"adapter/in", "adapter/out", "usecase", "service", "domain", "port/in", "port/out", "dto"} {
		if strings.Contains(path, "/"+layer+"/") {
			return layer
		}
	}
	return ""
}

func isPortIn(path string) bool {
	return strings.Contains(path, "/port/in/") || strings.HasSuffix(path, "/port/in")
}

func isDTO(path string) bool {
	return strings.Contains(path, "/dto/") || strings.HasSuffix(path, "/dto")
}

func crossesInto(importPath string, layers ...string) bool {
	for _, l := range layers {
		if strings.Contains(importPath, "/"+l+"/") || strings.HasSuffix(importPath, "/"+l) {
			return true
		}
	}
	return false
}

func violatesLayerRule(module, layer, importPath string) bool {
	if !strings.HasPrefix(importPath, modulesPrefix+module+"/") {
		if crossesInto(importPath, "service", "adapter", "usecase") {
			return true
		}
		if isPortIn(importPath) || isDTO(importPath) {
			return false
		}
	}

	switch layer {
	case "adapter/in":
		return !isPortIn(importPath) && !isDTO(importPath)
	case "usecase":
		return crossesInto(importPath, "adapter")
	case "service":
		return crossesInto(importPath, "adapter", "usecase")
	case "domain":
		return crossesInto(importPath, "adapter", "usecase", "service")
	default:
		return false
	}
}
