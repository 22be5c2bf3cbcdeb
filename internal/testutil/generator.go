// Package testutil generates synthetic workspaces for benchmarks and
// load tests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var fieldTypes = []string{"i32", "u64", "String", "bool", "Vec<u8>", "Option<usize>"}

var paramNames = []string{"count", "label", "offset", "limit", "name"}

// GenerateManifest returns a symbol manifest with numItems structs, enums
// and free functions each. Struct i has a `new` constructor and a `get`
// method returning its first field.
func GenerateManifest(numItems int) string {
	var sb strings.Builder
	sb.WriteString("crate: bench\n")

	sb.WriteString("structs:\n")
	for i := range numItems {
		fmt.Fprintf(&sb, "  - name: Item%d\n", i)
		if i%4 == 0 {
			sb.WriteString("    generics: [{name: T}]\n")
		}
		sb.WriteString("    fields:\n")
		for f := range 3 {
			fmt.Fprintf(&sb, "      - {name: field%d, type: %q}\n", f, fieldTypes[(i+f)%len(fieldTypes)])
		}
		sb.WriteString("    methods:\n")
		sb.WriteString("      - {name: new, returns: Self}\n")
		fmt.Fprintf(&sb, "      - {name: get, self: \"&self\", returns: %q}\n", fieldTypes[i%len(fieldTypes)])
		if i%10 == 0 {
			fmt.Fprintf(&sb, "    docs: \"Item %d.\"\n", i)
		}
	}

	sb.WriteString("enums:\n")
	for i := range numItems {
		fmt.Fprintf(&sb, "  - name: Kind%d\n", i)
		sb.WriteString("    variants:\n")
		sb.WriteString("      - {name: Empty}\n")
		fmt.Fprintf(&sb, "      - {name: Value, kind: tuple, fields: [{type: %q}]}\n", fieldTypes[i%len(fieldTypes)])
	}

	sb.WriteString("functions:\n")
	for i := range numItems {
		fmt.Fprintf(&sb, "  - name: fn_%d\n", i)
		sb.WriteString("    params:\n")
		for p := range i%3 + 1 {
			fmt.Fprintf(&sb, "      - {name: %s, type: %q}\n", paramNames[(i+p)%len(paramNames)], fieldTypes[(i+p)%len(fieldTypes)])
		}
		if i%7 == 0 {
			sb.WriteString("    attrs: [deprecated]\n")
		}
	}

	return sb.String()
}

// GenerateSource returns a function body with numLets bindings followed by
// an empty line. The returned line index points at that empty line.
func GenerateSource(numLets int) (string, int) {
	var sb strings.Builder
	sb.WriteString("fn main() {\n")
	for i := range numLets {
		fmt.Fprintf(&sb, "    let v%d = Item%d::new();\n", i, i)
	}
	sb.WriteString("    \n}\n")
	return sb.String(), numLets + 1
}

// GenerateManifestTree writes numFiles manifests under dir, spread over
// nested directories, and returns their paths.
func GenerateManifestTree(dir string, numFiles, itemsPerFile int) ([]string, error) {
	paths := make([]string, 0, numFiles)
	for i := range numFiles {
		sub := filepath.Join(dir, fmt.Sprintf("crate%d", i%5))
		if err := os.MkdirAll(sub, 0755); err != nil {
			return nil, err
		}
		path := filepath.Join(sub, fmt.Sprintf("part%d.symbols.yaml", i))
		if err := os.WriteFile(path, []byte(GenerateManifest(itemsPerFile)), 0644); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
