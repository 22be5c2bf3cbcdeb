package symbols

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juev/completion-lsp/internal/hir"
)

const geometryManifest = `
crate: geometry
modules:
  - name: shapes
    docs: Shape primitives.
    functions:
      - name: unit_square
        returns: Rect
    structs:
      - name: Rect
        fields:
          - {name: w, type: f64}
          - {name: h, type: f64}
functions:
  - name: distance
    visibility: pub
    params:
      - {name: a, type: "&Point"}
      - {name: b, type: "&Point"}
    returns: f64
    docs: Euclidean distance.
  - name: legacy_area
    attrs: ["deprecated"]
structs:
  - name: Point
    generics: [{name: T, default: f64}]
    fields:
      - {name: x, type: T, docs: " Horizontal. "}
      - {name: y, type: T}
    methods:
      - name: new
        params: [{name: x, type: T}, {name: y, type: T}]
        returns: Self
      - name: norm
        self: "&self"
        returns: T
  - name: Pair
    kind: tuple
    fields: [{type: i32}, {type: String}]
  - name: Origin
enums:
  - name: Shape
    variants:
      - name: Circle
        kind: record
        fields: [{name: r, type: f64}]
      - name: Poly
        kind: tuple
        fields: [{type: "Vec<Point>"}]
      - name: Empty
unions:
  - name: Bits
    fields: [{name: raw, type: u32}]
macros:
  - name: point
    exported: true
    docs: "Use point![x, y]"
  - name: derive_shape
    proc: true
consts:
  - {name: ORIGIN_X, visibility: pub, type: f64, value: "0.0"}
statics:
  - {name: COUNTER, mutable: true, type: usize}
type_aliases:
  - name: Result
    generics: [{name: T}]
    target: "std::result::Result<T, Error>"
traits:
  - name: Area
    docs: Has an area.
`

func loadGeometry(t *testing.T) *Scope {
	t.Helper()
	scope, err := NewLoader(DefaultLimits()).LoadFromContent("geometry.symbols.yaml", []byte(geometryManifest))
	require.NoError(t, err)
	return scope
}

func TestLoader_ConvertsItems(t *testing.T) {
	scope := loadGeometry(t)

	assert.Equal(t, "geometry", scope.Name)
	require.Len(t, scope.Modules, 1)
	assert.Equal(t, "shapes", scope.Modules[0].Name)
	assert.Equal(t, "Shape primitives.", scope.Modules[0].Docs)
	assert.Len(t, scope.Modules[0].Adts, 1)

	require.Len(t, scope.Functions, 2)
	assert.Equal(t, "pub fn distance(a: &Point, b: &Point) -> f64", scope.Functions[0].Signature())
	assert.True(t, scope.Functions[1].Attrs.IsDeprecated())

	names := make([]string, 0, len(scope.Adts))
	for _, adt := range scope.Adts {
		names = append(names, adt.Name)
	}
	assert.Equal(t, []string{"Point", "Pair", "Origin", "Shape", "Bits"}, names)
}

func TestLoader_Adts(t *testing.T) {
	scope := loadGeometry(t)

	point, ok := scope.Adt("Point")
	require.True(t, ok)
	assert.Equal(t, hir.AdtStruct, point.Kind)
	assert.Equal(t, hir.StructRecord, point.StructKind)
	assert.Equal(t, []hir.GenericParam{{Name: "T", Default: "f64"}}, point.Generics)
	assert.False(t, point.HasNonDefaultTypeParams())
	require.Len(t, point.Methods, 2)
	assert.False(t, point.Methods[0].HasSelfParam())
	assert.Equal(t, "fn norm(&self) -> T", point.Methods[1].Signature())

	pair, ok := scope.Adt("Pair")
	require.True(t, ok)
	assert.Equal(t, hir.StructTuple, pair.StructKind)
	assert.Equal(t, "0", pair.Fields[0].Name)
	assert.Equal(t, "1", pair.Fields[1].Name)

	origin, ok := scope.Adt("Origin")
	require.True(t, ok)
	assert.Equal(t, hir.StructUnit, origin.StructKind)

	shape, ok := scope.Adt("Shape")
	require.True(t, ok)
	assert.Equal(t, hir.AdtEnum, shape.Kind)
	require.Len(t, shape.Variants, 3)
	assert.Equal(t, hir.StructRecord, shape.Variants[0].Kind)
	assert.Equal(t, "Shape", shape.Variants[0].Parent)
	assert.Equal(t, hir.StructTuple, shape.Variants[1].Kind)
	assert.Equal(t, "Vec<Point>", shape.Variants[1].Fields[0].Type.Text)
	assert.Equal(t, hir.StructUnit, shape.Variants[2].Kind)

	bits, ok := scope.Adt("Bits")
	require.True(t, ok)
	assert.Equal(t, hir.AdtUnion, bits.Kind)
}

func TestLoader_OtherItems(t *testing.T) {
	scope := loadGeometry(t)

	require.Len(t, scope.Macros, 2)
	assert.Equal(t, "#[macro_export]\nmacro_rules! point", scope.Macros[0].Label())
	assert.False(t, scope.Macros[1].HasSource())

	require.Len(t, scope.Consts, 1)
	assert.Equal(t, "pub const ORIGIN_X: f64 = 0.0", scope.Consts[0].Label())

	require.Len(t, scope.Statics, 1)
	assert.True(t, scope.Statics[0].Mutable)

	require.Len(t, scope.Aliases, 1)
	assert.Equal(t, "type Result<T> = std::result::Result<T, Error>", scope.Aliases[0].Label())

	require.Len(t, scope.Traits, 1)
	assert.Equal(t, "Has an area.", scope.Traits[0].Docs)
}

func TestLoader_Errors(t *testing.T) {
	loader := NewLoader(DefaultLimits())

	tests := []struct {
		name    string
		content string
		kind    ErrorKind
	}{
		{"malformed yaml", "functions: [", ErrorParseError},
		{"wrong shape", "functions: 3", ErrorParseError},
		{"unknown struct kind", "structs:\n  - name: S\n    kind: blob\n", ErrorInvalidManifest},
		{"unknown variant kind", "enums:\n  - name: E\n    variants:\n      - {name: V, kind: tuplee}\n", ErrorInvalidManifest},
		{"bad kind in module", "modules:\n  - name: m\n    structs:\n      - {name: S, kind: x}\n", ErrorInvalidManifest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loader.LoadFromContent("bad.symbols.yaml", []byte(tt.content))
			require.Error(t, err)

			var loadErr LoadError
			require.True(t, errors.As(err, &loadErr))
			assert.Equal(t, tt.kind, loadErr.Kind)
			assert.Equal(t, "bad.symbols.yaml", loadErr.Path)
		})
	}
}

func TestLoader_InvalidManifestNamesTheItem(t *testing.T) {
	_, err := NewLoader(DefaultLimits()).LoadFromContent("m.yaml",
		[]byte("modules:\n  - name: inner\n    structs:\n      - {name: S, kind: x}\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "module inner")
	assert.Contains(t, err.Error(), `S: unknown kind "x"`)
}

func TestLoader_EmptyManifest(t *testing.T) {
	scope, err := NewLoader(DefaultLimits()).LoadFromContent("empty.symbols.yaml", nil)
	require.NoError(t, err)
	assert.Empty(t, scope.Candidates())
}

func TestLoader_FileNotFound(t *testing.T) {
	_, err := NewLoader(DefaultLimits()).Load(filepath.Join(t.TempDir(), "missing.symbols.yaml"))

	var loadErr LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, ErrorFileNotFound, loadErr.Kind)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoader_FileTooLarge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "big.symbols.yaml")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("#", 64)), 0644))

	loader := NewLoader(Limits{MaxFileSizeBytes: 32})
	_, err := loader.Load(path)

	var loadErr LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, ErrorFileTooLarge, loadErr.Kind)
	assert.Contains(t, loadErr.Message, "limit is 32")

	_, err = loader.LoadFromContent(path, []byte(strings.Repeat("#", 33)))
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, ErrorFileTooLarge, loadErr.Kind)
}

func TestLoader_ZeroLimitsUseDefault(t *testing.T) {
	assert.Equal(t, DefaultLimits(), NewLoader(Limits{}).limits)
}

func TestErrorKind_String(t *testing.T) {
	assert.Equal(t, "parse error", ErrorParseError.String())
	assert.Equal(t, "ErrorKind(42)", ErrorKind(42).String())
}
