package source

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/h2non/filetype"

	"github.com/ivlev/storyscroll/internal/vmath"
)

const (
	glbMagic     = 0x46546C67 // "glTF"
	glbChunkJSON = 0x4E4F534A // "JSON"
	glbHeaderLen = 12
)

// GLBType is the filetype registration for binary glTF
var GLBType = filetype.NewType("glb", "model/gltf-binary")

func init() {
	filetype.AddMatcher(GLBType, func(buf []byte) bool {
		return len(buf) >= 4 && binary.LittleEndian.Uint32(buf) == glbMagic
	})
}

// GLBLoader reads binary glTF (.glb) and JSON glTF (.gltf) files below Root.
// Only the header and the JSON chunk are parsed. Results are cached by path.
type GLBLoader struct {
	Root string

	mu    sync.Mutex
	cache map[string]*Model
}

// NewGLBLoader creates a loader resolving relative paths against root
func NewGLBLoader(root string) *GLBLoader {
	return &GLBLoader{Root: root, cache: make(map[string]*Model)}
}

func (l *GLBLoader) Load(path string) (*Model, error) {
	l.mu.Lock()
	if m, ok := l.cache[path]; ok {
		l.mu.Unlock()
		return m, nil
	}
	l.mu.Unlock()

	m, err := l.load(path)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	if l.cache == nil {
		l.cache = make(map[string]*Model)
	}
	l.cache[path] = m
	l.mu.Unlock()
	return m, nil
}

func (l *GLBLoader) load(path string) (*Model, error) {
	full := strings.TrimPrefix(path, "/")
	if l.Root != "" {
		full = filepath.Join(l.Root, full)
	}

	data, err := os.ReadFile(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, err
	}

	kind, _ := filetype.Match(data)
	var m *Model
	switch {
	case kind == GLBType:
		m, err = ParseGLB(data)
	case strings.EqualFold(filepath.Ext(full), ".gltf"):
		m, err = ParseGLTF(data)
	case kind != filetype.Unknown:
		return nil, fmt.Errorf("%w: %s is %s", ErrUnsupported, path, kind.MIME.Value)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, path)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	m.Path = path
	m.Size = int64(len(data))
	return m, nil
}

// ParseGLB reads a binary glTF container
func ParseGLB(data []byte) (*Model, error) {
	if len(data) < glbHeaderLen+8 {
		return nil, fmt.Errorf("%w: %d bytes", ErrMalformed, len(data))
	}
	r := bytes.NewReader(data)

	var header struct {
		Magic   uint32
		Version uint32
		Length  uint32
	}
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if header.Magic != glbMagic {
		return nil, fmt.Errorf("%w: bad magic %#x", ErrMalformed, header.Magic)
	}
	if header.Version != 2 {
		return nil, fmt.Errorf("%w: container version %d", ErrUnsupported, header.Version)
	}
	if int(header.Length) > len(data) {
		return nil, fmt.Errorf("%w: header claims %d bytes, have %d", ErrMalformed, header.Length, len(data))
	}

	var chunk struct {
		Length uint32
		Type   uint32
	}
	if err := binary.Read(r, binary.LittleEndian, &chunk); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if chunk.Type != glbChunkJSON {
		return nil, fmt.Errorf("%w: first chunk is %#x, want JSON", ErrMalformed, chunk.Type)
	}
	js := make([]byte, chunk.Length)
	if _, err := io.ReadFull(r, js); err != nil {
		return nil, fmt.Errorf("%w: JSON chunk: %v", ErrMalformed, err)
	}

	m, err := ParseGLTF(js)
	if err != nil {
		return nil, err
	}
	m.Format = "glb"
	return m, nil
}

type gltfDocument struct {
	Asset struct {
		Generator string `json:"generator"`
		Version   string `json:"version"`
	} `json:"asset"`
	Scenes     []json.RawMessage `json:"scenes"`
	Nodes      []json.RawMessage `json:"nodes"`
	Meshes     []gltfMesh        `json:"meshes"`
	Materials  []json.RawMessage `json:"materials"`
	Textures   []json.RawMessage `json:"textures"`
	Animations []json.RawMessage `json:"animations"`
	Accessors  []gltfAccessor    `json:"accessors"`
}

type gltfMesh struct {
	Primitives []struct {
		Attributes map[string]int `json:"attributes"`
	} `json:"primitives"`
}

type gltfAccessor struct {
	Min []float64 `json:"min"`
	Max []float64 `json:"max"`
}

// ParseGLTF reads a glTF JSON document. Bounds are the union of the min/max
// of every mesh POSITION accessor.
func ParseGLTF(data []byte) (*Model, error) {
	var doc gltfDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if doc.Asset.Version == "" {
		return nil, fmt.Errorf("%w: missing asset.version", ErrMalformed)
	}

	inf := math.Inf(1)
	bounds := Box{Min: vmath.V3(inf, inf, inf), Max: vmath.V3(-inf, -inf, -inf)}
	for _, mesh := range doc.Meshes {
		for _, prim := range mesh.Primitives {
			idx, ok := prim.Attributes["POSITION"]
			if !ok || idx < 0 || idx >= len(doc.Accessors) {
				continue
			}
			acc := doc.Accessors[idx]
			if len(acc.Min) < 3 || len(acc.Max) < 3 {
				continue
			}
			bounds.Min = vmath.V3(math.Min(bounds.Min.X, acc.Min[0]), math.Min(bounds.Min.Y, acc.Min[1]), math.Min(bounds.Min.Z, acc.Min[2]))
			bounds.Max = vmath.V3(math.Max(bounds.Max.X, acc.Max[0]), math.Max(bounds.Max.Y, acc.Max[1]), math.Max(bounds.Max.Z, acc.Max[2]))
		}
	}
	if bounds.Empty() {
		bounds = Box{Min: vmath.V3(-0.5, -0.5, -0.5), Max: vmath.V3(0.5, 0.5, 0.5)}
	}

	return &Model{
		Format:     "gltf",
		Generator:  doc.Asset.Generator,
		Version:    doc.Asset.Version,
		Scenes:     len(doc.Scenes),
		Nodes:      len(doc.Nodes),
		Meshes:     len(doc.Meshes),
		Materials:  len(doc.Materials),
		Textures:   len(doc.Textures),
		Animations: len(doc.Animations),
		Bounds:     bounds,
	}, nil
}
