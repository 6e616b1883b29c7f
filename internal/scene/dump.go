package scene

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// FrameWriter writes frames as a stream of YAML documents
type FrameWriter struct {
	enc *yaml.Encoder
	n   int
}

// NewFrameWriter creates a writer on w
func NewFrameWriter(w io.Writer) *FrameWriter {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	return &FrameWriter{enc: enc}
}

// Write appends one frame document
func (fw *FrameWriter) Write(f Frame) error {
	if err := fw.enc.Encode(f); err != nil {
		return fmt.Errorf("encode frame %d: %w", fw.n, err)
	}
	fw.n++
	return nil
}

// Count returns the number of frames written
func (fw *FrameWriter) Count() int {
	return fw.n
}

// Close flushes the stream
func (fw *FrameWriter) Close() error {
	return fw.enc.Close()
}
