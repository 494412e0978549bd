//go:build e2e && unix

package main

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
)

// CreateTestWorkspace creates a temporary directory for test files
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	tmpDir := tf.t.TempDir()
	tf.workspace = tmpDir
	return tmpDir, nil
}

// CreateImage writes a small PNG into the workspace
func (tf *TUITestFramework) CreateImage(name string) (string, error) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 32), G: uint8(y * 32), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return tf.CreateFile(name, buf.Bytes())
}

// CreateFile writes data to name inside the workspace
func (tf *TUITestFramework) CreateFile(name string, data []byte) (string, error) {
	if tf.workspace == "" {
		return "", fmt.Errorf("workspace not created")
	}
	path := filepath.Join(tf.workspace, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}
	return path, os.WriteFile(path, data, 0644)
}

// CreateLargeImage writes a PNG header padded to size bytes
func (tf *TUITestFramework) CreateLargeImage(name string, size int) (string, error) {
	data := make([]byte, size)
	copy(data, "\x89PNG\r\n\x1a\n")
	return tf.CreateFile(name, data)
}
