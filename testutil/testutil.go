package testutil

import (
	"encoding/binary"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"testing"
)

// RandomFloats returns n floats uniform in [-500000, 500000) from seed.
func RandomFloats(seed int64, n int) []float32 {
	rng := rand.New(rand.NewSource(seed))
	data := make([]float32, n)
	for i := range data {
		data[i] = rng.Float32()*1_000_000 - 500_000
	}
	return data
}

// GenerateTextFloatFile writes data to a temporary file, one value per line,
// with a comment header and a blank line mixed in.
// Returns the file path and a cleanup function.
func GenerateTextFloatFile(t *testing.T, data []float32) (string, func()) {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "test_floats_*.txt")
	if err != nil {
		t.Fatalf("Failed to create temp float file: %v", err)
	}

	var content strings.Builder
	content.WriteString("# generated test input\n")
	for i, v := range data {
		content.WriteString(strconv.FormatFloat(float64(v), 'g', -1, 32))
		content.WriteString("\n")
		if i == len(data)/2 {
			content.WriteString("\n")
		}
	}

	if _, err := tmpFile.WriteString(content.String()); err != nil {
		t.Fatalf("Failed to write to temp float file: %v", err)
	}
	tmpFile.Close()

	cleanup := func() {
		os.Remove(tmpFile.Name())
	}
	return tmpFile.Name(), cleanup
}

// GenerateBinaryFloatFile writes data as little-endian float32 values.
// Returns the file path and a cleanup function.
func GenerateBinaryFloatFile(t *testing.T, data []float32) (string, func()) {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "test_floats_*.bin")
	if err != nil {
		t.Fatalf("Failed to create temp float file: %v", err)
	}
	if err := binary.Write(tmpFile, binary.LittleEndian, data); err != nil {
		t.Fatalf("Failed to write to temp float file: %v", err)
	}
	tmpFile.Close()

	cleanup := func() {
		os.Remove(tmpFile.Name())
	}
	return tmpFile.Name(), cleanup
}
