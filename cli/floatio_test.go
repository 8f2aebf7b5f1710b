package cli

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/ChristianF88/fradix/config"
	"github.com/ChristianF88/fradix/testutil"
)

func TestReadFloats_Text(t *testing.T) {
	input := "# header\n3.5\n\n  -1 \n0\n-0\n2.25\n-3.5e0\n"
	data, err := ReadFloats(strings.NewReader(input), config.FormatText)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []float32{3.5, -1, 0, float32(math.Copysign(0, -1)), 2.25, -3.5}
	if len(data) != len(expected) {
		t.Fatalf("expected %d values, got %d", len(expected), len(data))
	}
	for i := range expected {
		if math.Float32bits(data[i]) != math.Float32bits(expected[i]) {
			t.Errorf("index %d: expected %v, got %v", i, expected[i], data[i])
		}
	}
}

func TestReadFloats_TextInvalidLine(t *testing.T) {
	_, err := ReadFloats(strings.NewReader("1\n2\nthree\n"), config.FormatText)
	if err == nil {
		t.Fatal("expected error for invalid line")
	}
	if !strings.Contains(err.Error(), "line 3") {
		t.Errorf("error should name the line, got %v", err)
	}
}

func TestReadFloats_BinaryBadLength(t *testing.T) {
	if _, err := ReadFloats(bytes.NewReader([]byte{1, 2, 3}), config.FormatBinary); err == nil {
		t.Fatal("expected error for truncated binary input")
	}
}

func TestReadFloats_UnknownFormat(t *testing.T) {
	if _, err := ReadFloats(strings.NewReader(""), "csv"); err == nil {
		t.Fatal("expected error for unknown format")
	}
	if err := WriteFloats(&bytes.Buffer{}, nil, "csv"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestWriteReadFloats_RoundTrip(t *testing.T) {
	data := testutil.RandomFloats(42, 1000)
	data = append(data, float32(math.Inf(1)), float32(math.Copysign(0, -1)), math.SmallestNonzeroFloat32)

	for _, format := range []string{config.FormatText, config.FormatBinary} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteFloats(&buf, data, format); err != nil {
				t.Fatalf("WriteFloats: %v", err)
			}
			got, err := ReadFloats(&buf, format)
			if err != nil {
				t.Fatalf("ReadFloats: %v", err)
			}
			if len(got) != len(data) {
				t.Fatalf("expected %d values, got %d", len(data), len(got))
			}
			for i := range data {
				if math.Float32bits(got[i]) != math.Float32bits(data[i]) {
					t.Fatalf("index %d: expected %v, got %v", i, data[i], got[i])
				}
			}
		})
	}
}
