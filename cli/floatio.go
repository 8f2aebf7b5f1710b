package cli

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ChristianF88/fradix/config"
)

// ReadFloats decodes a float32 stream. Text input holds one value per line;
// blank lines and lines starting with '#' are skipped. Binary input is a
// little-endian float32 sequence.
func ReadFloats(r io.Reader, format string) ([]float32, error) {
	switch format {
	case config.FormatText:
		return readText(r)
	case config.FormatBinary:
		return readBinary(r)
	}
	return nil, fmt.Errorf("unknown format %q", format)
}

func readText(r io.Reader) ([]float32, error) {
	var data []float32
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		v, err := strconv.ParseFloat(line, 32)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid float %q: %w", lineNo, line, err)
		}
		data = append(data, float32(v))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return data, nil
}

func readBinary(r io.Reader) ([]float32, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	if len(raw)%4 != 0 {
		return nil, fmt.Errorf("binary input length %d is not a multiple of 4", len(raw))
	}
	data := make([]float32, len(raw)/4)
	if err := binary.Read(bytes.NewReader(raw), binary.LittleEndian, data); err != nil {
		return nil, fmt.Errorf("decoding binary input: %w", err)
	}
	return data, nil
}

// WriteFloats encodes data in the given format.
func WriteFloats(w io.Writer, data []float32, format string) error {
	switch format {
	case config.FormatText:
		bw := bufio.NewWriter(w)
		var buf []byte
		for _, v := range data {
			buf = strconv.AppendFloat(buf[:0], float64(v), 'g', -1, 32)
			buf = append(buf, '\n')
			if _, err := bw.Write(buf); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
		}
		return bw.Flush()
	case config.FormatBinary:
		if err := binary.Write(w, binary.LittleEndian, data); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		return nil
	}
	return fmt.Errorf("unknown format %q", format)
}
