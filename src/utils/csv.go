package utils

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// bomArtifact is how a UTF-8 byte-order marker looks once the file has
// been decoded as ISO-8859-1. Some exports carry it glued to the first
// header name.
const bomArtifact = "ï»¿"

// ReadDelimitedFile reads a semicolon-separated, ISO-8859-1 encoded export
// and returns all of its records. The first header name is cleaned of the
// byte-order-marker artifact before being returned.
func ReadDelimitedFile(filePath string) ([][]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open the file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(transform.NewReader(file, charmap.ISO8859_1.NewDecoder()))
	reader.Comma = ';'
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read the file: %w", err)
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = StripBOMArtifact(rows[0][0])
	}
	return rows, nil
}

// StripBOMArtifact removes the byte-order-marker residue from a header
// name, whether it survived as the raw rune or as its latin-1 mis-decoding.
func StripBOMArtifact(header string) string {
	header = strings.TrimPrefix(header, "\uFEFF")
	header = strings.TrimPrefix(header, bomArtifact)
	return strings.TrimSpace(header)
}
