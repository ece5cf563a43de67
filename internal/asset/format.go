package asset

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format names one of the three interchangeable textual representations.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatRPSL Format = "rpsl"
	FormatXML  Format = "xml"
)

// DetectFormat maps a file name to its representation by extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".rpsl", ".txt":
		return FormatRPSL, nil
	case ".xml":
		return FormatXML, nil
	}
	return "", fmt.Errorf("cannot detect as-set format of %q: unknown extension", path)
}

// ParseFormat validates a user-supplied format name.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(name)) {
	case FormatYAML:
		return FormatYAML, nil
	case FormatRPSL:
		return FormatRPSL, nil
	case FormatXML:
		return FormatXML, nil
	}
	return "", fmt.Errorf("unknown as-set format %q (want yaml, rpsl or xml)", name)
}

// Decode parses data in the given representation.
func Decode(data []byte, format Format) (*ASSet, error) {
	switch format {
	case FormatYAML:
		return DecodeYAML(data)
	case FormatRPSL:
		return DecodeRPSL(data)
	case FormatXML:
		return DecodeXML(data)
	}
	return nil, fmt.Errorf("unknown as-set format %q", format)
}

// Encode renders set in the given representation.
func Encode(set *ASSet, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return EncodeYAML(set)
	case FormatRPSL:
		return EncodeRPSL(set), nil
	case FormatXML:
		return EncodeXML(set)
	}
	return nil, fmt.Errorf("unknown as-set format %q", format)
}
