package base64

import (
	b64 "encoding/base64"
	"errors"
	"strings"
)

const marker = ";base64,"

func GetContentType(file string) string {
	start := len("data:")
	end := strings.Index(file, marker)

	if end == -1 || end < start {
		return ""
	}

	return file[start:end]
}

// Decode strips the data URL header and decodes the payload that follows it.
func Decode(file string) ([]byte, error) {
	idx := strings.Index(file, marker)
	if idx == -1 {
		return nil, errors.New("not a base64 data URL")
	}

	data, err := b64.StdEncoding.DecodeString(file[idx+len(marker):])
	if err != nil {
		return nil, errors.New("malformed base64 payload")
	}

	return data, nil
}
