// Package base64 builds and reads RFC 2397 data URIs.
package base64

import (
	stdBase64 "encoding/base64"
	"errors"
	"fmt"
	"strings"
)

const (
	dataPrefix   = "data:"
	base64Marker = ";base64,"
)

var errNotDataURI = errors.New("not a base64 data URI")

// DataURI embeds data inline, e.g. for an <img src> in the booking portal.
func DataURI(contentType string, data []byte) string {
	return dataPrefix + contentType + base64Marker + stdBase64.StdEncoding.EncodeToString(data)
}

// GetContentType returns the media type of a data URI, or "" when absent.
func GetContentType(uri string) string {
	end := strings.Index(uri, base64Marker)
	if !strings.HasPrefix(uri, dataPrefix) || end < len(dataPrefix) {
		return ""
	}

	return uri[len(dataPrefix):end]
}

// Decode returns the payload of a data URI along with its media type.
func Decode(uri string) ([]byte, string, error) {
	contentType := GetContentType(uri)
	if contentType == "" {
		return nil, "", errNotDataURI
	}

	data, err := stdBase64.StdEncoding.DecodeString(uri[strings.Index(uri, base64Marker)+len(base64Marker):])
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode data URI: %w", err)
	}

	return data, contentType, nil
}
