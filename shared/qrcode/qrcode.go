// Package qrcode renders credential payloads as PNG QR codes.
package qrcode

//go:generate go run go.uber.org/mock/mockgen -source=./qrcode.go -destination=./mocks/qrcode_mock.go -package=mocks

import (
	"errors"
	"fmt"

	goQRCode "github.com/skip2/go-qrcode"
)

// ModuleSize is the width in pixels of one QR module. The encoder keeps a 4-module quiet zone.
const ModuleSize = 10

var errEmptyContent = errors.New("qr content is empty")

type Encoder interface {
	Encode(content []byte) ([]byte, error)
}

type encoderImpl struct {
	level goQRCode.RecoveryLevel
}

// New returns an encoder using the low recovery tier.
func New() Encoder {
	return &encoderImpl{level: goQRCode.Low}
}

func (e *encoderImpl) Encode(content []byte) ([]byte, error) {
	if len(content) == 0 {
		return nil, errEmptyContent
	}

	code, err := goQRCode.New(string(content), e.level)
	if err != nil {
		return nil, fmt.Errorf("failed to build qr code: %w", err)
	}

	// a negative size is read as pixels per module
	png, err := code.PNG(-ModuleSize)
	if err != nil {
		return nil, fmt.Errorf("failed to render qr code: %w", err)
	}

	return png, nil
}
