package qrcode

import (
	"errors"
	"strings"

	qr "github.com/skip2/go-qrcode"
)

const defaultSize = 256

var ErrEmptyURL = errors.New("qrcode: empty url")

// JoinPNG renders a PNG pointing players at the join URL for a session.
func JoinPNG(joinURL string, size int) ([]byte, error) {
	if strings.TrimSpace(joinURL) == "" {
		return nil, ErrEmptyURL
	}
	if size <= 0 {
		size = defaultSize
	}
	return qr.Encode(joinURL, qr.Medium, size)
}
