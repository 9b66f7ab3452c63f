// Package qr renders an issued token as a scannable PNG artifact.
// The core neither constructs nor validates the embedded URL beyond
// parameterizing it with the token.
package qr

import (
	"fmt"
	"net/url"

	qrcode "github.com/skip2/go-qrcode"
)

// PNG encodes the passenger URL for token as a size×size PNG.
// The URL format is what the passenger-facing frontend expects:
// {base}/passenger?sid={token}.
func PNG(baseURL, token string, size int) ([]byte, error) {
	target := fmt.Sprintf("%s/passenger?sid=%s", baseURL, url.QueryEscape(token))

	png, err := qrcode.Encode(target, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("qr.PNG: %w", err)
	}
	return png, nil
}
