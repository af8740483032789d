package utils

import (
	"encoding/base64"

	qrcode "github.com/skip2/go-qrcode"
)

// MakeQRDataURI encodes text into a QR PNG and returns it as a base64 data
// URI, ready to embed in a response or an <img> tag.
func MakeQRDataURI(text string) (string, error) {
	png, err := qrcode.Encode(text, qrcode.Medium, 256)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
