package service

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

type QRGenerator interface {
	Generate(foodID int) ([]byte, error)
}

// DefaultQRGenerator encodes a share link to the menu page as a PNG.
type DefaultQRGenerator struct {
	BaseURL string
}

func (g DefaultQRGenerator) ShareURL(foodID int) string {
	return fmt.Sprintf("%s/menu/%d", g.BaseURL, foodID)
}

func (g DefaultQRGenerator) Generate(foodID int) ([]byte, error) {
	return qrcode.Encode(g.ShareURL(foodID), qrcode.Medium, 256)
}
