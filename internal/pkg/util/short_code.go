package util

import (
	"crypto/rand"
	"math/big"
)

const shortCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateShortCode 生成指定长度的随机短链接码
func GenerateShortCode(length int) (string, error) {
	b := make([]byte, length)
	max := big.NewInt(int64(len(shortCodeAlphabet)))
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = shortCodeAlphabet[n.Int64()]
	}
	return string(b), nil
}
