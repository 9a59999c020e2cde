package helpers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

func GenerateOrderSignature(transactionID, recipient, secretKey string) string {
	data := fmt.Sprintf("%s:%s", transactionID, recipient)
	h := hmac.New(sha256.New, []byte(secretKey))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}

func ValidateOrderSignature(transactionID, recipient, secretKey, signature string) bool {
	expected := GenerateOrderSignature(transactionID, recipient, secretKey)
	return hmac.Equal([]byte(expected), []byte(signature))
}
