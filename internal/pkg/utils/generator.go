package utils

import (
	"github.com/google/uuid"
)

func GenerateRequestID() string {
	return uuid.NewString()
}

func GenerateBatchID() string {
	return uuid.NewString()
}
