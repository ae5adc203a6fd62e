package utils

import "github.com/google/uuid"

func GenerateRequestID() string {
	return uuid.NewString()
}

func GenerateAnswerItemID() string {
	return uuid.NewString()
}

func GenerateMessageID() string {
	return uuid.NewString()
}
