package utils

import "crypto/rand"

// Алфавит кодов сессий. Только заглавные буквы, чтобы код было
// удобно диктовать вслух и вводить на любой раскладке.
const sessionIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// SessionIDLength - длина кода сессии. Пяти символов достаточно,
// чтобы коллизии были пренебрежимо редки при разумном числе сессий.
const SessionIDLength = 5

// GenerateSessionID создает случайный код сессии фиксированной длины.
// Уникальность здесь НЕ гарантируется - за это отвечает реестр сессий.
func GenerateSessionID() string {
	b := make([]byte, SessionIDLength)
	if _, err := rand.Read(b); err != nil {
		panic("failed to generate session id: " + err.Error())
	}
	for i := range b {
		b[i] = sessionIDAlphabet[int(b[i])%len(sessionIDAlphabet)]
	}
	return string(b)
}
