package utils

import (
	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// handleSize mantém os identificadores de download difíceis de adivinhar
const handleSize = 21

// GenerateID gera o identificador público de um arquivo armazenado
func GenerateID() (string, error) {
	return gonanoid.Generate(characters, handleSize)
}

// NewRunID identifica uma execução do otimizador nos logs e no relatório
func NewRunID() string {
	return uuid.NewString()
}
