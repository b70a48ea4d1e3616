package apiErrors

import (
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/ads-optimizer-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Códigos de erro devolvidos pela API
const (
	// Erros de autenticação
	ErrInvalidToken          = "AUTH_006" // Token inválido
	ErrExpiredToken          = "AUTH_007" // Token expirado
	ErrInsufficientPrivilege = "AUTH_008" // Privilégios insuficientes

	// Erros de validação
	ErrInvalidRequest = "VAL_001" // Parâmetro inválido
	ErrInputSchema    = "VAL_002" // Planilha fora do esquema esperado
	ErrInvalidFormat  = "VAL_003" // Formato de dados inválido
	ErrPayloadTooBig  = "VAL_004" // Upload acima do limite
	ErrMethodNotAllow = "VAL_005" // Método HTTP não aceito pela rota

	// Erros de recurso
	ErrResourceNotFound = "RES_001" // Recurso inexistente ou expirado

	// Erros do servidor
	ErrInternalServer = "SRV_001" // Erro interno do servidor
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrInvalidToken:          http.StatusUnauthorized,
	ErrExpiredToken:          http.StatusUnauthorized,
	ErrInsufficientPrivilege: http.StatusForbidden,
	ErrInvalidRequest:        http.StatusBadRequest,
	ErrInputSchema:           http.StatusBadRequest,
	ErrInvalidFormat:         http.StatusBadRequest,
	ErrPayloadTooBig:         http.StatusRequestEntityTooLarge,
	ErrMethodNotAllow:        http.StatusMethodNotAllowed,
	ErrResourceNotFound:      http.StatusNotFound,
	ErrInternalServer:        http.StatusInternalServerError,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`              // Código de erro para o cliente
	Message string `json:"message,omitempty"` // Mensagem descritiva (opcional)
	Details any    `json:"details,omitempty"` // Detalhes adicionais (opcional)
}

// StatusFor devolve o status HTTP do código; códigos desconhecidos viram 500
func StatusFor(code string) int {
	if status, exists := httpStatusMap[code]; exists {
		return status
	}
	return http.StatusInternalServerError
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(code))
	json.NewEncoder(w).Encode(apiErr)
}

// FromError traduz os erros do domínio para o erro de API correspondente.
// Erros sem tradução viram SRV_001 sem expor a mensagem interna.
func FromError(err error) APIError {
	var (
		validationErr *domain.ValidationError
		schemaErr     *domain.InputSchemaError
	)

	switch {
	case err == nil:
		return APIError{Code: ErrInternalServer, Message: "Erro desconhecido"}

	case errors.As(err, &validationErr):
		return APIError{
			Code:    ErrInvalidRequest,
			Message: validationErr.Error(),
			Details: map[string]any{"field": validationErr.Field, "reason": validationErr.Reason},
		}

	case errors.As(err, &schemaErr):
		return APIError{
			Code:    ErrInputSchema,
			Message: schemaErr.Error(),
			Details: map[string]any{"sheet": schemaErr.Sheet, "missing_columns": schemaErr.Columns},
		}

	case errors.Is(err, domain.ErrValidation):
		return APIError{Code: ErrInvalidRequest, Message: err.Error()}

	case errors.Is(err, domain.ErrInputSchema):
		return APIError{Code: ErrInputSchema, Message: err.Error()}

	case errors.Is(err, domain.ErrBlobNotFound):
		return APIError{Code: ErrResourceNotFound, Message: "Planilha não encontrada ou expirada"}
	}

	return APIError{Code: ErrInternalServer, Message: "Erro interno do servidor"}
}

// WriteFromError escreve a tradução de FromError
func WriteFromError(w http.ResponseWriter, err error) {
	apiErr := FromError(err)
	WriteError(w, apiErr.Code, apiErr.Message, apiErr.Details)
}
