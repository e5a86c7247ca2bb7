package apiErrors

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

// Códigos de erro da API do razão
const (
	// Erros de validação (2000-2999)
	ErrInvalidRequest   = "VAL_001" // Requisição inválida
	ErrInvalidFormat    = "VAL_003" // Formato de dados inválido
	ErrMethodNotAllowed = "VAL_004" // Método HTTP não suportado pela rota

	// Erros de recurso (4000-4999)
	ErrNotFound          = "NOT_001" // Recurso não encontrado
	ErrSnapshotNotLoaded = "LED_001" // Nenhum razão carregado ainda
	ErrReloadInProgress  = "LED_002" // Recarga já em andamento

	// Erros do servidor (5000-5999)
	ErrInternalServer  = "SRV_001" // Erro interno do servidor
	ErrExternalService = "SRV_003" // Erro na fonte do razão
	ErrUnprocessable   = "SRV_005" // Razão não pôde ser processado
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrInvalidRequest:    http.StatusBadRequest,
	ErrInvalidFormat:     http.StatusBadRequest,
	ErrMethodNotAllowed:  http.StatusMethodNotAllowed,
	ErrNotFound:          http.StatusNotFound,
	ErrSnapshotNotLoaded: http.StatusServiceUnavailable,
	ErrReloadInProgress:  http.StatusConflict,
	ErrInternalServer:    http.StatusInternalServerError,
	ErrExternalService:   http.StatusBadGateway,
	ErrUnprocessable:     http.StatusUnprocessableEntity,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`              // Código de erro para o cliente
	Message string `json:"message,omitempty"` // Mensagem descritiva (opcional)
	Details any    `json:"details,omitempty"` // Detalhes adicionais (opcional)
}

// StatusFor retorna o status HTTP de um código (500 quando desconhecido)
func StatusFor(code string) int {
	status, exists := httpStatusMap[code]
	if !exists {
		return http.StatusInternalServerError
	}
	return status
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
	_ = jsoniter.NewEncoder(w).Encode(apiErr)
}

// FromError cria um erro de API a partir de um erro Go
func FromError(err error, code string) APIError {
	if err == nil {
		return APIError{
			Code:    ErrInternalServer,
			Message: "Erro desconhecido",
		}
	}

	return APIError{
		Code:    code,
		Message: err.Error(),
	}
}
