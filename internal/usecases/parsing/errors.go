package parsing

import (
	"errors"
	"fmt"
)

// Erros específicos para o parse do razão de vendas
var (
	ErrMalformedRecord = errors.New("malformed record")
	ErrEmptyInput      = errors.New("empty input")
)

// Nomes dos campos posicionais de uma linha
const (
	FieldDate      = "date"
	FieldItemCode  = "itemCode"
	FieldUnitPrice = "unitPrice"
	FieldQuantity  = "quantity"
	FieldLineTotal = "lineTotal"
)

// fieldOrder segue a posição das colunas na linha
var fieldOrder = []string{FieldDate, FieldItemCode, FieldUnitPrice, FieldQuantity, FieldLineTotal}

// MalformedRecordError identifica a linha (1-based) e o campo inválido
type MalformedRecordError struct {
	Line   int
	Field  string
	Value  string
	Reason string
}

// Error implementa a interface error
func (e *MalformedRecordError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("line %d: field %s (%q): %s", e.Line, e.Field, e.Value, e.Reason)
	}
	return fmt.Sprintf("line %d: field %s: %s", e.Line, e.Field, e.Reason)
}

// Unwrap retorna o erro sentinela
func (e *MalformedRecordError) Unwrap() error {
	return ErrMalformedRecord
}

// EmptyInputError indica que não sobrou nenhuma linha utilizável após o cabeçalho
type EmptyInputError struct {
	Skipped int // linhas descartadas por erro
}

// Error implementa a interface error
func (e *EmptyInputError) Error() string {
	if e.Skipped > 0 {
		return fmt.Sprintf("no usable lines after header (%d malformed)", e.Skipped)
	}
	return "no usable lines after header"
}

// Unwrap retorna o erro sentinela
func (e *EmptyInputError) Unwrap() error {
	return ErrEmptyInput
}

func newMalformed(line int, field, value, reason string) *MalformedRecordError {
	return &MalformedRecordError{
		Line:   line,
		Field:  field,
		Value:  value,
		Reason: reason,
	}
}
