package insighting

import (
	"errors"
	"fmt"
)

// ErrEmptyMonth indica um mês sem registros no momento de calcular as estatísticas
var ErrEmptyMonth = errors.New("empty month")

// EmptyMonthError é fatal para a agregação: nenhuma estatística parcial é retornada
type EmptyMonthError struct {
	Month string
	Item  string // preenchido quando o item selecionado não possui pedidos
}

// Error implementa a interface error
func (e *EmptyMonthError) Error() string {
	if e.Item != "" {
		return fmt.Sprintf("month %s: item %s has no orders", e.Month, e.Item)
	}
	return fmt.Sprintf("month %s has no records", e.Month)
}

// Unwrap retorna o erro sentinela
func (e *EmptyMonthError) Unwrap() error {
	return ErrEmptyMonth
}

// ErrQuantityOverflow indica que a soma das quantidades de um item excedeu int64
var ErrQuantityOverflow = errors.New("quantity overflow")

// QuantityOverflowError identifica o mês e o item cuja soma não cabe em int64
type QuantityOverflowError struct {
	Month string
	Item  string
	Line  int
}

// Error implementa a interface error
func (e *QuantityOverflowError) Error() string {
	return fmt.Sprintf("month %s: item %s quantity sum overflows int64 at line %d", e.Month, e.Item, e.Line)
}

// Unwrap retorna o erro sentinela
func (e *QuantityOverflowError) Unwrap() error {
	return ErrQuantityOverflow
}
