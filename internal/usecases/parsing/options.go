package parsing

// Options controla o comportamento do parser
type Options struct {
	Delimiter         rune
	StrictMode        bool  // falha na primeira linha inválida
	DecimalPlaces     int32 // usado na validação cruzada do total
	ValidateLineTotal bool  // exige lineTotal == unitPrice * quantity
}

// DefaultOptions retorna a configuração padrão: vírgula, modo tolerante, 2 casas
func DefaultOptions() Options {
	return Options{
		Delimiter:     ',',
		StrictMode:    false,
		DecimalPlaces: 2,
	}
}

func (o Options) delimiter() rune {
	if o.Delimiter == 0 {
		return ','
	}
	return o.Delimiter
}
