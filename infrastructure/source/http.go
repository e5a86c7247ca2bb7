package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

// maxBodyBytes limita o tamanho do razão baixado
const maxBodyBytes = 64 << 20

// HTTPSource baixa o razão de uma URL
type HTTPSource struct {
	url        string
	httpClient *http.Client
}

func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (h *HTTPSource) Name() string {
	return h.url
}

func (h *HTTPSource) Fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.url, nil)
	if err != nil {
		return "", errors.Wrap(err, "erro ao criar a requisição")
	}
	req.Header.Set("Accept", "text/plain, text/csv, */*")

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "erro ao executar a requisição")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("requisição falhou com status: %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return "", errors.Wrap(err, "erro ao ler a resposta")
	}
	if len(data) > maxBodyBytes {
		return "", fmt.Errorf("razão de vendas excede %d bytes", maxBodyBytes)
	}

	return string(data), nil
}
