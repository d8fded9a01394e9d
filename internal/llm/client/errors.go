package client

import (
	"context"
	"errors"
	"net"
	"strings"
)

var (
	ErrMissingCredential   = errors.New("API key do provedor de IA não configurada. Configure GEMINI_API_KEY no arquivo .env")
	ErrMalformedCredential = errors.New("formato da API key inválido")
	ErrMediaUnsupported    = errors.New("provider does not accept inline media")
	ErrInvalidMedia        = errors.New("inline media is not valid base64")

	ErrKeyProblem       = errors.New("API key inválida ou sem permissão de acesso")
	ErrQuotaProblem     = errors.New("Limite de uso da API excedido. Tente novamente mais tarde")
	ErrNetworkProblem   = errors.New("Erro de conexão. Verifique sua internet e tente novamente")
	ErrGenerationFailed = errors.New("Falha ao gerar conteúdo")
)

// GatewayError pairs one of the coarse categories above with the provider
// error that caused it. errors.Is matches both.
type GatewayError struct {
	Kind error
	Err  error
}

func (e *GatewayError) Error() string {
	if e.Kind == ErrGenerationFailed {
		return e.Kind.Error() + ": " + e.Err.Error()
	}
	return e.Kind.Error()
}

func (e *GatewayError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// Classify buckets a provider error into key, quota or network problems.
// Anything else becomes ErrGenerationFailed with the original message kept.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	var gwErr *GatewayError
	if errors.As(err, &gwErr) {
		return err
	}
	if errors.Is(err, ErrMissingCredential) || errors.Is(err, ErrMalformedCredential) {
		return err
	}

	msg := strings.ToLower(err.Error())
	var netErr net.Error
	switch {
	case strings.Contains(msg, "api key"), strings.Contains(msg, "api_key"),
		strings.Contains(msg, "unauthenticated"), strings.Contains(msg, "permission_denied"):
		return &GatewayError{Kind: ErrKeyProblem, Err: err}
	case strings.Contains(msg, "quota"), strings.Contains(msg, "limit"),
		strings.Contains(msg, "resource_exhausted"):
		return &GatewayError{Kind: ErrQuotaProblem, Err: err}
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr),
		strings.Contains(msg, "network"), strings.Contains(msg, "fetch"),
		strings.Contains(msg, "connection"), strings.Contains(msg, "no such host"):
		return &GatewayError{Kind: ErrNetworkProblem, Err: err}
	default:
		return &GatewayError{Kind: ErrGenerationFailed, Err: err}
	}
}
