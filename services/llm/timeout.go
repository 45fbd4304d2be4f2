package llm

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

type timeoutProvider struct {
	inner   Provider
	timeout time.Duration
}

// WithTimeout bounds every Generate call of `p` to `timeout`. A non positive timeout returns `p` as-is.
func WithTimeout(p Provider, timeout time.Duration) Provider {
	if timeout <= 0 {
		return p
	}
	return &timeoutProvider{inner: p, timeout: timeout}
}

func (p *timeoutProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	resp, err := p.inner.Generate(ctx, req)
	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		var unavail *ErrProviderUnavailable
		if !errors.As(err, &unavail) {
			err = &ErrProviderUnavailable{Err: err}
		}
	}
	return resp, err
}

func (p *timeoutProvider) ModelID() string {
	return p.inner.ModelID()
}
