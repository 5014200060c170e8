package payment

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	cfgpkg "github.com/fatflowers/hotspot/pkg/config"
	"github.com/fatflowers/hotspot/pkg/types"
)

// Service dispatches to the closed set of provider integrations.
type Service struct {
	log    *zap.SugaredLogger
	mtn    *MTNProvider
	airtel *AirtelProvider
}

func NewService(cfg *cfgpkg.Config, log *zap.SugaredLogger) *Service {
	return &Service{
		log:    log,
		mtn:    NewMTNProvider(cfg.Providers.MTN),
		airtel: NewAirtelProvider(cfg.Providers.Airtel),
	}
}

func (s *Service) provider(name types.PaymentProvider) (Provider, error) {
	switch name {
	case types.PaymentProviderMTN:
		return s.mtn, nil
	case types.PaymentProviderAirtel:
		return s.airtel, nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", name)
	}
}

func (s *Service) Initiate(ctx context.Context, name types.PaymentProvider, req InitiateRequest) (*InitiateResult, error) {
	p, err := s.provider(name)
	if err != nil {
		return nil, err
	}
	return p.Initiate(ctx, req)
}

// VerifyCallback never fails with an error for valid provider tags;
// callers always receive a structured result.
func (s *Service) VerifyCallback(name types.PaymentProvider, headers http.Header, rawBody []byte) CallbackVerification {
	p, err := s.provider(name)
	if err != nil {
		s.log.Warnw("callback for unsupported provider", "provider", name)
		return failedVerification()
	}
	return p.VerifyCallback(headers, rawBody)
}
