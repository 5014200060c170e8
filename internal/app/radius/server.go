package radius

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"layeh.com/radius"

	vouchersvc "github.com/fatflowers/hotspot/internal/app/service/voucher"
	cfgpkg "github.com/fatflowers/hotspot/pkg/config"
)

func newHandler(v *vouchersvc.Service, log *zap.SugaredLogger) *Handler {
	return NewHandler(v, log)
}

// NewServer builds the UDP authentication listener. The shared secret
// is provisioned out-of-band to both the network-access device and this
// server; the library verifies request authenticators and signs
// responses with it, dropping anything that does not check out.
func NewServer(cfg *cfgpkg.Config, h *Handler) *radius.PacketServer {
	return &radius.PacketServer{
		Addr:         fmt.Sprintf(":%d", cfg.Radius.Port),
		Network:      "udp",
		SecretSource: radius.StaticSecretSource([]byte(cfg.Radius.Secret)),
		Handler:      h,
	}
}

func runServer(lc fx.Lifecycle, log *zap.SugaredLogger, cfg *cfgpkg.Config, srv *radius.PacketServer) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting RADIUS server", "addr", srv.Addr)
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, radius.ErrServerShutdown) {
					log.Errorf("radius server error: %v", err)
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Infow("stopping RADIUS server")
			return srv.Shutdown(ctx)
		},
	})
}

var Module = fx.Options(
	fx.Provide(newHandler),
	fx.Provide(NewServer),
	fx.Invoke(runServer),
)
