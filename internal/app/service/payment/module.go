package payment

import "go.uber.org/fx"

// Module exposes the payment provider dispatcher via Fx.
var Module = fx.Options(
	fx.Provide(NewService),
)
