package fx

import (
	"github.com/orgball2608/insta-relay-telegram-bot/internal/repositories/relaylog"
	"go.uber.org/fx"
)

var Module = fx.Options(
	relaylog.Module,
)
