package cli

import (
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/tapmytalent/resume-optimizer/internal/auth"
	"github.com/tapmytalent/resume-optimizer/internal/client"
	"github.com/tapmytalent/resume-optimizer/internal/config"
	"github.com/tapmytalent/resume-optimizer/internal/poller"
	"github.com/tapmytalent/resume-optimizer/pkg/log"
)

// GlobalOptions are shared by every subcommand.
type GlobalOptions struct {
	ConfigFile string
	Email      string
}

func DefaultGlobalOptions() *GlobalOptions {
	return &GlobalOptions{}
}

func (o *GlobalOptions) Bind(fs *pflag.FlagSet) {
	fs.StringVar(&o.ConfigFile, "config", o.ConfigFile, "Path to the configuration file")
	fs.StringVar(&o.Email, "email", o.Email, "Account email, overrides the token claim")
}

// Setup loads the configuration, installs the global logger and resolves the
// session identity from the bearer token.
func (o *GlobalOptions) Setup() (*config.Config, auth.Session, error) {
	cfg, err := config.Load(o.ConfigFile)
	if err != nil {
		return nil, auth.Session{}, err
	}

	lvl, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		lvl = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	logger := log.InitLog(lvl)
	zap.ReplaceGlobals(logger)
	zap.S().Debugf("configuration: %s", cfg)

	session := auth.Session{}
	if cfg.Service.Token != "" {
		session, err = auth.FromToken(cfg.Service.Token)
		if err != nil {
			zap.S().Debugw("token carries no usable identity", "error", err)
			session = auth.NewSession("", cfg.Service.Token)
		}
	}
	if o.Email != "" {
		session.Email = o.Email
	}
	return cfg, session, nil
}

// components wires the backend client and poller from the configuration.
func components(cfg *config.Config) (client.Builder, *poller.Poller) {
	b := client.NewBuilder(cfg.Service.Server, cfg.Service.Token, cfg.Service.Timeout.Duration)
	return b, poller.New(b, cfg.Poll.MaxAttempts, cfg.Poll.Interval.Duration)
}
