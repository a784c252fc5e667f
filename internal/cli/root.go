package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/samvad-hq/happn-client/internal/app"
	"github.com/samvad-hq/happn-client/internal/config"
	"github.com/samvad-hq/happn-client/internal/logger"
	"github.com/samvad-hq/happn-client/pkg/happn"
	"github.com/samvad-hq/happn-client/pkg/httpclient"
	"github.com/spf13/cobra"
)

// Options controls how the command tree is wired. Zero values select the
// production defaults.
type Options struct {
	LoadConfig func() (*config.Config, error)
	Transport  httpclient.Client
	Logger     logger.Logger
	Out        io.Writer
}

type state struct {
	opts Options

	fbToken   string
	latitude  float64
	longitude float64
}

// Execute runs the command tree against the real API.
func Execute(ctx context.Context) error {
	return NewRootCommand(Options{}).ExecuteContext(ctx)
}

// NewRootCommand builds the happnctl command tree.
func NewRootCommand(opts Options) *cobra.Command {
	if opts.LoadConfig == nil {
		opts.LoadConfig = config.Load
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	s := &state{opts: opts}

	root := &cobra.Command{
		Use:   "happnctl",
		Short: "Drive a happn account from the command line",
		Long: `happnctl authenticates with a Facebook access token and runs one API call per invocation.

Environment Variables:
  FB_TOKEN                 Facebook access token (overridden by --fb-token)
  CLIENT_ID, CLIENT_SECRET OAuth client credentials
  API_BASE_URL             API root (default: https://api.happn.fr)
  REQUEST_TIMEOUT_SECONDS  Per-request timeout (default: 30)`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&s.fbToken, "fb-token", "", "Facebook access token (overrides FB_TOKEN)")
	root.PersistentFlags().Float64Var(&s.latitude, "lat", 0, "Latitude to publish after login (requires --lon)")
	root.PersistentFlags().Float64Var(&s.longitude, "lon", 0, "Longitude to publish after login (requires --lat)")

	root.AddCommand(
		s.authCommand(),
		s.positionCommand(),
		s.deviceCommand(),
		s.settingsCommand(),
		s.ageCommand("age-min", "Set the minimum matching age", (*happn.Client).SetMatchingAgeMin),
		s.ageCommand("age-max", "Set the maximum matching age", (*happn.Client).SetMatchingAgeMax),
		s.activityCommand(),
		s.relationCommand("like", "Like a user", (*happn.Client).LikeUser),
		s.relationCommand("decline", "Decline a user", (*happn.Client).DeclineUser),
		s.relationCommand("unreject", "Remove a user from the declined list", (*happn.Client).UnrejectUser),
		s.distanceCommand(),
		s.userCommand(),
		s.listCommand("recs", "List recommendations", happn.DefaultRecommendationsLimit, (*happn.Client).GetRecommendations),
		s.listCommand("declined", "List declined users", happn.DefaultDeclinedLimit, (*happn.Client).GetDeclined),
	)
	return root
}

// session loads config, builds the runtime and logs in.
func (s *state) session(cmd *cobra.Command) (*happn.Client, *app.Runtime, error) {
	cfg, err := s.opts.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	log := s.opts.Logger
	if log == nil {
		if log, err = logger.Init(cfg); err != nil {
			return nil, nil, fmt.Errorf("init logger: %w", err)
		}
	}
	log.DebugObj("config loaded", "config", cfg.Redacted())

	rt, err := app.NewRuntime(cfg, s.opts.Transport, log)
	if err != nil {
		return nil, nil, err
	}

	var pos *happn.Position
	flags := cmd.Flags()
	latSet, lonSet := flags.Changed("lat"), flags.Changed("lon")
	if latSet != lonSet {
		return nil, nil, fmt.Errorf("--lat and --lon must be given together")
	}
	if latSet {
		pos = &happn.Position{Latitude: s.latitude, Longitude: s.longitude}
	}

	client, err := rt.Login(cmd.Context(), s.fbToken, pos)
	if err != nil {
		return nil, nil, err
	}
	return client, rt, nil
}

func (s *state) print(v any) error {
	enc := json.NewEncoder(s.opts.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (s *state) ok(op string) error {
	return s.print(map[string]any{"op": op, "ok": true})
}
