package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/samvad-hq/happn-client/pkg/happn"
	"github.com/spf13/cobra"
)

func (s *state) authCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "auth",
		Short: "Exchange the Facebook token and print the session user id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, _, err := s.session(cmd)
			if err != nil {
				return err
			}
			return s.print(map[string]any{"user_id": client.Session().UserID})
		},
	}
}

func (s *state) positionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "position LAT LON",
		Short: "Publish the user's position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lat, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid latitude %q: %w", args[0], err)
			}
			lon, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid longitude %q: %w", args[1], err)
			}
			client, _, err := s.session(cmd)
			if err != nil {
				return err
			}
			if err := client.SetPosition(cmd.Context(), lat, lon); err != nil {
				return err
			}
			return s.print(client.Session().Position)
		},
	}
}

func (s *state) deviceCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "device",
		Short: "Register the configured device",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, rt, err := s.session(cmd)
			if err != nil {
				return err
			}
			if err := client.SetDevice(cmd.Context(), rt.Device()); err != nil {
				return err
			}
			return s.ok("device")
		},
	}
}

func (s *state) settingsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "settings FILE",
		Short: "Apply preferences from a YAML or JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := LoadSettings(args[0])
			if err != nil {
				return err
			}
			client, _, err := s.session(cmd)
			if err != nil {
				return err
			}
			if err := client.ApplySettings(cmd.Context(), settings); err != nil {
				return err
			}
			return s.ok("settings")
		},
	}
}

func (s *state) ageCommand(use, short string, set func(*happn.Client, context.Context, int) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " AGE",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			age, err := strconv.Atoi(args[0])
			if err != nil || age < 0 {
				return fmt.Errorf("invalid age %q", args[0])
			}
			client, _, err := s.session(cmd)
			if err != nil {
				return err
			}
			if err := set(client, cmd.Context(), age); err != nil {
				return err
			}
			return s.ok(use)
		},
	}
}

func (s *state) activityCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "activity",
		Short: "Mark the user as active",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, _, err := s.session(cmd)
			if err != nil {
				return err
			}
			if err := client.UpdateActivity(cmd.Context()); err != nil {
				return err
			}
			return s.ok("activity")
		},
	}
}

func (s *state) relationCommand(use, short string, act func(*happn.Client, context.Context, string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " USER_ID",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := s.session(cmd)
			if err != nil {
				return err
			}
			if err := act(client, cmd.Context(), args[0]); err != nil {
				return err
			}
			return s.print(map[string]any{"op": use, "ok": true, "user_id": args[0]})
		},
	}
}

func (s *state) distanceCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "distance USER_ID",
		Short: "Print the distance to a user in meters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := s.session(cmd)
			if err != nil {
				return err
			}
			d, err := client.GetDistance(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return s.print(map[string]any{"user_id": args[0], "distance_m": d})
		},
	}
}

func (s *state) userCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "user USER_ID",
		Short: "Print a user's profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := s.session(cmd)
			if err != nil {
				return err
			}
			profile, err := client.GetUserInfo(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return s.print(profile)
		},
	}
}

func (s *state) listCommand(use, short string, defLimit int, list func(*happn.Client, context.Context, happn.Page) ([]happn.RemoteProfile, error)) *cobra.Command {
	var page happn.Page
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, _, err := s.session(cmd)
			if err != nil {
				return err
			}
			profiles, err := list(client, cmd.Context(), page)
			if err != nil {
				return err
			}
			return s.print(profiles)
		},
	}
	cmd.Flags().IntVar(&page.Limit, "limit", defLimit, "Number of entries to fetch")
	cmd.Flags().IntVar(&page.Offset, "offset", 0, "Index of the first entry")
	return cmd
}
