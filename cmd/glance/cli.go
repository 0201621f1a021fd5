package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/hpungsan/glance/internal/capture"
	"github.com/hpungsan/glance/internal/errors"
	"github.com/hpungsan/glance/internal/ops"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(env *ops.Env) *cli.App {
	app := &cli.App{
		Name:    "glance",
		Usage:   "Desktop context capture",
		Version: Version,
		Commands: []*cli.Command{
			captureCmd(env),
			latestCmd(env),
			listCmd(env),
			getCmd(env),
			deleteCmd(env),
			retryCmd(env),
			cleanupCmd(env),
			statsCmd(env),
			webhookTestCmd(env),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// captureCmd creates the capture command.
// Delivery runs synchronously here: a CLI process exits right after the
// command, so a background send would be cut off mid-flight.
func captureCmd(env *ops.Env) *cli.Command {
	return &cli.Command{
		Name:  "capture",
		Usage: "Capture the current desktop context",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "method", Aliases: []string{"m"}, Value: "manual", Usage: "Trigger method: hotkey|manual"},
		},
		Action: func(c *cli.Context) error {
			sender := env.Webhook
			env.Webhook = nil

			out, err := ops.Capture(c.Context, env, ops.CaptureInput{
				Method: capture.CaptureMethod(c.String("method")),
			})
			if err != nil {
				return outputError(err)
			}

			result := map[string]any{"capture_id": out.CaptureID}
			if sender != nil {
				env.Webhook = sender
				retry, err := ops.RetryWebhook(c.Context, env, ops.RetryInput{ID: out.CaptureID})
				if err != nil {
					return outputError(err)
				}
				result["webhook"] = retry
			}

			return outputJSON(result)
		},
	}
}

// latestCmd creates the latest command. Each CLI invocation is a fresh
// process, so this reads the newest index row rather than the in-memory
// slot the MCP server uses.
func latestCmd(env *ops.Env) *cli.Command {
	return &cli.Command{
		Name:  "latest",
		Usage: "Show the most recent capture",
		Action: func(c *cli.Context) error {
			listing, err := ops.List(env, ops.ListInput{Limit: 1})
			if err != nil {
				return outputError(err)
			}
			if listing.Count == 0 {
				return outputJSON(map[string]any{"found": false})
			}

			out, err := ops.Get(env, ops.GetInput{ID: listing.Items[0].ID})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(out)
		},
	}
}

// listCmd creates the list command.
func listCmd(env *ops.Env) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List captures, most recent first",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Value: ops.DefaultListLimit, Usage: "Maximum items to return"},
		},
		Action: func(c *cli.Context) error {
			out, err := ops.List(env, ops.ListInput{Limit: c.Int("limit")})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(out)
		},
	}
}

// getCmd creates the get command.
func getCmd(env *ops.Env) *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Fetch a full capture record by id",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			out, err := ops.Get(env, ops.GetInput{ID: c.Args().First()})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(out)
		},
	}
}

// deleteCmd creates the delete command.
func deleteCmd(env *ops.Env) *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Delete a capture and its files",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			out, err := ops.Delete(env, ops.DeleteInput{ID: c.Args().First()})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(out)
		},
	}
}

// retryCmd creates the retry command.
func retryCmd(env *ops.Env) *cli.Command {
	return &cli.Command{
		Name:      "retry",
		Usage:     "Re-send webhook delivery for a capture",
		ArgsUsage: "[id]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "all", Usage: "Re-send every capture whose delivery has not succeeded"},
		},
		Action: func(c *cli.Context) error {
			if env.Webhook == nil {
				return outputError(errors.NewInvalidRequest("no webhook URL configured"))
			}

			if c.Bool("all") {
				out, err := ops.SweepUnsent(c.Context, env)
				if err != nil {
					return outputError(err)
				}
				return outputJSON(out)
			}

			out, err := ops.RetryWebhook(c.Context, env, ops.RetryInput{ID: c.Args().First()})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(out)
		},
	}
}

// cleanupCmd creates the cleanup command.
func cleanupCmd(env *ops.Env) *cli.Command {
	return &cli.Command{
		Name:  "cleanup",
		Usage: "Delete captures older than the retention cutoff",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "days", Aliases: []string{"d"}, Usage: "Retention cutoff in days (defaults to configured retention)"},
		},
		Action: func(c *cli.Context) error {
			out, err := ops.Cleanup(env, ops.CleanupInput{DaysOld: c.Int("days")})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(out)
		},
	}
}

// statsCmd creates the stats command.
func statsCmd(env *ops.Env) *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Show capture counts and storage usage",
		Action: func(c *cli.Context) error {
			out, err := ops.GetStats(env)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(out)
		},
	}
}

// webhookTestCmd creates the webhook-test command.
func webhookTestCmd(env *ops.Env) *cli.Command {
	return &cli.Command{
		Name:  "webhook-test",
		Usage: "Probe the configured webhook endpoint",
		Action: func(c *cli.Context) error {
			if env.Webhook == nil {
				return outputError(errors.NewInvalidRequest("no webhook URL configured"))
			}
			ok := env.Webhook.TestConnection(c.Context)
			return outputJSON(map[string]any{"reachable": ok})
		},
	}
}

// Helper functions

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if gErr, ok := err.(*errors.GlanceError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", gErr.Code, gErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}
