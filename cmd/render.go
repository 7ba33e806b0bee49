package cmd

import (
	"context"
	"fmt"
	"html/template"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/hashportal/hashportal/internal/portal"
	"github.com/hashportal/hashportal/internal/views"
)

var (
	renderActions []string
	renderTimeout time.Duration
)

var renderCmd = &cobra.Command{
	Use:   "render <fragment>",
	Short: "Render one view headless and print its markup",
	Long: `Runs a single portal session without a browser: navigates to the
fragment (e.g. "#/dailies"), applies each --action in order, and prints the
final main-region markup to stdout.`,
	Example: `  hashportal render '#/dailies' --action filter-type=daily --action hide=daily:0:Login`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		actions := make([]views.Action, 0, len(renderActions))
		for _, s := range renderActions {
			a, err := views.ParseAction(s)
			if err != nil {
				return err
			}
			actions = append(actions, a)
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), renderTimeout)
		defer cancel()

		html, err := renderHeadless(ctx, portalOptions(cfg), args[0], actions)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), html)
		return nil
	},
}

type captured struct {
	kind string
	path string
	html template.HTML
}

// captureDisplay records runtime output for a headless session.
type captureDisplay struct {
	events chan captured
}

func (d *captureDisplay) Redirect(path string) {
	d.events <- captured{kind: "redirect", path: path}
}

func (d *captureDisplay) Activate(path string) {
	d.events <- captured{kind: "activate", path: path}
}

func (d *captureDisplay) Show(path string, main template.HTML) {
	d.events <- captured{kind: "show", path: path, html: main}
}

// renderHeadless navigates to fragment, applies actions and returns the
// final markup. Actions only re-render views that accept them, so the
// session re-navigates to the same fragment at the end and takes the show
// that follows that activation.
func renderHeadless(ctx context.Context, opts portal.Options, fragment string, actions []views.Action) (template.HTML, error) {
	display := &captureDisplay{events: make(chan captured, 64)}
	opts.ID = "render"
	rt, err := portal.New(opts, display)
	if err != nil {
		return "", err
	}

	runCtx, stop := context.WithCancel(ctx)
	defer stop()
	go rt.Run(runCtx)

	// Actions are dropped until the first render, so wait for it.
	if err := rt.Send(ctx, portal.Navigate{Fragment: fragment}); err != nil {
		return "", err
	}
	first, err := waitFor(ctx, display, "show")
	if err != nil {
		return "", err
	}

	msgs := make([]portal.Msg, 0, len(actions)+1)
	for _, a := range actions {
		msgs = append(msgs, portal.Control{Action: a})
	}
	msgs = append(msgs, portal.Navigate{Fragment: "#" + first.path})
	for _, m := range msgs {
		if err := rt.Send(ctx, m); err != nil {
			return "", err
		}
	}

	if _, err := waitFor(ctx, display, "activate"); err != nil {
		return "", err
	}
	last, err := waitFor(ctx, display, "show")
	if err != nil {
		return "", err
	}
	return last.html, nil
}

// waitFor skips events until one of the wanted kind arrives. A redirect is
// reported on stderr.
func waitFor(ctx context.Context, d *captureDisplay, kind string) (captured, error) {
	for {
		select {
		case ev := <-d.events:
			if ev.kind == "redirect" {
				fmt.Fprintf(os.Stderr, "redirected to #%s\n", ev.path)
				continue
			}
			if ev.kind == kind {
				return ev, nil
			}
		case <-ctx.Done():
			return captured{}, fmt.Errorf("waiting for %s: %w", kind, ctx.Err())
		}
	}
}

func init() {
	renderCmd.Flags().StringArrayVar(&renderActions, "action", nil, "control action kind=value to apply (repeatable)")
	renderCmd.Flags().DurationVar(&renderTimeout, "timeout", 30*time.Second, "overall time limit")
	rootCmd.AddCommand(renderCmd)
}
