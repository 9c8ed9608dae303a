package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"streaks/internal/core/version"
	pnet "streaks/internal/platform/net"
	"streaks/internal/services/api/streak/domain"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

// lookupFlags are shared by every command that resolves a user
type lookupFlags struct {
	tzOffset string
	tz       string
	at       string
	lang     string
	token    string
}

func (f *lookupFlags) query(user string) domain.StatsQuery {
	return domain.StatsQuery{Username: user, TzOffset: f.tzOffset, Tz: f.tz, At: f.at, Lang: f.lang}
}

func newRootCmd(port func() domain.ServicePort, out io.Writer) *cobra.Command {
	var lf lookupFlags

	root := &cobra.Command{
		Use:   "streaks-cli",
		Short: "Contribution streaks and badges for GitHub users",
		Long: `streaks-cli computes current and longest contribution streaks.

Set GITHUB_TOKEN to read the full contribution calendar; without it only
recent public events are visible.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)

	pf := root.PersistentFlags()
	pf.StringVar(&lf.tzOffset, "tz-offset", "", "minutes east of UTC (-720..840), wins over --tz")
	pf.StringVar(&lf.tz, "tz", "", "IANA time zone, e.g. Europe/Berlin")
	pf.StringVar(&lf.at, "at", "", "RFC3339 instant to compute as of instead of now")
	pf.StringVar(&lf.lang, "lang", "", "BCP 47 tag for badge number formatting")
	pf.StringVar(&lf.token, "token", "", "GitHub token for this run, overrides GITHUB_TOKEN")

	root.AddCommand(
		statsCmd(port, &lf),
		badgeCmd(port, &lf),
		tiersCmd(port),
		versionCmd(),
	)
	return root
}

func statsCmd(port func() domain.ServicePort, lf *lookupFlags) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "stats <username>",
		Short: "Print streak stats for a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := pnet.WithCredential(cmd.Context(), lf.token)
			res, err := port().Stats(ctx, lf.query(args[0]))
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(res.Stats)
			}
			renderStats(cmd.OutOrStdout(), res)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw stats object")
	return cmd
}

func badgeCmd(port func() domain.ServicePort, lf *lookupFlags) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "badge <username>",
		Short: "Render the SVG badge for a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := pnet.WithCredential(cmd.Context(), lf.token)
			res, err := port().Badge(ctx, lf.query(args[0]))
			if err != nil {
				return err
			}
			return writeSVG(cmd.OutOrStdout(), output, res.SVG)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the SVG to this file instead of stdout")
	return cmd
}

func tiersCmd(port func() domain.ServicePort) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "tiers",
		Short: "List streak tiers, optionally writing a sample badge per tier",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			all, err := port().TierBadges(cmd.Context())
			if err != nil {
				return err
			}
			if dir != "" {
				if err := os.MkdirAll(dir, 0o750); err != nil {
					return err
				}
				for _, tb := range all {
					name := filepath.Join(dir, "tier-"+strconv.Itoa(tb.Tier.Min)+".svg")
					if err := writeSVG(cmd.OutOrStdout(), name, tb.SVG); err != nil {
						return err
					}
				}
			}
			renderTiers(cmd.OutOrStdout(), all)
			return nil
		},
	}
	cmd.Flags().StringVarP(&dir, "output", "o", "", "directory for sample badges")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			bi := version.Info()
			fmt.Fprintf(cmd.OutOrStdout(), "streaks-cli %s (commit: %s, built: %s)\n", bi.Version, bi.Commit, bi.Date)
		},
	}
}

func writeSVG(out io.Writer, path, svg string) error {
	if path == "" {
		_, err := io.WriteString(out, svg)
		return err
	}
	if err := os.WriteFile(path, []byte(svg), 0o644); err != nil {
		return err
	}
	fmt.Fprintf(out, "wrote %s\n", path)
	return nil
}

func renderStats(out io.Writer, res domain.StatsResult) {
	last := "-"
	if d, ok := res.Stats.LastActive(); ok {
		last = d
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(out)
	tw.SetStyle(table.StyleLight)
	tw.Style().Format.Footer = text.FormatDefault
	tw.SetTitle(res.Login)
	tw.AppendHeader(table.Row{"Current", "Longest", "Total", "Last active", "Tier"})
	tw.AppendRow(table.Row{res.Stats.CurrentStreak, res.Stats.LongestStreak, res.Stats.TotalCommits, last, res.Tier.Name})
	tw.AppendFooter(table.Row{"", "", "", "years", yearsLabel(res)})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})
	tw.Render()
}

func renderTiers(out io.Writer, all []domain.TierBadge) {
	tw := table.NewWriter()
	tw.SetOutputMirror(out)
	tw.SetStyle(table.StyleLight)
	tw.Style().Format.Footer = text.FormatDefault
	tw.AppendHeader(table.Row{"Days", "Tier", "Color", "Icon"})
	for _, tb := range all {
		tw.AppendRow(table.Row{tb.Tier.Min, tb.Tier.Name, tb.Tier.Color, tb.Tier.Icon})
	}
	tw.AppendFooter(table.Row{"", fmt.Sprintf("%d tiers", len(all)), "", ""})
	tw.Render()
}

func yearsLabel(res domain.StatsResult) string {
	parts := make([]string, 0, len(res.Report.Years))
	for _, y := range res.Report.Years {
		parts = append(parts, strconv.Itoa(y))
	}
	return strings.Join(parts, ",") + " (" + string(res.Report.Reason) + ")"
}
