package cmd

import (
	"fmt"

	"drover/internal/group"
	strutil "drover/pkg/strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	groupsImmediate bool
	groupsParents   bool
	groupsPlain     bool
)

// newGroupsCmd creates the command that lists groups or resolves a
// single group's hierarchy.
func newGroupsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "groups [group]",
		Short: "List groups, or resolve one group's subgroups",
		Long: `Without arguments, lists every group in the registry. With a group
name, prints the group's transitive subgroup closure; --immediate limits
the output to direct subgroups and --parents inverts the query.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := loadRepo()
			if err != nil {
				return err
			}

			if len(args) == 0 {
				return renderGroupTable(cmd, r.Groups())
			}

			g, err := r.GetGroup(args[0])
			if err != nil {
				return err
			}
			var related []*group.Group
			switch {
			case groupsImmediate && groupsParents:
				related, err = g.ImmediateParentGroups()
			case groupsParents:
				related, err = g.ParentGroups()
			case groupsImmediate:
				related, err = g.ImmediateSubgroups()
			default:
				related, err = g.Subgroups()
			}
			if err != nil {
				return err
			}
			return renderGroupTable(cmd, related)
		},
	}
	cmd.Flags().BoolVar(&groupsImmediate, "immediate", false, "only direct relations, no transitive walk")
	cmd.Flags().BoolVar(&groupsParents, "parents", false, "show parent groups instead of subgroups")
	cmd.Flags().BoolVar(&groupsPlain, "plain", false, "print names only, one per line")
	return cmd
}

func renderGroupTable(cmd *cobra.Command, groups []*group.Group) error {
	if groupsPlain {
		for _, g := range groups {
			fmt.Fprintln(cmd.OutOrStdout(), g.Name())
		}
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.AppendHeader(table.Row{"Name", "Subgroups", "Nodes", "Bundles"})
	for _, g := range groups {
		subs, err := g.SubgroupNames()
		if err != nil {
			return err
		}
		nodes, err := g.Nodes()
		if err != nil {
			return err
		}
		t.AppendRow(table.Row{
			g.Name(),
			len(subs),
			len(nodes),
			strutil.JoinTruncated(g.BundleNames()),
		})
	}
	t.Render()
	return nil
}
