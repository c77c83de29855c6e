package cmd

import (
	"fmt"

	"drover/internal/node"
	strutil "drover/pkg/strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var nodesPlain bool

// newNodesCmd creates the command that lists nodes, optionally limited
// to the members of one group.
func newNodesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nodes [group]",
		Short: "List nodes, or the member nodes of a group",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := loadRepo()
			if err != nil {
				return err
			}

			nodes := r.NodeList()
			if len(args) == 1 {
				g, err := r.GetGroup(args[0])
				if err != nil {
					return err
				}
				members, err := g.Nodes()
				if err != nil {
					return err
				}
				nodes = make([]*node.Node, 0, len(members))
				for _, member := range members {
					n, err := r.GetNode(member.Name())
					if err != nil {
						return err
					}
					nodes = append(nodes, n)
				}
			}
			return renderNodeTable(cmd, nodes)
		},
	}
	cmd.Flags().BoolVar(&nodesPlain, "plain", false, "print names only, one per line")
	return cmd
}

func renderNodeTable(cmd *cobra.Command, nodes []*node.Node) error {
	if nodesPlain {
		for _, n := range nodes {
			fmt.Fprintln(cmd.OutOrStdout(), n.Name())
		}
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.AppendHeader(table.Row{"Name", "Hostname", "OS", "Groups"})
	for _, n := range nodes {
		groupNames, err := n.GroupNames()
		if err != nil {
			return err
		}
		attrs, err := n.ResolvedAttrs()
		if err != nil {
			return err
		}
		t.AppendRow(table.Row{
			n.Name(),
			n.Hostname(),
			attrs.OS,
			strutil.JoinTruncated(groupNames),
		})
	}
	t.Render()
	return nil
}
