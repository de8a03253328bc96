package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nfrund/emitter/cmd/emitter/internal/display"
	"github.com/nfrund/emitter/internal/topicmgr"
)

var (
	listOutputFormat string
	listOwnerFilter  string
	listScopeFilter  string
)

// topicsListCmd represents the topics list command
var topicsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog topics",
	Long: `List every topic in the catalog in table or JSON form.

Examples:
  emitter topics list                       # all topics as a table
  emitter topics list --format json         # all topics as JSON
  emitter topics list --scope core          # core topics only
  emitter topics list --owner demo          # topics owned by demo
  emitter topics list --owner demo -f json  # combined`,
	Args: cobra.NoArgs,
	RunE: topicsListHandler,
}

func topicsListHandler(cmd *cobra.Command, args []string) error {
	var scope topicmgr.TopicScope
	if listScopeFilter != "" {
		scope = topicmgr.ParseScope(strings.ToLower(listScopeFilter))
		if scope == "" {
			return fmt.Errorf("invalid scope %q, valid scopes: core, app", listScopeFilter)
		}
	}
	if listOutputFormat != "table" && listOutputFormat != "json" {
		return fmt.Errorf("unsupported output format %q, use table or json", listOutputFormat)
	}

	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.Close()

	var topicList []topicmgr.Topic
	switch {
	case listOwnerFilter != "":
		topicList = a.Topics.ListByOwner(listOwnerFilter)
	case scope != "":
		topicList = a.Topics.ListByScope(scope)
	default:
		topicList = a.Topics.List()
	}
	if listOwnerFilter != "" && scope != "" {
		filtered := topicList[:0]
		for _, topic := range topicList {
			if topic.Scope() == scope {
				filtered = append(filtered, topic)
			}
		}
		topicList = filtered
	}

	out := cmd.OutOrStdout()
	if listOutputFormat == "json" {
		return display.TopicsJSON(out, topicList)
	}

	if len(topicList) == 0 {
		fmt.Fprintln(out, display.NoTopicsMessage(listOwnerFilter, listScopeFilter))
		return nil
	}
	display.TopicsTable(out, topicList)
	return nil
}

func init() {
	topicsCmd.AddCommand(topicsListCmd)

	topicsListCmd.Flags().StringVarP(&listOutputFormat, "format", "f", "table", "Output format (table, json)")
	topicsListCmd.Flags().StringVarP(&listOwnerFilter, "owner", "o", "", "Filter topics by owner")
	topicsListCmd.Flags().StringVarP(&listScopeFilter, "scope", "s", "", "Filter topics by scope (core, app)")
}
