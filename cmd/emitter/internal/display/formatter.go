// Package display renders catalog topics for the command line.
package display

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nfrund/emitter/internal/topicmgr"
)

// TopicDisplay represents a topic for display purposes
type TopicDisplay struct {
	Name        string                 `json:"name"`
	Scope       string                 `json:"scope"`
	Owner       string                 `json:"owner,omitempty"`
	PayloadType string                 `json:"payload_type,omitempty"`
	Description string                 `json:"description"`
	Example     string                 `json:"example,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

var titleCaser = cases.Title(language.English)

func toDisplay(topic topicmgr.Topic) TopicDisplay {
	return TopicDisplay{
		Name:        topic.Name(),
		Scope:       string(topic.Scope()),
		Owner:       topic.Owner(),
		PayloadType: topic.PayloadType(),
		Description: topic.Description(),
		Example:     topic.Example(),
		Metadata:    topic.Metadata(),
	}
}

// TopicsTable writes topics as an aligned table
func TopicsTable(w io.Writer, topics []topicmgr.Topic) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "NAME\tSCOPE\tOWNER\tPAYLOAD\tDESCRIPTION")
	fmt.Fprintln(tw, "----\t-----\t-----\t-------\t-----------")

	for _, topic := range topics {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			topic.Name(),
			titleCaser.String(string(topic.Scope())),
			orDash(topic.Owner()),
			orDash(topic.PayloadType()),
			truncateString(topic.Description(), 50))
	}
}

// TopicsJSON writes topics as an indented JSON document with a count
func TopicsJSON(w io.Writer, topics []topicmgr.Topic) error {
	displays := make([]TopicDisplay, len(topics))
	for i, topic := range topics {
		displays[i] = toDisplay(topic)
	}

	output := struct {
		Topics []TopicDisplay `json:"topics"`
		Count  int            `json:"count"`
	}{
		Topics: displays,
		Count:  len(displays),
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// TopicDetails writes every field of a single topic
func TopicDetails(w io.Writer, topic topicmgr.Topic, format string) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(toDisplay(topic))
	case "table", "":
	default:
		return fmt.Errorf("unsupported output format %q, use table or json", format)
	}

	fmt.Fprintf(w, "Name:        %s\n", topic.Name())
	fmt.Fprintf(w, "Scope:       %s\n", titleCaser.String(string(topic.Scope())))
	fmt.Fprintf(w, "Owner:       %s\n", orDash(topic.Owner()))
	fmt.Fprintf(w, "Payload:     %s\n", orDash(topic.PayloadType()))
	fmt.Fprintf(w, "Description: %s\n", topic.Description())
	fmt.Fprintf(w, "Example:     %s\n", orDash(topic.Example()))

	metadata := topic.Metadata()
	if len(metadata) > 0 {
		keys := make([]string, 0, len(metadata))
		for k := range metadata {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		fmt.Fprintln(w, "Metadata:")
		for _, k := range keys {
			fmt.Fprintf(w, "  %s: %v\n", k, metadata[k])
		}
	}

	return nil
}

// ValidationResult writes the outcome of validating name. topic may be nil
// when the name is not cataloged.
func ValidationResult(w io.Writer, name string, topic topicmgr.Topic, nameErr, defErr error) {
	if nameErr != nil {
		fmt.Fprintf(w, "❌ Topic name validation failed: %v\n", nameErr)
		fmt.Fprintln(w, "   Names are lowercase dot-separated segments, e.g. gpu.device.status")
		return
	}

	if defErr != nil {
		fmt.Fprintf(w, "❌ Topic validation failed: %v\n", defErr)
		return
	}

	fmt.Fprintf(w, "✅ Topic '%s' is valid\n", name)
	if topic == nil {
		return
	}
	fmt.Fprintf(w, "   Scope: %s\n", titleCaser.String(string(topic.Scope())))
	if topic.Owner() != "" {
		fmt.Fprintf(w, "   Owner: %s\n", topic.Owner())
	} else {
		fmt.Fprintln(w, "   Owner: (core)")
	}
}

// NoTopicsMessage describes an empty listing and the filters that caused it
func NoTopicsMessage(owner, scope string) string {
	message := "No topics found"

	var filters []string
	if owner != "" {
		filters = append(filters, fmt.Sprintf("owner '%s'", owner))
	}
	if scope != "" {
		filters = append(filters, fmt.Sprintf("scope '%s'", scope))
	}
	if len(filters) > 0 {
		message += " matching: " + strings.Join(filters, ", ")
	}
	return message
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// truncateString truncates a string to maxLen characters, adding "..." if truncated
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return "..."
	}
	return s[:maxLen-3] + "..."
}
