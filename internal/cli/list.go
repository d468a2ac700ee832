package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/Backland-Labs/quack/internal/config"
	"github.com/Backland-Labs/quack/internal/doubles/registry"
	"github.com/Backland-Labs/quack/internal/probe"
)

// doubleInfo describes one registered double
type doubleInfo struct {
	Name         string   `json:"name"`
	Kind         string   `json:"kind,omitempty"`
	Capabilities []string `json:"capabilities"`
	Description  string   `json:"description"`
}

func listDoubles() ([]doubleInfo, error) {
	names := registry.Names()
	infos := make([]doubleInfo, 0, len(names))
	for _, name := range names {
		obj, err := registry.New(name)
		if err != nil {
			return nil, err
		}
		infos = append(infos, doubleInfo{
			Name:         name,
			Kind:         probe.Kind(obj),
			Capabilities: probe.Detect(obj),
			Description:  registry.Describe(name),
		})
	}
	return infos, nil
}

// newListCommand creates the command listing every double
func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available doubles and their capabilities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			infos, err := listDoubles()
			if err != nil {
				return err
			}

			if configFrom(cmd).Output == config.OutputJSON {
				data, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(infos, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to encode doubles: %w", err)
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tKIND\tCAPABILITIES\tDESCRIPTION")
			for _, info := range infos {
				kind := info.Kind
				if kind == "" {
					kind = "-"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", info.Name, kind, strings.Join(info.Capabilities, ","), info.Description)
			}
			return tw.Flush()
		},
	}
}
