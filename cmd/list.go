package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"shellmorph.dev/pkg/shellmorph/internal/controller"
	"shellmorph.dev/pkg/shellmorph/internal/domain"
	m "shellmorph.dev/pkg/shellmorph/internal/model"
)

var listKindFlag string
var listFormatFlag string

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the available mutators",
		Long:  listLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := controller.ParseListFormat(viper.GetString(listFormatKey))
			if err != nil {
				return err
			}

			return workflow.List(cmd.Context(), domain.ListArgs{
				Kind:   m.Kind(strings.ToLower(strings.TrimSpace(listKindFlag))),
				Format: format,
			})
		},
	}

	cmd.Flags().StringVarP(&listKindFlag, kindFlagName, "k", "", "only list one kind (command, string, token, encode, compress)")
	cmd.Flags().StringVar(&listFormatFlag, formatFlagName, viper.GetString(listFormatKey), "output format: table or yaml")
	bindFlagToConfig(cmd.Flags().Lookup(formatFlagName), listFormatKey)

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}
