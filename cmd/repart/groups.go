package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/modularizer/repart-go/pkg/repart"
)

var groupsPattern string

var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "Print the group index of a pattern",
	Long: `Decompose a pattern's source text and print its group hierarchy:
kind, name, capture number, span and quantifier of every group.

Example:
  repart groups --pattern '(?<name>\w+)(?:, (?<age>\d+))?'`,
	RunE: runGroups,
}

func init() {
	groupsCmd.Flags().StringVarP(&groupsPattern, "pattern", "p", "", "pattern source to decompose")
	rootCmd.AddCommand(groupsCmd)
}

func runGroups(cmd *cobra.Command, args []string) error {
	if groupsPattern == "" {
		return fmt.Errorf("--pattern is required")
	}
	ix, err := repart.BuildIndex(groupsPattern)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), ix.String())
	return nil
}
