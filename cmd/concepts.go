package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/mora/internal/curriculum"
	"github.com/spf13/cobra"
)

var conceptsCmd = &cobra.Command{
	Use:   "concepts",
	Short: "List the curriculum concepts and their prerequisites",
	RunE: func(cmd *cobra.Command, args []string) error {
		graph := curriculum.NewGraph(curriculum.Default())

		fmt.Printf("%-18s  %-28s  %9s  %s\n",
			"ID", "Name", "Threshold", "Prerequisites")
		fmt.Println(strings.Repeat("─", 90))

		for _, c := range graph.All() {
			prereqs := "-"
			if len(c.Prerequisites) > 0 {
				prereqs = strings.Join(c.Prerequisites, ", ")
			}
			fmt.Printf("%-18s  %-28s  %8.0f%%  %s\n",
				c.ID, truncate(c.Name, 28), c.Threshold()*100, prereqs)
		}

		fmt.Printf("\n%d concepts\n", graph.Len())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(conceptsCmd)
}
