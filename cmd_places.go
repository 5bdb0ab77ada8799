package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var placesJSON bool

var placesCmd = &cobra.Command{
	Use:   "places [名称...]",
	Short: "列出地名库，或查询给定地名解析到的条目",
	RunE:  runPlaces,
}

func init() {
	placesCmd.Flags().BoolVar(&placesJSON, "json", false, "按 JSON Lines 输出")
}

func runPlaces(cmd *cobra.Command, args []string) error {
	gaz, err := gazetteer()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if len(args) > 0 {
		for _, q := range args {
			p, err := gaz.Lookup(q)
			if err != nil {
				fmt.Fprintf(out, "%s\t-\t%v\n", q, err)
				continue
			}
			fmt.Fprintf(out, "%s\t%s\t%.2f\n", q, p.Name, p.Longitude)
		}
		return nil
	}

	places := gaz.Places()
	if placesJSON {
		for _, p := range places {
			if err := writeJSON(out, p, false); err != nil {
				return err
			}
		}
		return nil
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "名称\t经度\t纬度\t别名")
	for _, p := range places {
		fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%s\n", p.Name, p.Longitude, p.Latitude, strings.Join(p.Aliases, ","))
	}
	return tw.Flush()
}
