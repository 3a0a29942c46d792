package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newSkillsCommand(ctx *commandContext) *cobra.Command {
	var grade string

	cmd := &cobra.Command{
		Use:   "skills",
		Short: "List grades, or the skills of one grade",
		RunE: func(cmd *cobra.Command, args []string) error {
			refs, err := ctx.refs(ctx.config())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if grade == "" {
				for _, g := range refs.Grades() {
					fmt.Fprintln(out, g)
				}
				return nil
			}

			codes := refs.SkillsForGrade(grade)
			if len(codes) == 0 {
				return fmt.Errorf("no skills for grade %q", grade)
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for _, code := range codes {
				fmt.Fprintf(tw, "%s\t%s\n", code, refs.DescriptionForSkill(code))
				for _, d := range refs.DescriptorsForSkill(code) {
					fmt.Fprintf(tw, "  %s\t%s\n", d.ID, d.Description)
				}
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVarP(&grade, "grade", "g", "", "Grade label, e.g. \"6º ano\"")
	return cmd
}
