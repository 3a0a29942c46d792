package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"lessonplan/pkg/ai"
	"lessonplan/pkg/document"
	"lessonplan/pkg/export"
	"lessonplan/pkg/plan/service"
	"lessonplan/pkg/plan/serviceImp"
	"lessonplan/pkg/refdata"
)

func newGenerateCommand(ctx *commandContext) *cobra.Command {
	var (
		skills []string
		input  string
		text   string
		format string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a lesson plan from a transcript",
		RunE: func(cmd *cobra.Command, args []string) error {
			transcript, err := readTranscript(input, text)
			if err != nil {
				return err
			}
			codes := refdata.NormalizeCodes(skills)
			if len(codes) == 0 {
				return errors.New("at least one --skill is required")
			}
			format = strings.ToLower(format)
			if format != "json" && format != "txt" {
				return fmt.Errorf("unknown format %q (json, txt)", format)
			}

			cfg := ctx.config()
			log, err := ctx.logger(cfg.LogMode)
			if err != nil {
				return err
			}
			defer log.Sync()

			refs, err := ctx.refs(cfg)
			if err != nil {
				return err
			}
			llm, err := ai.New(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			plan, err := serviceImp.NewPlanService(refs, llm, log).Generate(cmd.Context(), service.GenerateInput{
				Transcript: transcript,
				Skills:     codes,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if format == "txt" {
				_, err = fmt.Fprint(out, export.Text(plan))
				return err
			}
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(plan)
		},
	}

	cmd.Flags().StringSliceVarP(&skills, "skill", "s", nil, "Skill code (repeatable or comma separated)")
	cmd.Flags().StringVarP(&input, "input", "i", "", "Transcript file (.docx, .txt, .md, .html)")
	cmd.Flags().StringVarP(&text, "text", "t", "", "Transcript text")
	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json or txt")
	return cmd
}

func readTranscript(input, text string) (string, error) {
	if input != "" && text != "" {
		return "", errors.New("use either --input or --text, not both")
	}
	if input != "" {
		data, err := os.ReadFile(input)
		if err != nil {
			return "", err
		}
		text, err = document.Extract(input, data)
		if err != nil {
			return "", err
		}
	}
	if strings.TrimSpace(text) == "" {
		return "", errors.New("transcript is empty: pass --input or --text")
	}
	return text, nil
}
