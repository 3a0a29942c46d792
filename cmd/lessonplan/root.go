package main

import (
	"github.com/spf13/cobra"

	"lessonplan/config"
	"lessonplan/pkg/logger"
	"lessonplan/pkg/refdata"
)

type commandContext struct {
	provider string
	verbose  bool
}

func (c *commandContext) config() config.AppConfig {
	return config.LoadWith(map[string]string{"LLM_PROVIDER": c.provider})
}

func (c *commandContext) logger(mode string) (*logger.Logger, error) {
	if !c.verbose {
		return logger.NewNop(), nil
	}
	return logger.New(mode)
}

func (c *commandContext) refs(cfg config.AppConfig) (refdata.Store, error) {
	return refdata.Load(refdata.Sources{
		SkillsCSV:      cfg.SkillsCSV,
		DescriptorsCSV: cfg.DescriptorsCSV,
		XLSX:           cfg.RefDataXLSX,
	})
}

func newRootCommand() *cobra.Command {
	ctx := &commandContext{}

	rootCmd := &cobra.Command{
		Use:           "lessonplan",
		Short:         "Turn lesson transcripts into structured lesson plans",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&ctx.provider, "provider", "", "Completion backend (gemini, openai, mock); overrides LLM_PROVIDER")
	rootCmd.PersistentFlags().BoolVarP(&ctx.verbose, "verbose", "v", false, "Log pipeline progress to stderr")

	rootCmd.AddCommand(newGenerateCommand(ctx))
	rootCmd.AddCommand(newSkillsCommand(ctx))
	return rootCmd
}
