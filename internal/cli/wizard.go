package cli

import (
	"github.com/spf13/cobra"

	"github.com/ppiankov/footfit/internal/recommend"
	"github.com/ppiankov/footfit/internal/render"
	"github.com/ppiankov/footfit/internal/wizard"
)

// wizardCmd represents the wizard command
var wizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Answer the questionnaire step by step",
	Long: `Wizard walks through the three questionnaire screens:

  1. Personal Info   age group, weight category, activity level
  2. Foot details    foot type and optional preferred shoe type
  3. Recommendation  analyze, go back or start over

Press Enter to keep the highlighted default.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		applyCommonFlags(cfg)

		prompter := wizard.NewPrompter(
			cmd.InOrStdin(),
			cmd.OutOrStdout(),
			recommend.NewRecommender(),
			render.NewRenderer(cfg.Output.IncludeTips),
			cfg.Output.Speak,
		)
		return prompter.Run(wizard.NewSession())
	},
}

func init() {
	rootCmd.AddCommand(wizardCmd)

	wizardCmd.Flags().BoolVar(&speak, "speak", false, "print the spoken summary line")
	wizardCmd.Flags().BoolVar(&noTips, "no-tips", false, "omit the tip of the day")
}
