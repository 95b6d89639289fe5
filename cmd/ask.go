package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/grocer/internal/assistant"
)

var askThreadID string

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask the assistant a single question",
	Long: `Sends one question through the assistant and prints the answer. Pass
--thread to continue an earlier conversation; otherwise a fresh thread
is used.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		a, closeDB, err := openAssistant(ctx, cfg, false)
		if err != nil {
			return err
		}
		defer closeDB()

		threadID := askThreadID
		if threadID == "" {
			threadID = assistant.NewThreadID()
		}

		answer, err := a.Query(ctx, args[0], threadID)
		if err != nil {
			return err
		}

		fmt.Println(answer)
		if verbose {
			fmt.Printf("\n(thread %s)\n", threadID)
		}
		return nil
	},
}

func init() {
	askCmd.Flags().StringVar(&askThreadID, "thread", "", "conversation thread to continue")
	rootCmd.AddCommand(askCmd)
}
