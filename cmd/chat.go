package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/grocer/internal/assistant"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat with the assistant",
	Long: `Opens an interactive terminal session with the assistant. The whole
session shares one conversation thread. Type /clear to start over and
/quit (or Ctrl-C) to leave.`,
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

		fmt.Printf("Chatting with %s over %d products. /clear resets, /quit exits.\n\n",
			cfg.Model, a.Catalog().Len())

		threadID := assistant.NewThreadID()
		prompt := promptui.Prompt{Label: "You"}

		for {
			question, err := prompt.Run()
			if err != nil {
				// Ctrl-C / Ctrl-D end the session.
				if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
					return nil
				}
				return fmt.Errorf("reading input: %w", err)
			}

			switch strings.TrimSpace(question) {
			case "":
				continue
			case "/quit", "/exit":
				return nil
			case "/clear":
				if err := a.Reset(ctx, threadID); err != nil {
					fmt.Printf("could not clear conversation: %v\n", err)
					continue
				}
				threadID = assistant.NewThreadID()
				fmt.Println("Conversation cleared.")
				continue
			}

			answer, err := a.Query(ctx, question, threadID)
			if err != nil {
				fmt.Printf("error: %v\n", err)
				continue
			}
			fmt.Printf("\n%s\n\n", answer)
		}
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
