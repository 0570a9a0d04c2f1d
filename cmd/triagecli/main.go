package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Atika-Amin/Shastho-Shohay/internal/catalog"
	"github.com/Atika-Amin/Shastho-Shohay/internal/triage"
)

var flagCatalog string

func main() {
	root := &cobra.Command{
		Use:   "triagecli",
		Short: "Talk to the symptom-triage bot from the terminal",
	}
	root.PersistentFlags().StringVar(&flagCatalog, "catalog", "data/conditions.csv", "path to the condition catalog CSV")

	root.AddCommand(newChatCmd())
	root.AddCommand(newValidateCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newChatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive triage conversation",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.LoadFile(flagCatalog)
			if err != nil {
				return err
			}

			bot := triage.NewBot(triage.NewEngine(cat), triage.NewMatcher(cat))

			fmt.Println(bot.Greet())
			fmt.Println("(type /quit to leave, /reset to start over)")

			scanner := bufio.NewScanner(os.Stdin)
			for {
				fmt.Print("> ")
				if !scanner.Scan() {
					break
				}
				line := strings.TrimSpace(scanner.Text())
				switch line {
				case "":
					continue
				case "/quit":
					return nil
				case "/reset":
					bot.Reset()
					fmt.Println(bot.Greet())
					continue
				}
				fmt.Println(bot.Handle(line))
			}
			return scanner.Err()
		},
	}
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load a catalog CSV and report what it contains",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.LoadFile(flagCatalog)
			if err != nil {
				return err
			}
			fmt.Printf("%d conditions, %d distinct symptoms\n", len(cat.Conditions), len(cat.KnownSymptoms()))
			for _, c := range cat.Conditions {
				if len(c.CoreSymptoms) == 0 {
					fmt.Printf("warning: %q has no core symptoms and will never be ranked\n", c.Name)
				}
			}
			return nil
		},
	}
}
