package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var forceInit bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new storyspec project",
	Long: `Initialize a new storyspec project in the current directory.

This creates:
  - .storyspec.yaml    - Configuration file
  - example_test.go    - Example behavior test

Examples:
  storyspec init
  storyspec init --force`,
	RunE: initCommand,
}

func init() {
	initCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "Overwrite existing files")
}

func initCommand(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	configFile := filepath.Join(cwd, ".storyspec.yaml")
	exampleFile := filepath.Join(cwd, "example_test.go")

	if !forceInit {
		for _, f := range []string{configFile, exampleFile} {
			if _, err := os.Stat(f); err == nil {
				return fmt.Errorf("file already exists: %s (use --force to overwrite)", f)
			}
		}
	}

	configContent := map[string]any{
		"output":    "console",
		"noColor":   false,
		"historyDb": filepath.Join(".storyspec", "history.db"),
	}

	configYAML, _ := yaml.Marshal(configContent)
	if err := os.WriteFile(configFile, configYAML, 0644); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", configFile)

	exampleContent := `package example

import (
	"errors"
	"testing"

	"github.com/abdul-hamid-achik/storyspec/packages/core/runner"
)

var account int

func Given_an_empty_account() error {
	account = 0
	return nil
}

func When_100_is_deposited() error {
	account += 100
	return nil
}

func Then_the_balance_is_100() error {
	if account != 100 {
		return errors.New("unexpected balance")
	}
	return nil
}

func TestAccountDeposits(t *testing.T) {
	r, err := runner.New("Account_deposits")
	if err != nil {
		t.Fatal(err)
	}

	if err := r.RunScenario("Deposit into empty account",
		Given_an_empty_account,
		When_100_is_deposited,
		Then_the_balance_is_100,
	); err != nil {
		t.Fatal(err)
	}
}
`

	if err := os.WriteFile(exampleFile, []byte(exampleContent), 0644); err != nil {
		return fmt.Errorf("failed to create example file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", exampleFile)

	fmt.Fprintf(cmd.OutOrStdout(), "\nstoryspec project initialized!\n")
	fmt.Fprintf(cmd.OutOrStdout(), "Run 'go test' to execute the example scenario.\n")

	return nil
}
