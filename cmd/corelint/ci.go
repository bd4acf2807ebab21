package corelint

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	ci := &cobra.Command{Use: "ci", Short: "CI template helpers for multiple providers"}
	rootCmd.AddCommand(ci)

	var provider string
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a CI pipeline template for your provider",
		RunE: func(_ *cobra.Command, _ []string) error {
			var path string
			var content string
			switch provider {
			case "github":
				path = ".github/workflows/corelint.yml"
				content = `name: corelint
on: [push, pull_request]
jobs:
  policy:
    runs-on: ubuntu-latest
    steps:
      - uses: actions/checkout@v4
      - uses: actions/setup-go@v5
        with:
          go-version: '1.25'
      - run: go install github.com/corelint/corelint@latest
      - run: corelint selftest
      - run: corelint scan --strict
`
			case "gitlab":
				path = ".gitlab-ci.yml"
				content = `stages: [lint]
policy:
  stage: lint
  image: golang:1.25
  script:
    - go install github.com/corelint/corelint@latest
    - corelint selftest
    - corelint scan --strict
`
			case "azure":
				path = "azure-pipelines.yml"
				content = `trigger:
- main

pool:
  vmImage: 'ubuntu-latest'

steps:
- task: GoTool@0
  inputs:
    version: '1.25.x'
- script: |
    go install github.com/corelint/corelint@latest
    corelint selftest
    corelint scan --strict
  displayName: 'corelint policy scan'
`
			default:
				return fmt.Errorf("unknown --provider. Supported: github, gitlab, azure")
			}
			if err := writeTemplate(path, content); err != nil {
				return err
			}
			fmt.Println("Wrote", path)
			return nil
		},
	}
	initCmd.Flags().StringVar(&provider, "provider", "", "CI provider: github | gitlab | azure")
	if err := initCmd.MarkFlagRequired("provider"); err != nil {
		fmt.Fprintln(os.Stderr, "warning: could not mark --provider as required:", err)
	}
	ci.AddCommand(initCmd)
}
