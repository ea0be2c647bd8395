package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Probe the API and report connectivity",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		status := client.TestConnection(cmd.Context())
		fmt.Println(status.Message)
		if !status.Success {
			return status.Err
		}
		return nil
	},
}

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the tools available on the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		tools, err := client.GetTools(cmd.Context())
		if err != nil {
			return err
		}
		for _, tool := range tools {
			if tool.Description != "" {
				fmt.Printf("%s\t%s\n", tool.Name, tool.Description)
				continue
			}
			fmt.Println(tool.Name)
		}
		return nil
	},
}

var commandCmd = &cobra.Command{
	Use:   "command <type> [input-json]",
	Short: "Dispatch a raw command through POST /command",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		input, err := parseJSONArg(args, 1)
		if err != nil {
			return err
		}
		client, err := newClient()
		if err != nil {
			return err
		}
		result, err := client.ExecuteCommand(cmd.Context(), args[0], input)
		if err != nil {
			return err
		}
		return printJSON(result)
	},
}

var toolCmd = &cobra.Command{
	Use:   "tool <name> [params-json]",
	Short: "Execute a named tool",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		params, err := parseJSONArg(args, 1)
		if err != nil {
			return err
		}
		client, err := newClient()
		if err != nil {
			return err
		}
		result, err := client.ExecuteTool(cmd.Context(), args[0], params)
		if err != nil {
			return err
		}
		return printJSON(result)
	},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Run code analysis on a source file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		code, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		language, _ := cmd.Flags().GetString("language")
		analysisType, _ := cmd.Flags().GetString("type")

		client, err := newClient()
		if err != nil {
			return err
		}
		result, err := client.AnalyzeCode(cmd.Context(), string(code), language, analysisType, nil)
		if err != nil {
			return err
		}
		return printJSON(result)
	},
}

var lineageCmd = &cobra.Command{
	Use:   "lineage <file>",
	Short: "Extract data lineage from a source file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		code, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		language, _ := cmd.Flags().GetString("language")

		client, err := newClient()
		if err != nil {
			return err
		}
		result, err := client.ExtractDataLineage(cmd.Context(), string(code), language, args[0])
		if err != nil {
			return err
		}
		return printJSON(result)
	},
}

var sqlCmd = &cobra.Command{
	Use:   "sql <file>",
	Short: "Look up metadata for a SQL file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sql, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		client, err := newClient()
		if err != nil {
			return err
		}
		result, err := client.SQLMetadataLookup(cmd.Context(), string(sql), nil)
		if err != nil {
			return err
		}
		return printJSON(result)
	},
}

var workflowCmd = &cobra.Command{
	Use:   "workflow <name> [input-json]",
	Short: "Run a named custom workflow",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		input, err := parseJSONArg(args, 1)
		if err != nil {
			return err
		}
		client, err := newClient()
		if err != nil {
			return err
		}
		result, err := client.RunWorkflow(cmd.Context(), args[0], input)
		if err != nil {
			return err
		}
		return printJSON(result)
	},
}

func init() {
	analyzeCmd.Flags().String("language", "plaintext", "source language tag")
	analyzeCmd.Flags().String("type", "summary", "analysis mode")
	lineageCmd.Flags().String("language", "sql", "source language tag")

	rootCmd.AddCommand(healthCmd, toolsCmd, commandCmd, toolCmd,
		analyzeCmd, lineageCmd, sqlCmd, workflowCmd)
}

// parseJSONArg decodes args[idx] as a JSON object, returning nil when
// the argument is absent.
func parseJSONArg(args []string, idx int) (map[string]any, error) {
	if len(args) <= idx {
		return nil, nil
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(args[idx]), &m); err != nil {
		return nil, errors.New("input must be a JSON object")
	}
	return m, nil
}

func printJSON(raw json.RawMessage) error {
	var buf map[string]any
	if err := json.Unmarshal(raw, &buf); err != nil {
		// Not an object; print as-is.
		fmt.Println(string(raw))
		return nil
	}
	pretty, err := json.MarshalIndent(buf, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(pretty))
	return nil
}
