package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/comercialtoddy/CS2-Coach-AI-sub003/internal/tool"
)

var toolCmd = &cobra.Command{
	Use:   "tool",
	Short: "Inspect and invoke tools",
}

var toolListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered tools",
	RunE:  runToolList,
}

var toolInvokeCmd = &cobra.Command{
	Use:   "invoke NAME",
	Short: "Invoke a tool with JSON input",
	Long:  `Execute a tool with the provided JSON input and print the result.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runToolInvoke,
}

var toolStatsCmd = &cobra.Command{
	Use:   "stats NAME",
	Short: "Show a tool's execution statistics",
	Args:  cobra.ExactArgs(1),
	RunE:  runToolStats,
}

var toolHealthCmd = &cobra.Command{
	Use:   "health",
	Short: "Probe the health of every registered tool",
	RunE:  runToolHealth,
}

// Flags for tool list
var (
	toolListCategory string
)

// Flags for tool invoke
var (
	toolInvokeInput   string
	toolInvokeTimeout time.Duration
	toolInvokeRetries int
)

func runToolList(cmd *cobra.Command, args []string) error {
	fw, err := newFramework()
	if err != nil {
		return err
	}
	defer fw.Close()

	infos := fw.GetTools(tool.Filter{Category: toolListCategory})
	if len(infos) == 0 {
		cmd.Println("No tools registered.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCATEGORY\tPRIORITY\tENABLED\tEXECUTIONS")
	fmt.Fprintln(w, "----\t--------\t--------\t-------\t----------")

	for _, info := range infos {
		d := info.Descriptor
		fmt.Fprintf(w, "%s\t%s\t%s\t%t\t%d\n",
			d.Name, d.Category, d.Priority, d.Enabled, d.ExecutionCount)
	}

	return w.Flush()
}

func runToolInvoke(cmd *cobra.Command, args []string) error {
	fw, err := newFramework()
	if err != nil {
		return err
	}
	defer fw.Close()

	input := map[string]any{}
	if toolInvokeInput != "" {
		if err := json.Unmarshal([]byte(toolInvokeInput), &input); err != nil {
			return fmt.Errorf("invalid --input JSON: %w", err)
		}
	}

	opts := []tool.ExecuteOption{}
	if toolInvokeTimeout > 0 {
		opts = append(opts, tool.WithTimeout(toolInvokeTimeout))
	}
	if toolInvokeRetries > 0 {
		opts = append(opts, tool.WithRetries(toolInvokeRetries))
	}

	result := fw.Execute(cmd.Context(), args[0], input, opts...)

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	cmd.Println(string(out))

	if !result.Success {
		return fmt.Errorf("tool %q failed: %s", args[0], result.Error.Code)
	}
	return nil
}

func runToolStats(cmd *cobra.Command, args []string) error {
	fw, err := newFramework()
	if err != nil {
		return err
	}
	defer fw.Close()

	stats, ok := fw.GetToolStats(args[0])
	if !ok {
		return fmt.Errorf("tool %q not found", args[0])
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Total executions:\t%d\n", stats.TotalExecutions)
	fmt.Fprintf(w, "Successes:\t%d\n", stats.SuccessCount)
	fmt.Fprintf(w, "Failures:\t%d\n", stats.FailureCount)
	fmt.Fprintf(w, "Success rate:\t%.1f%%\n", stats.SuccessRate()*100)
	fmt.Fprintf(w, "Average duration:\t%s\n", stats.AverageExecutionTime)
	if stats.LastError != "" {
		fmt.Fprintf(w, "Last error:\t%s\n", stats.LastError)
	}
	return w.Flush()
}

func runToolHealth(cmd *cobra.Command, args []string) error {
	fw, err := newFramework()
	if err != nil {
		return err
	}
	defer fw.Close()

	report := fw.HealthCheck(cmd.Context())

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TOOL\tSTATE\tMESSAGE")
	fmt.Fprintln(w, "----\t-----\t-------")
	for name, status := range report.Tools {
		fmt.Fprintf(w, "%s\t%s\t%s\n", name, status.State, status.Message)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	cmd.Printf("\nOverall: %s (%s)\n", report.Status.State, report.Status.Message)

	if report.Status.IsUnhealthy() {
		return fmt.Errorf("tool runtime unhealthy")
	}
	return nil
}

func init() {
	toolListCmd.Flags().StringVar(&toolListCategory, "category", "", "Filter by category")

	toolInvokeCmd.Flags().StringVar(&toolInvokeInput, "input", "", "JSON object passed to the tool")
	toolInvokeCmd.Flags().DurationVar(&toolInvokeTimeout, "timeout", 0, "Per-attempt timeout (default from config)")
	toolInvokeCmd.Flags().IntVar(&toolInvokeRetries, "retries", 0, "Number of retries after a failed attempt")

	toolCmd.AddCommand(toolListCmd)
	toolCmd.AddCommand(toolInvokeCmd)
	toolCmd.AddCommand(toolStatsCmd)
	toolCmd.AddCommand(toolHealthCmd)
}
