package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var pipelineCmd = &cobra.Command{
	Use:   "pipeline",
	Short: "Inspect and advance swap pipelines",
}

var pipelineStatusCmd = &cobra.Command{
	Use:   "status <pipeline_id>",
	Short: "Show the task states of a pipeline",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		res, err := appInstance.Elsa.PipelineStatus(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Pipeline %s\n", res.Data.PipelineID)
		for _, task := range res.Data.Status {
			line := fmt.Sprintf("  task %s [%s] %s", task.TaskID, task.Status, task.Description)
			if task.TxHash != "" {
				line += " tx=" + task.TxHash
			}
			fmt.Println(line)
		}

		printBilling(res.Billing, res.Meta)
		return nil
	},
}

var pipelineSubmitCmd = &cobra.Command{
	Use:   "submit-hash <task_id> <tx_hash>",
	Short: "Report an externally signed transaction back to a task",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		res, err := appInstance.Elsa.SubmitTransactionHash(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}

		fmt.Printf("Task %s: %s\n", res.Data.TaskID, res.Data.Status)
		if res.Data.Message != "" {
			fmt.Println(res.Data.Message)
		}

		printBilling(res.Billing, res.Meta)
		return nil
	},
}

func init() {
	pipelineCmd.AddCommand(pipelineStatusCmd)
	pipelineCmd.AddCommand(pipelineSubmitCmd)
}
