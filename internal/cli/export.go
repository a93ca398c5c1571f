package cli

import (
	"github.com/rcliao/mailthread/internal/model"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export messages as JSON",
		Long:  "Export stored messages as a JSON array in import order. Filter by mailbox with -m. The output is accepted by import --json.",
		Run:   runExport,
	}

	cmd.Flags().StringP("mailbox", "m", "", "Filter by mailbox")

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	mailbox, _ := cmd.Flags().GetString("mailbox")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	msgs, err := s.ExportAll(cmd.Context(), mailbox)
	if err != nil {
		exitErr("export", err)
	}
	if msgs == nil {
		msgs = []model.Message{}
	}
	printJSON(msgs)
}
