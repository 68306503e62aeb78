package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jargon-id/jargon/internal/api"
	"github.com/jargon-id/jargon/internal/dashboard"
	"github.com/jargon-id/jargon/internal/logging"
	"github.com/jargon-id/jargon/internal/request"
)

// --- Requests Command ---

var requestsCmd = &cobra.Command{
	Use:   "requests",
	Short: "List disclosure requests",
	Long: `Show the disclosure requests organizations have filed against your
vault, with their derived status at this instant.`,
	Example: `  jargon requests
  jargon requests --filter pending`,
	RunE: runRequests,
}

func init() {
	f := requestsCmd.Flags()
	f.String("filter", "all", "Tab to show: all, pending, approve, rejected, expired")
	rootCmd.AddCommand(requestsCmd)
}

func runRequests(cmd *cobra.Command, args []string) error {
	sess, err := RequireSession()
	if err != nil {
		return err
	}

	filterFlag, _ := cmd.Flags().GetString("filter")
	sel, ok := request.ParseSelector(filterFlag)
	if !ok {
		return fmt.Errorf("unknown filter %q (use all, pending, approve, rejected, expired)", filterFlag)
	}

	stale := dashboard.OpenStaleCache(cfg.ConfigDir)
	view := dashboard.NewView(backendClient(), sess, stale)
	defer view.Close()

	if err := view.Refresh(cmd.Context()); err != nil {
		if view.Loaded() {
			printWarning("Could not refresh: %v (showing cached data)", err)
		} else {
			return err
		}
	} else if err := dashboard.SaveStaleCache(stale, cfg.ConfigDir); err != nil {
		logging.Warn("Could not persist request cache", logging.Err(err))
	}

	now := time.Now()
	rows := view.Rows(now)
	counts := request.Counts(rows)

	if counts[request.SelectAll] == 0 {
		printInfo("No disclosure requests")
		return nil
	}

	printHeader("Data Requests")
	printInfo("All: %d | Pending: %d | Approve: %d | Rejected: %d | Expired: %d",
		counts[request.SelectAll],
		counts[request.SelectPending],
		counts[request.SelectApproved],
		counts[request.SelectRejected],
		counts[request.SelectExpired])
	fmt.Println()

	filtered := request.Filter(rows, sel)
	if len(filtered) == 0 {
		printInfo("No %s requests found", sel)
		return nil
	}

	for _, row := range filtered {
		printRequestRow(row)
	}

	if counts[request.SelectPending] > 0 {
		fmt.Println()
		printInfo("To approve: jargon approve <request-id>")
		printInfo("To reject:  jargon reject <request-id>")
	}
	return nil
}

func printRequestRow(row request.Row) {
	req, d := row.Request, row.Derived

	when := "unknown time"
	if req.CreatedAtValid {
		when = req.CreatedAt.Format("2006-01-02 15:04")
	}

	line := fmt.Sprintf("[%s] %-8s %-14s from %s, requested %s",
		req.ID, d.Status, req.DataType, req.Organization(), when)

	switch {
	case d.Malformed:
		printWarning("%s (malformed record, treated as expired)", line)
	case d.Status == request.StatusPending:
		printInfo("%s - expires in %d min", line, d.RemainingMinutes)
	case d.Status == request.StatusExpired:
		printInfo("%s - duration exceeded", line)
	default:
		printInfo("%s", line)
	}
}

// --- Approve Command ---

var approveCmd = &cobra.Command{
	Use:   "approve <request-id>",
	Short: "Approve a disclosure request",
	Long:  `Approve a pending disclosure request so the organization can read the attribute until its window closes.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runApprove,
}

func init() {
	rootCmd.AddCommand(approveCmd)
}

func runApprove(cmd *cobra.Command, args []string) error {
	return decide(cmd, args[0], api.DecisionApprove)
}

// --- Reject Command ---

var rejectCmd = &cobra.Command{
	Use:   "reject <request-id>",
	Short: "Reject a disclosure request",
	Args:  cobra.ExactArgs(1),
	RunE:  runReject,
}

func init() {
	rootCmd.AddCommand(rejectCmd)
}

func runReject(cmd *cobra.Command, args []string) error {
	return decide(cmd, args[0], api.DecisionReject)
}

func decide(cmd *cobra.Command, requestID string, decision api.Decision) error {
	sess, err := RequireSession()
	if err != nil {
		return err
	}

	stale := dashboard.OpenStaleCache(cfg.ConfigDir)
	view := dashboard.NewView(backendClient(), sess, stale)
	defer view.Close()

	if err := view.Refresh(cmd.Context()); err != nil {
		return err
	}

	if err := view.Decide(cmd.Context(), requestID, decision); err != nil {
		return err
	}
	if err := dashboard.SaveStaleCache(stale, cfg.ConfigDir); err != nil {
		logging.Warn("Could not persist request cache", logging.Err(err))
	}

	for _, row := range view.Rows(time.Now()) {
		if row.Request.ID == requestID {
			logging.Info("Decision recorded",
				logging.String("requestID", requestID),
				logging.String("status", string(row.Derived.Status)))
			return nil
		}
	}

	printSuccess("Decision submitted")
	return nil
}
