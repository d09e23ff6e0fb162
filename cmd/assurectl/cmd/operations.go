package cmd

import (
	"fmt"
	"net/url"
	"sort"

	"github.com/spf13/cobra"
)

var (
	flagBusiness     string
	flagBusinessName string
	flagConfirmedBy  string
	flagEdgeType     string
)

var confirmCmd = &cobra.Command{
	Use:   "confirm <pending-id>",
	Short: "Confirm a discovered candidate into the inventory",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfirm,
}

var ignoreCmd = &cobra.Command{
	Use:   "ignore <pending-id>",
	Short: "Discard a discovered candidate",
	Args:  cobra.ExactArgs(1),
	RunE:  runIgnore,
}

var confirmAllCmd = &cobra.Command{
	Use:   "confirm-all",
	Short: "Confirm every candidate that has a business recommendation",
	RunE:  runConfirmAll,
}

var linkCmd = &cobra.Command{
	Use:   "link <source-id> <target-id>",
	Short: "Add a dependency edge between two assets",
	Args:  cobra.ExactArgs(2),
	RunE:  runLink,
}

var unlinkCmd = &cobra.Command{
	Use:   "unlink <source-id> <target-id>",
	Short: "Remove a dependency edge between two assets",
	Args:  cobra.ExactArgs(2),
	RunE:  runUnlink,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show inventory statistics",
	RunE:  runStats,
}

func init() {
	confirmCmd.Flags().StringVar(&flagBusiness, "business", "", "Business ID to assign (required)")
	confirmCmd.Flags().StringVar(&flagBusinessName, "business-name", "", "Business display name")
	confirmCmd.Flags().StringVar(&flagConfirmedBy, "by", "", "Operator performing the confirmation")
	_ = confirmCmd.MarkFlagRequired("business")

	confirmAllCmd.Flags().StringVar(&flagBusiness, "business", "", "Only confirm candidates suggested for this business ID")
	confirmAllCmd.Flags().StringVar(&flagConfirmedBy, "by", "", "Operator performing the confirmation")

	linkCmd.Flags().StringVar(&flagEdgeType, "type", "connect", "Edge type: deploy, connect, data, service")
	unlinkCmd.Flags().StringVar(&flagEdgeType, "type", "connect", "Edge type: deploy, connect, data, service")
}

func runConfirm(_ *cobra.Command, args []string) error {
	body := map[string]string{
		"business_id": flagBusiness,
	}
	if flagBusinessName != "" {
		body["business_name"] = flagBusinessName
	}
	if flagConfirmedBy != "" {
		body["confirmed_by"] = flagConfirmedBy
	}

	data, err := apiClient().Post("/api/v1/pending-assets/"+args[0]+"/confirm", body)
	if err != nil {
		return err
	}

	var a assetItem
	if err := unmarshal(data, &a); err != nil {
		return err
	}

	fmt.Printf("Confirmed %q into business %q (%s)\n", a.Name, a.BusinessName, a.BusinessID)
	return nil
}

func runIgnore(_ *cobra.Command, args []string) error {
	if _, err := apiClient().Post("/api/v1/pending-assets/"+args[0]+"/ignore", nil); err != nil {
		return err
	}

	fmt.Printf("Ignored candidate %s\n", args[0])
	return nil
}

func runConfirmAll(_ *cobra.Command, _ []string) error {
	body := map[string]string{}
	if flagBusiness != "" {
		body["business_id"] = flagBusiness
	}
	if flagConfirmedBy != "" {
		body["confirmed_by"] = flagConfirmedBy
	}

	data, err := apiClient().Post("/api/v1/pending-assets/confirm-all", body)
	if err != nil {
		return err
	}

	var result confirmAllOutcome
	if err := unmarshal(data, &result); err != nil {
		return err
	}

	switch flagOutput {
	case outputJSON:
		printJSON(result)
	case outputYAML:
		printYAML(result)
	default:
		fmt.Printf("Confirmed %d candidates, %d failed\n", result.Confirmed, result.Failed)
		for _, item := range result.Items {
			if item.Confirmed {
				fmt.Printf("  ok   %s (%s) -> %s\n", item.Name, item.PendingAssetID, item.BusinessID)
			} else {
				fmt.Printf("  fail %s (%s): %s\n", item.Name, item.PendingAssetID, item.Error)
			}
		}
	}

	return nil
}

func runLink(_ *cobra.Command, args []string) error {
	body := map[string]string{
		"target_asset_id": args[1],
		"type":            flagEdgeType,
	}

	if _, err := apiClient().Post("/api/v1/assets/"+args[0]+"/dependencies", body); err != nil {
		return err
	}

	fmt.Printf("Linked %s -[%s]-> %s\n", args[0], flagEdgeType, args[1])
	return nil
}

func runUnlink(_ *cobra.Command, args []string) error {
	q := url.Values{}
	q.Set("type", flagEdgeType)

	path := "/api/v1/assets/" + args[0] + "/dependencies/" + args[1] + "?" + q.Encode()
	if err := apiClient().Delete(path); err != nil {
		return err
	}

	fmt.Printf("Unlinked %s -[%s]-> %s\n", args[0], flagEdgeType, args[1])
	return nil
}

func runStats(_ *cobra.Command, _ []string) error {
	data, err := apiClient().Get("/api/v1/statistics")
	if err != nil {
		return err
	}

	var stats statisticsItem
	if err := unmarshal(data, &stats); err != nil {
		return err
	}

	switch flagOutput {
	case outputJSON:
		printJSON(stats)
	case outputYAML:
		printYAML(stats)
	default:
		fmt.Printf("Total assets:      %d\n", stats.TotalAssets)
		fmt.Printf("Pending review:    %d\n", stats.PendingCount)
		fmt.Printf("Dependency edges:  %d\n", stats.DependencyEdges)

		printBreakdown("By layer", stats.ByLayer)
		printBreakdown("By type", stats.ByType)
		printBreakdown("By status", stats.ByStatus)
		printBreakdown("By health", stats.ByHealth)

		if len(stats.ByBusiness) > 0 {
			fmt.Println("\nBy business:")
			keys := make([]string, 0, len(stats.ByBusiness))
			for k := range stats.ByBusiness {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				b := stats.ByBusiness[k]
				fmt.Printf("  %-30s %d\n", b.BusinessName+" ("+b.BusinessID+")", b.AssetCount)
			}
		}
	}

	return nil
}

func printBreakdown(title string, m map[string]int64) {
	fmt.Printf("\n%s:\n", title)
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("  %-20s %d\n", k, m[k])
	}
}
