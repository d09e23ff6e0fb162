package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Show detailed information about a resource",
}

var describeAssetCmd = &cobra.Command{
	Use:   "asset <id>",
	Short: "Show detailed information about an asset",
	Args:  cobra.ExactArgs(1),
	RunE:  runDescribeAsset,
}

var describePendingCmd = &cobra.Command{
	Use:   "pending <id>",
	Short: "Show detailed information about a discovered candidate",
	Args:  cobra.ExactArgs(1),
	RunE:  runDescribePending,
}

func init() {
	describeCmd.AddCommand(describeAssetCmd)
	describeCmd.AddCommand(describePendingCmd)
}

func runDescribeAsset(_ *cobra.Command, args []string) error {
	data, err := apiClient().Get("/api/v1/assets/" + args[0])
	if err != nil {
		return err
	}

	var a assetItem
	if err := unmarshal(data, &a); err != nil {
		return err
	}

	switch flagOutput {
	case outputJSON:
		printJSON(a)
	case outputYAML:
		printYAML(a)
	default:
		fmt.Printf("ID:               %s\n", a.ID)
		fmt.Printf("Name:             %s\n", a.Name)
		fmt.Printf("Code:             %s\n", orDash(a.Code))
		fmt.Printf("Type:             %s (%s layer)\n", a.Type, a.Layer)
		fmt.Printf("Confirm Status:   %s\n", a.ConfirmStatus)
		fmt.Printf("Business:         %s (%s)\n", orDash(a.BusinessName), orDash(a.BusinessID))
		fmt.Printf("Network:          ip=%s hostname=%s port=%d\n", orDash(a.IP), orDash(a.Hostname), a.Port)
		fmt.Printf("Status:           %s / %s\n", a.Status, a.HealthStatus)
		fmt.Printf("Discovered:       %s via %s (%s)\n", a.DiscoveryTime.Format("2006-01-02 15:04:05"), a.DiscoveryMethod, orDash(a.DiscoverySource))
		if a.ConfirmedAt != nil {
			fmt.Printf("Confirmed:        %s by %s\n", a.ConfirmedAt.Format("2006-01-02 15:04:05"), orDash(a.ConfirmedBy))
		}

		fmt.Printf("\nDependencies (%d):\n", len(a.Dependencies))
		for _, d := range a.Dependencies {
			fmt.Printf("  -> %s (%s, %s)\n", d.TargetAssetName, d.TargetAssetID, d.Type)
		}
		fmt.Printf("\nDependents (%d):\n", len(a.Dependents))
		for _, id := range a.Dependents {
			fmt.Printf("  <- %s\n", id)
		}
	}

	return nil
}

func runDescribePending(_ *cobra.Command, args []string) error {
	data, err := apiClient().Get("/api/v1/pending-assets/" + args[0])
	if err != nil {
		return err
	}

	var p pendingItem
	if err := unmarshal(data, &p); err != nil {
		return err
	}

	switch flagOutput {
	case outputJSON:
		printJSON(p)
	case outputYAML:
		printYAML(p)
	default:
		fmt.Printf("ID:               %s\n", p.ID)
		fmt.Printf("Name:             %s\n", p.Name)
		fmt.Printf("Type:             %s\n", p.Type)
		fmt.Printf("Network:          ip=%s hostname=%s\n", orDash(p.IP), orDash(p.Hostname))
		fmt.Printf("Discovered:       %s via %s (%s)\n", p.DiscoveryTime.Format("2006-01-02 15:04:05"), p.DiscoveryMethod, orDash(p.DiscoverySource))
		fmt.Printf("Confidence:       %d%%\n", p.Confidence)
		if p.Recommended {
			fmt.Printf("Suggested:        %s (%s)\n", orDash(p.SuggestedBusinessName), p.SuggestedBusinessID)
			fmt.Printf("Reason:           %s\n", orDash(p.Reason))
		} else {
			fmt.Println("Suggested:        none")
		}
	}

	return nil
}
