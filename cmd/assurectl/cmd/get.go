package cmd

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"
)

var (
	flagPage       int
	flagPerPage    int
	flagBusinessID string
	flagType       string
	flagLayer      string
	flagSearch     string
	flagRecommend  bool
)

var getCmd = &cobra.Command{
	Use:   "get",
	Short: "List inventory resources",
}

var getAssetsCmd = &cobra.Command{
	Use:     "assets",
	Aliases: []string{"asset"},
	Short:   "List confirmed inventory assets",
	RunE:    runGetAssets,
}

var getPendingCmd = &cobra.Command{
	Use:     "pending",
	Aliases: []string{"pending-assets"},
	Short:   "List discovered candidates awaiting confirmation",
	RunE:    runGetPending,
}

func init() {
	getCmd.AddCommand(getAssetsCmd)
	getCmd.AddCommand(getPendingCmd)

	getCmd.PersistentFlags().IntVar(&flagPage, "page", 1, "Page number")
	getCmd.PersistentFlags().IntVar(&flagPerPage, "per-page", 20, "Results per page")

	getAssetsCmd.Flags().StringVar(&flagBusinessID, "business", "", "Filter by business ID")
	getAssetsCmd.Flags().StringVar(&flagType, "type", "", "Filter by asset type (comma-separated)")
	getAssetsCmd.Flags().StringVar(&flagLayer, "layer", "", "Filter by layer (comma-separated)")
	getAssetsCmd.Flags().StringVar(&flagSearch, "search", "", "Search by name, code, IP or hostname")

	getPendingCmd.Flags().BoolVar(&flagRecommend, "recommended", false, "Only candidates with a business recommendation")
}

func runGetAssets(_ *cobra.Command, _ []string) error {
	q := url.Values{}
	q.Set("page", strconv.Itoa(flagPage))
	q.Set("per_page", strconv.Itoa(flagPerPage))
	if flagBusinessID != "" {
		q.Set("business_id", flagBusinessID)
	}
	if flagType != "" {
		q.Set("type", flagType)
	}
	if flagLayer != "" {
		q.Set("layer", flagLayer)
	}
	if flagSearch != "" {
		q.Set("search", flagSearch)
	}

	data, err := apiClient().Get("/api/v1/assets?" + q.Encode())
	if err != nil {
		return err
	}

	var list listEnvelope[assetItem]
	if err := unmarshal(data, &list); err != nil {
		return err
	}

	switch flagOutput {
	case outputJSON:
		printJSON(list.Data)
	case outputYAML:
		printYAML(list.Data)
	default:
		t := newTable("ID", "NAME", "TYPE", "LAYER", "BUSINESS", "STATUS", "HEALTH", "EDGES")
		for _, a := range list.Data {
			t.AddRow(
				a.ID,
				a.Name,
				a.Type,
				a.Layer,
				orDash(a.BusinessName),
				a.Status,
				a.HealthStatus,
				strconv.Itoa(len(a.Dependencies)),
			)
		}
		t.Flush()
		printPagination(list.Total, list.Page, list.PerPage, list.TotalPages)
	}

	return nil
}

func runGetPending(_ *cobra.Command, _ []string) error {
	q := url.Values{}
	q.Set("page", strconv.Itoa(flagPage))
	q.Set("per_page", strconv.Itoa(flagPerPage))
	if flagRecommend {
		q.Set("recommended", "true")
	}

	data, err := apiClient().Get("/api/v1/pending-assets?" + q.Encode())
	if err != nil {
		return err
	}

	var list listEnvelope[pendingItem]
	if err := unmarshal(data, &list); err != nil {
		return err
	}

	switch flagOutput {
	case outputJSON:
		printJSON(list.Data)
	case outputYAML:
		printYAML(list.Data)
	default:
		t := newTable("ID", "NAME", "TYPE", "SOURCE", "CONFIDENCE", "SUGGESTED BUSINESS", "REASON")
		for _, p := range list.Data {
			suggested := "-"
			if p.Recommended {
				suggested = p.SuggestedBusinessName
				if suggested == "" {
					suggested = p.SuggestedBusinessID
				}
			}
			t.AddRow(
				p.ID,
				p.Name,
				p.Type,
				orDash(p.DiscoverySource),
				fmt.Sprintf("%d%%", p.Confidence),
				suggested,
				orDash(p.Reason),
			)
		}
		t.Flush()
		printPagination(list.Total, list.Page, list.PerPage, list.TotalPages)
	}

	return nil
}
