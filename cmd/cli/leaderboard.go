package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/signlingo/backend/pkg/client/signlingo"
)

func makeLeaderboardCommand() *cobra.Command {
	var page, pageSize int
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Dump a leaderboard page",
		RunE: func(cmd *cobra.Command, args []string) error {
			return dumpLeaderboard(page, pageSize)
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 10, "Page size")

	return cmd
}

func dumpLeaderboard(page, pageSize int) error {
	client, err := signlingo.NewClient(endpoint, os.Getenv("SIGNLINGO_TOKEN"))
	if err != nil {
		return err
	}

	res, err := client.LoadLeaderboard(page, pageSize)
	if err != nil {
		return err
	}

	for _, entry := range res.Items {
		fmt.Printf("%4d\t%s\t%d\n", entry.Position, entry.Username, entry.Score)
	}

	return nil
}

func makeRankCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rank",
		Short: "Show the authenticated user's rank",
		RunE: func(cmd *cobra.Command, args []string) error {
			return dumpRank()
		},
	}
}

func dumpRank() error {
	client, err := signlingo.NewClient(endpoint, os.Getenv("SIGNLINGO_TOKEN"))
	if err != nil {
		return err
	}

	entry, err := client.LoadMyRank()
	if err != nil {
		return err
	}

	fmt.Printf("#%d\t%s\t%d points\n", entry.Position, entry.Username, entry.Score)
	return nil
}
