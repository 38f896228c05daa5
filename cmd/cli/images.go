package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/signlingo/backend/pkg/client/signlingo"
)

func makeImagesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "images",
		Short: "List reference sign images",
		RunE: func(cmd *cobra.Command, args []string) error {
			return dumpImages()
		},
	}
}

func dumpImages() error {
	client, err := signlingo.NewClient(endpoint, os.Getenv("SIGNLINGO_TOKEN"))
	if err != nil {
		return err
	}

	images, err := client.ListImages()
	if err != nil {
		return err
	}

	for _, name := range images {
		fmt.Println(name)
	}

	return nil
}
