package ctl

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/murillocortez/olhar-autoral/internal/catalog"
)

var errNoImage = errors.New("no image available")

func newCatalogCommand(opts *globalOptions) *cobra.Command {
	var (
		folder string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the images the server would load",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			records, err := opts.loadRecords(cmd)
			if err != nil {
				return err
			}
			if folder != "" {
				records = catalog.Filter(records, folder)
			}

			if asJSON {
				return writeJSON(cmd, records)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "FOLDER\tNAME\tURL")
			for _, r := range records {
				fmt.Fprintf(w, "%s\t%s\t%s\n", r.Category, r.Name, r.PublicURL)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&folder, "folder", "", "only list this folder")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print records as JSON")

	return cmd
}

func newResolveCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve CATEGORY [FILENAME]",
		Short: "Resolve an image URL the way the site does",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := opts.loadRecords(cmd)
			if err != nil {
				return err
			}

			var filename string
			if len(args) == 2 {
				filename = args[1]
			}

			url, ok := catalog.Resolve(records, args[0], filename, nil)
			if !ok {
				return fmt.Errorf("%w for category %q", errNoImage, args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), url)
			return nil
		},
	}
}

func newGalleryCommand(opts *globalOptions) *cobra.Command {
	var seed uint64

	cmd := &cobra.Command{
		Use:   "gallery",
		Short: "Compose the home page gallery",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			records, err := opts.loadRecords(cmd)
			if err != nil {
				return err
			}

			var rnd catalog.Rand
			if seed != 0 {
				rnd = rand.New(rand.NewPCG(seed, seed))
			}

			return writeJSON(cmd, catalog.Compose(records, catalog.DefaultLayout, rnd))
		},
	}

	cmd.Flags().Uint64Var(&seed, "seed", 0, "seed for a reproducible composition (0 is random)")

	return cmd
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
