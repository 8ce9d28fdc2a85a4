package commands

import (
	"fmt"
	"os"

	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/cache"
	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/reports"
	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/services"
	"github.com/RafiurRahmanSaikat/house-rent-backend/pkg/errors"
	"github.com/RafiurRahmanSaikat/house-rent-backend/pkg/logger"
	"github.com/spf13/cobra"
)

var importCategoriesCmd = &cobra.Command{
	Use:   "import-categories FILE.xlsx",
	Short: "Import categories from an Excel workbook",
	Long: `Import categories from the "Categories" sheet of an XLSX workbook, or its
first sheet. Column A holds the name and column B an optional slug; the first
row is a header. Rows whose slug already exists are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		rows, err := reports.ReadCategories(f)
		if err != nil {
			return err
		}

		st, err := openStores(cfg)
		if err != nil {
			return err
		}
		defer st.close()

		catalog := services.NewCatalogService(st.categories, st.houses, cache.Noop{})
		var created, skipped int
		for _, row := range rows {
			in := services.CategoryInput{Name: &row.Name}
			if row.Slug != "" {
				in.Slug = &row.Slug
			}
			if _, err := catalog.CreateCategory(cmd.Context(), in); err != nil {
				if errors.Is(err, errors.ErrCodeValidation) {
					logger.Warn("Skipping category", "name", row.Name, "error", err)
					skipped++
					continue
				}
				return err
			}
			created++
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d categories, skipped %d\n", created, skipped)
		return nil
	},
}
