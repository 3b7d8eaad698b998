// Command catalogexport writes the built-in demo catalog to an xlsx
// workbook that the service can import with the xlsx catalog source.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/niksmo/storefront/internal/adapter/fixtures"
	"github.com/niksmo/storefront/internal/adapter/xlsx"
	"github.com/spf13/pflag"
)

const outputFlag = "output"

func main() {
	output := pflag.StringP(outputFlag, "o", "catalog.xlsx", "workbook path")
	pflag.Parse()

	data, err := fixtures.New().LoadCatalog(context.Background())
	if err != nil {
		fallDown(err)
	}

	f, err := os.Create(*output)
	if err != nil {
		fallDown(err)
	}

	if err := xlsx.Write(f, data); err != nil {
		_ = f.Close()
		fallDown(err)
	}
	if err := f.Close(); err != nil {
		fallDown(err)
	}

	fmt.Printf("catalog exported to %q: %d products, %d categories, %d reviews\n",
		*output, len(data.Products), len(data.Categories), len(data.Reviews))
}

func fallDown(err error) {
	slog.Error("failed to export catalog", "err", err)
	os.Exit(2)
}
