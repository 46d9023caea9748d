package report

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/nrs-tools/vendor-atlas/pkg/models/domain"
	"github.com/nrs-tools/vendor-atlas/pkg/scrape"
	"github.com/nrs-tools/vendor-atlas/pkg/scrape/query"
)

// SweepDetails fetches the item-level detail report for every vendor in the
// index. Fetches run on a bounded worker pool, but results are collected per
// vendor and flattened in index order, so output is deterministic and item
// order within one vendor is never disturbed.
func (c *Controller) SweepDetails(ctx context.Context, index *domain.VendorIndex, p domain.Period) []domain.VendorDetailItem {
	logger := zerolog.Ctx(ctx)
	names := index.Names()
	if len(names) == 0 {
		return nil
	}
	logger.Info().Int("vendors", len(names)).Int("workers", c.workers).Msg("sweeping vendor details")

	perVendor := make([][]domain.VendorDetailItem, len(names))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < c.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				name := names[i]
				id, _ := index.Get(name)
				perVendor[i] = c.fetchVendorDetail(ctx, name, id, p)
			}
		}()
	}

	for i := range names {
		select {
		case <-ctx.Done():
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	var all []domain.VendorDetailItem
	for _, items := range perVendor {
		all = append(all, items...)
	}
	logger.Info().Int("items", len(all)).Msg("detail sweep complete")
	return all
}

func (c *Controller) fetchVendorDetail(ctx context.Context, name, id string, p domain.Period) []domain.VendorDetailItem {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("vendor", name).Msg("fetching vendor detail")

	body, err := c.fetcher.FetchVendorDetail(ctx, id, p)
	if err != nil {
		logger.Warn().Err(err).Str("vendor", name).Msg("vendor detail fetch failed")
		return nil
	}

	items := scrape.ParseVendorDetail(body, name, id)
	pdfURL := query.PDFURL(c.baseURL, id, p, query.PDFDownload)
	for i := range items {
		items[i].PDFURL = pdfURL
	}
	return items
}
