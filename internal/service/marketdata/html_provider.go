package marketdata

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	apperrors "github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/pkg/errors"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/contract"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/enrichment"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/marketdata/fetcher"
	applog "github.com/rakeshescentual/supplier-price-watchdog-sub002/pkg/log"
)

// SKUPlaceholder URL 템플릿에서 SKU로 치환되는 자리표시자
const SKUPlaceholder = "{sku}"

// HTMLProvider 가격 비교 페이지를 가져와 CSS 선택자로 경쟁사 가격을 추출합니다.
type HTMLProvider struct {
	fetcher     fetcher.Fetcher
	urlTemplate string
	selector    string
	header      http.Header
	bandPercent float64
}

var _ enrichment.Fetcher = (*HTMLProvider)(nil)

// NewHTMLProvider urlTemplate에는 SKUPlaceholder가 포함되어야 합니다.
func NewHTMLProvider(f fetcher.Fetcher, urlTemplate, selector string, header http.Header, bandPercent float64) *HTMLProvider {
	return &HTMLProvider{
		fetcher:     f,
		urlTemplate: urlTemplate,
		selector:    selector,
		header:      header,
		bandPercent: bandPercent,
	}
}

func (p *HTMLProvider) Fetch(ctx context.Context, item *contract.PriceItem) (*contract.MarketData, error) {
	target := strings.ReplaceAll(p.urlTemplate, SKUPlaceholder, url.PathEscape(item.SKU))

	sel, err := fetcher.FetchHTMLSelection(ctx, p.fetcher, target, p.header, p.selector)
	if err != nil {
		return nil, err
	}

	var prices []float64
	skipped := 0
	sel.Each(func(_ int, s *goquery.Selection) {
		text := s.AttrOr("content", s.Text())
		if v, ok := parsePrice(text); ok {
			prices = append(prices, v)
		} else {
			skipped++
		}
	})

	if skipped > 0 {
		applog.WithComponentAndFields(component, applog.Fields{
			"sku":      item.SKU,
			"selector": p.selector,
			"skipped":  skipped,
		}).Debug("가격으로 해석할 수 없는 요소를 건너뛰었습니다")
	}

	md, err := Summarize(prices, ownPrice(item), p.bandPercent)
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.ExecutionFailed, "SKU(%s)의 페이지에서 가격을 해석할 수 없습니다", item.SKU)
	}
	return md, nil
}
