package marketdata

import (
	"context"
	"net/http"
	"net/url"

	apperrors "github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/pkg/errors"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/contract"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/enrichment"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/marketdata/fetcher"
	"github.com/tidwall/gjson"
)

// JSONAPIProvider 가격 API에 sku 쿼리로 요청하고 gjson 경로로 경쟁사 가격을 꺼냅니다.
//
//	GET {baseURL}?sku=ABC-1
//	{"competitors":[{"name":"x","price":9.99}, ...]}   // pricesPath: "competitors.#.price"
type JSONAPIProvider struct {
	fetcher     fetcher.Fetcher
	baseURL     string
	pricesPath  string
	header      http.Header
	bandPercent float64
}

var _ enrichment.Fetcher = (*JSONAPIProvider)(nil)

// NewJSONAPIProvider 새로운 JSONAPIProvider를 생성합니다.
func NewJSONAPIProvider(f fetcher.Fetcher, baseURL, pricesPath string, header http.Header, bandPercent float64) *JSONAPIProvider {
	return &JSONAPIProvider{
		fetcher:     f,
		baseURL:     baseURL,
		pricesPath:  pricesPath,
		header:      header,
		bandPercent: bandPercent,
	}
}

func (p *JSONAPIProvider) requestURL(sku string) (string, error) {
	u, err := url.Parse(p.baseURL)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.InvalidInput, "시장 데이터 API 주소가 올바르지 않습니다")
	}
	q := u.Query()
	q.Set("sku", sku)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (p *JSONAPIProvider) Fetch(ctx context.Context, item *contract.PriceItem) (*contract.MarketData, error) {
	target, err := p.requestURL(item.SKU)
	if err != nil {
		return nil, err
	}

	doc, err := fetcher.FetchJSON(ctx, p.fetcher, target, p.header)
	if err != nil {
		return nil, err
	}

	var prices []float64
	collect := func(v gjson.Result) {
		switch v.Type {
		case gjson.Number:
			prices = append(prices, v.Float())
		case gjson.String:
			if f, ok := parsePrice(v.String()); ok {
				prices = append(prices, f)
			}
		}
	}

	res := doc.Get(p.pricesPath)
	if res.IsArray() {
		res.ForEach(func(_, v gjson.Result) bool {
			collect(v)
			return true
		})
	} else {
		collect(res)
	}

	md, err := Summarize(prices, ownPrice(item), p.bandPercent)
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.ExecutionFailed, "SKU(%s)의 경쟁사 가격이 응답(%s)에 없습니다", item.SKU, p.pricesPath)
	}
	return md, nil
}
