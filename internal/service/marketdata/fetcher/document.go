package fetcher

import (
	"context"
	"io"
	"net/http"

	"github.com/PuerkitoBio/goquery"
	apperrors "github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/pkg/errors"
	"github.com/tidwall/gjson"
	"golang.org/x/net/html/charset"
)

// MaxResponseBytes 응답 본문을 읽을 최대 크기 (10MB)
const MaxResponseBytes = 10 * 1024 * 1024

func readLimited(r io.Reader, url string) ([]byte, error) {
	b, err := io.ReadAll(io.LimitReader(r, MaxResponseBytes+1))
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.Unavailable, "응답 본문(%s)을 읽는 중 에러가 발생했습니다", url)
	}
	if len(b) > MaxResponseBytes {
		return nil, apperrors.Newf(apperrors.ExecutionFailed, "응답 본문(%s)이 허용 크기(%d bytes)를 초과했습니다", url, MaxResponseBytes)
	}
	return b, nil
}

// FetchJSON url의 JSON 응답을 읽어 gjson.Result로 반환합니다.
func FetchJSON(ctx context.Context, f Fetcher, url string, header http.Header) (gjson.Result, error) {
	resp, err := Get(ctx, f, url, header)
	if err != nil {
		return gjson.Result{}, apperrors.Wrapf(err, apperrors.Unavailable, "JSON API(%s) 요청 중 에러가 발생했습니다", redactRawURL(url))
	}
	defer resp.Body.Close()

	if err := CheckResponseStatus(resp); err != nil {
		return gjson.Result{}, err
	}

	body, err := readLimited(resp.Body, redactRawURL(url))
	if err != nil {
		return gjson.Result{}, err
	}
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, apperrors.Newf(apperrors.ParsingFailed, "JSON API(%s)의 응답이 올바른 JSON이 아닙니다", redactRawURL(url))
	}

	return gjson.ParseBytes(body), nil
}

// FetchHTMLDocument url의 HTML 문서를 가져와 파싱합니다.
// Content-Type의 charset을 보고 비 UTF-8 문서도 UTF-8로 변환합니다.
func FetchHTMLDocument(ctx context.Context, f Fetcher, url string, header http.Header) (*goquery.Document, error) {
	resp, err := Get(ctx, f, url, header)
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.Unavailable, "HTML 페이지(%s) 요청 중 에러가 발생했습니다", redactRawURL(url))
	}
	defer resp.Body.Close()

	if err := CheckResponseStatus(resp); err != nil {
		return nil, err
	}

	utf8Reader, err := charset.NewReader(io.LimitReader(resp.Body, MaxResponseBytes), resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.ParsingFailed, "페이지(%s)의 인코딩 변환에 실패했습니다", redactRawURL(url))
	}

	doc, err := goquery.NewDocumentFromReader(utf8Reader)
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.ParsingFailed, "페이지(%s)의 HTML 파싱에 실패했습니다", redactRawURL(url))
	}

	return doc, nil
}

// FetchHTMLSelection 문서에서 selector에 해당하는 요소를 찾습니다.
// 일치하는 요소가 없으면 페이지 구조가 바뀐 것으로 보고 에러를 반환합니다.
func FetchHTMLSelection(ctx context.Context, f Fetcher, url string, header http.Header, selector string) (*goquery.Selection, error) {
	doc, err := FetchHTMLDocument(ctx, f, url, header)
	if err != nil {
		return nil, err
	}

	sel := doc.Find(selector)
	if sel.Length() == 0 {
		return nil, apperrors.Newf(apperrors.ExecutionFailed, "페이지(%s)에서 선택자(%s)에 해당하는 요소가 없습니다. 문서 구조가 변경되었는지 확인하세요", redactRawURL(url), selector)
	}

	return sel, nil
}
