// Copyright q9good, 2026. All rights reserved.

// Package crawl queries the SSE STAR-market audit system for IPO
// applications and downloads their disclosure PDFs into the source tree
// the convert stage consumes.
package crawl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/q9good/sse-crawler/internal/httputil"
	"github.com/q9good/sse-crawler/pkg/types"
)

// Base URLs for the SSE query and static-content hosts. Declared as vars
// so tests can substitute httptest servers.
var (
	queryBase    = "http://query.sse.com.cn"
	downloadBase = "http://static.sse.com.cn/stock"
)

// sseReferer is required by the query gateway; requests without it are
// rejected with an empty result set.
const sseReferer = "https://kcb.sse.com.cn"

// sseDateFormat is the timestamp layout used by the audit system.
const sseDateFormat = "20060102150405"

// Client talks to the SSE audit query endpoints.
type Client struct {
	http *http.Client
	cfg  types.CrawlConfig
}

// NewClient wraps an *http.Client with the headers and retry behavior the
// SSE endpoints require.
func NewClient(httpClient *http.Client, cfg types.CrawlConfig) *Client {
	return &Client{http: httpClient, cfg: cfg}
}

// get issues a JSONP query and returns the unwrapped JSON payload.
func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("Referer", sseReferer)

	resp, err := httputil.DoWithRetry(ctx, c.http, req, 0)
	if err != nil {
		return nil, fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, rawURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	return unwrapJSONP(body)
}

// unwrapJSONP strips the jsonpCallbackNNN(...) envelope the query gateway
// wraps every payload in, returning the inner JSON.
func unwrapJSONP(body []byte) ([]byte, error) {
	s := string(body)
	start := strings.Index(s, "(")
	end := strings.LastIndex(s, ")")
	if start < 0 || end < start {
		return nil, fmt.Errorf("response is not a JSONP payload")
	}
	return []byte(s[start+1 : end]), nil
}

type overviewResponse struct {
	Result []overviewRow `json:"result"`
}

type overviewRow struct {
	StockAuditName string `json:"stockAuditName"`
	StockAuditNum  string `json:"stockAuditNum"`
	CurrStatus     int    `json:"currStatus"`
	RegisteResult  *int   `json:"registeResult"`
	AuditApplyDate string `json:"auditApplyDate"`
	UpdateDate     string `json:"updateDate"`
}

// CompanyOverview looks up the audit record for a company by exact name.
func (c *Client) CompanyOverview(ctx context.Context, name string) (*types.CompanyInfo, error) {
	u := fmt.Sprintf(
		"%s/statusAction.do?jsonCallBack=jsonpCallback42305&isPagination=true&sqlId=SH_XM_LB&pageHelp.pageSize=20&keyword=%s&_=%d",
		queryBase, url.QueryEscape(name), time.Now().UnixMilli())

	payload, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}

	var resp overviewResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		return nil, fmt.Errorf("parsing overview response: %w", err)
	}
	if len(resp.Result) == 0 {
		return nil, fmt.Errorf("no audit record for %q", name)
	}

	row := resp.Result[0]
	auditNum, err := strconv.Atoi(row.StockAuditNum)
	if err != nil {
		return nil, fmt.Errorf("parsing audit number %q: %w", row.StockAuditNum, err)
	}

	info := &types.CompanyInfo{
		Name:        row.StockAuditName,
		AuditNumber: auditNum,
		Status:      types.AuditStatus(row.CurrStatus),
	}
	if info.Status < types.StatusAccepted || info.Status > types.StatusRegistered {
		info.Status = types.StatusUnknown
	}
	if info.Status == types.StatusRegistered && row.RegisteResult != nil {
		info.RegisterResult = types.RegisterResult(*row.RegisteResult)
	}

	if t, parseErr := time.Parse(sseDateFormat, row.AuditApplyDate); parseErr == nil {
		info.ApplyDate = t
	}
	if t, parseErr := time.Parse(sseDateFormat, row.UpdateDate); parseErr == nil {
		info.UpdateDate = t
	}
	return info, nil
}

type disclosureResponse struct {
	Result []disclosureRow `json:"result"`
}

type disclosureRow struct {
	FileTitle       string `json:"fileTitle"`
	FilePath        string `json:"filePath"`
	FileType        int    `json:"fileType"`
	FileVersion     *int   `json:"fileVersion"`
	CompanyFullName string `json:"companyFullName"`
}

// Disclosures fetches the information-disclosure filings for an audit
// number and classifies each into its category subdirectory.
func (c *Client) Disclosures(ctx context.Context, auditNumber int) ([]types.Filing, error) {
	u := fmt.Sprintf(
		"%s/commonSoaQuery.do?jsonCallBack=jsonpCallback99435173&isPagination=false&sqlId=GP_GPZCZ_SHXXPL&stockAuditNum=%d&_=%d",
		queryBase, auditNumber, time.Now().UnixMilli())

	payload, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}

	var resp disclosureResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		return nil, fmt.Errorf("parsing disclosure response: %w", err)
	}

	filings := make([]types.Filing, 0, len(resp.Result))
	for _, row := range resp.Result {
		version := 0
		if row.FileVersion != nil {
			version = *row.FileVersion
		}
		category, err := classifyFiling(row.FileType, version, row.FileTitle)
		if err != nil {
			return nil, fmt.Errorf("classifying %q: %w", row.FileTitle, err)
		}
		f, err := buildFiling(row.CompanyFullName, category, row.FileTitle, row.FilePath)
		if err != nil {
			return nil, err
		}
		filings = append(filings, f)
	}
	return filings, nil
}

type announceResponse struct {
	Result []announceRow `json:"result"`
}

type announceRow struct {
	FileTitle  string `json:"fileTitle"`
	FilePath   string `json:"filePath"`
	StockAudit []struct {
		CompanyFullName string `json:"companyFullName"`
	} `json:"stockAudit"`
}

// Announcements fetches the listing-committee meeting announcements and
// results for an audit number. They all land in the results category.
func (c *Client) Announcements(ctx context.Context, auditNumber int) ([]types.Filing, error) {
	u := fmt.Sprintf(
		"%s/commonSoaQuery.do?jsonCallBack=jsonpCallback42495292&isPagination=false&sqlId=GP_GPZCZ_SSWHYGGJG&fileType=1,2,3,4&stockAuditNum=%d&_=%d",
		queryBase, auditNumber, time.Now().UnixMilli())

	payload, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}

	var resp announceResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		return nil, fmt.Errorf("parsing announcement response: %w", err)
	}

	filings := make([]types.Filing, 0, len(resp.Result))
	for _, row := range resp.Result {
		if len(row.StockAudit) == 0 {
			return nil, fmt.Errorf("announcement %q has no company record", row.FileTitle)
		}
		f, err := buildFiling(row.StockAudit[0].CompanyFullName, resultDir, row.FileTitle, row.FilePath)
		if err != nil {
			return nil, err
		}
		filings = append(filings, f)
	}
	return filings, nil
}

// buildFiling resolves the download URL and destination path for one file.
// filePath is resolved against downloadBase per RFC 3986, so an absolute
// path replaces the base path entirely and a relative one replaces its
// last segment.
func buildFiling(company, category, title, filePath string) (types.Filing, error) {
	if company == "" {
		return types.Filing{}, fmt.Errorf("filing %q has no company name", title)
	}
	base, err := url.Parse(downloadBase)
	if err != nil {
		return types.Filing{}, err
	}
	ref, err := url.Parse(filePath)
	if err != nil {
		return types.Filing{}, fmt.Errorf("parsing file path %q: %w", filePath, err)
	}
	return types.Filing{
		Title:   title,
		URL:     base.ResolveReference(ref).String(),
		RelPath: relFilingPath(company, category, title),
	}, nil
}
