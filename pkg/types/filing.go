// Copyright q9good, 2026. All rights reserved.

package types

import "time"

// AuditStatus is the IPO audit state reported by the SSE audit system.
type AuditStatus int

const (
	StatusUnknown    AuditStatus = 0
	StatusAccepted   AuditStatus = 1 // 已受理
	StatusQueried    AuditStatus = 2 // 已问询
	StatusDiscussed  AuditStatus = 3 // 上市委会议
	StatusSubmitted  AuditStatus = 4 // 提交注册
	StatusRegistered AuditStatus = 5 // 注册生效 or 终止注册
)

func (s AuditStatus) String() string {
	switch s {
	case StatusAccepted:
		return "accepted"
	case StatusQueried:
		return "queried"
	case StatusDiscussed:
		return "discussed"
	case StatusSubmitted:
		return "submitted"
	case StatusRegistered:
		return "registered"
	default:
		return "unknown"
	}
}

// RegisterResult refines StatusRegistered.
type RegisterResult int

const (
	RegisterNone       RegisterResult = 0
	RegisterEffective  RegisterResult = 1 // 注册生效
	RegisterTerminated RegisterResult = 3 // 终止注册
)

func (r RegisterResult) String() string {
	switch r {
	case RegisterEffective:
		return "effective"
	case RegisterTerminated:
		return "terminated"
	default:
		return "none"
	}
}

// CompanyInfo holds the audit overview for a company applying to list on
// the STAR market.
type CompanyInfo struct {
	// Name is the full registered company name (审计名称).
	Name string `json:"name" yaml:"name"`

	// AuditNumber is the audit id the SSE assigned to the application.
	AuditNumber int `json:"audit_number" yaml:"audit_number"`

	// Status is the current audit state.
	Status AuditStatus `json:"status" yaml:"status"`

	// RegisterResult is set when Status is StatusRegistered.
	RegisterResult RegisterResult `json:"register_result,omitempty" yaml:"register_result,omitempty"`

	// ApplyDate is when the application was submitted.
	ApplyDate time.Time `json:"apply_date" yaml:"apply_date"`

	// UpdateDate is when the audit record last changed.
	UpdateDate time.Time `json:"update_date" yaml:"update_date"`
}

// Filing is one disclosure document attached to an application: a download
// URL plus the relative path it lands at under the download root.
type Filing struct {
	// Title is the document title as published (no extension).
	Title string `json:"title" yaml:"title"`

	// URL is the static.sse.com.cn download location.
	URL string `json:"url" yaml:"url"`

	// RelPath is the destination path relative to the download root,
	// ending in ".pdf": <company>/<category>/<title>.pdf.
	RelPath string `json:"rel_path" yaml:"rel_path"`
}

// CompanyRecord is the on-disk metadata record the crawl stage writes for
// each processed company.
type CompanyRecord struct {
	Company   CompanyInfo `yaml:"company"`
	Filings   []Filing    `yaml:"filings"`
	CrawledAt time.Time   `yaml:"crawled_at"`
}
