// Copyright q9good, 2026. All rights reserved.

package crawl

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Category subdirectories under each company folder. The Chinese names are
// the audit-document categories the SSE publishes and are what the
// downstream tree is organized by.
var (
	declareDir    = "申报稿"
	meetingDir    = "上会稿"
	registerDir   = "注册稿"
	inquiryDir    = "问询与回复"
	sponsorDir    = filepath.Join(inquiryDir, "发行人与保荐机构")
	accountantDir = filepath.Join(inquiryDir, "会计师")
	lawyerDir     = filepath.Join(inquiryDir, "律师")
	resultDir     = "结果"
)

// CategoryDirs lists every category subdirectory a company folder can
// contain, in the order they are materialized.
func CategoryDirs() []string {
	return []string{
		declareDir, registerDir, meetingDir,
		sponsorDir, accountantDir, lawyerDir,
		resultDir,
	}
}

// versionDirs maps the fileVersion field onto the draft-stage directory:
// 1 is the initial application draft, 2 the committee-meeting draft, 3 the
// registration draft.
var versionDirs = map[int]string{
	1: declareDir,
	2: meetingDir,
	3: registerDir,
}

// versionedFileTypes are the disclosure documents that carry a draft stage:
// prospectus (30), issuance sponsor letter (36), listing sponsor letter
// (37), audit report (32), legal opinion (33), and other (34).
var versionedFileTypes = map[int]bool{
	30: true, 32: true, 33: true, 34: true, 36: true, 37: true,
}

// classifyFiling maps a (fileType, fileVersion, title) triple onto the
// category subdirectory the file belongs in. Inquiry replies (types 5 and
// 6) are routed by the numbering prefix of their title: 8-1 issuer and
// sponsor, 8-2 accountant, 8-3 lawyer. Registration results and audit
// termination notices (35, 38) go to the results directory. Unknown types
// are an error, matching the strictness of the audit-system schema.
func classifyFiling(fileType, fileVersion int, title string) (string, error) {
	switch {
	case versionedFileTypes[fileType]:
		dir, ok := versionDirs[fileVersion]
		if !ok {
			return "", fmt.Errorf("file type %d has unknown version %d", fileType, fileVersion)
		}
		return dir, nil

	case fileType == 5 || fileType == 6:
		switch {
		case strings.HasPrefix(title, "8-1"):
			return sponsorDir, nil
		case strings.HasPrefix(title, "8-2"):
			return accountantDir, nil
		case strings.HasPrefix(title, "8-3"):
			return lawyerDir, nil
		default:
			return inquiryDir, nil
		}

	case fileType == 35 || fileType == 38:
		return resultDir, nil

	default:
		return "", fmt.Errorf("unknown file type %d", fileType)
	}
}

// relFilingPath builds the destination path of a filing relative to the
// download root: <company>/<category>/<title>.pdf. Path separators inside
// published titles are flattened so a title cannot escape its category
// directory.
func relFilingPath(company, category, title string) string {
	title = strings.NewReplacer("/", "-", string(filepath.Separator), "-").Replace(title)
	return filepath.Join(company, category, title+".pdf")
}
