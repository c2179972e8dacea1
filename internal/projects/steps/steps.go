package steps

import "github.com/tongcompany/intake-portal/internal/projects/domain"

// Step describes one wizard stage: its number, display title and the
// folder it maps to in the project file tree (local and NAS).
type Step struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
	Folder string `json:"folder"`
}

// All lists the seven wizard stages in order.
var All = [domain.TotalSteps]Step{
	{1, "기업 및 관리 담당자 정보", "01_기업정보"},
	{2, "호스팅 및 도메인 정보", "02_호스팅도메인"},
	{3, "메일 정보", "03_메일설정"},
	{4, "SEO 세팅", "04_SEO정보"},
	{5, "디자인 레퍼런스", "05_디자인레퍼런스"},
	{6, "사이트맵", "06_사이트맵"},
	{7, "홈페이지 자료", "07_홈페이지자료"},
}

// Valid reports whether step is a known step number.
func Valid(step int) bool {
	return step >= 1 && step <= domain.TotalSteps
}

// Title returns the display title for a step, or "" when out of range.
func Title(step int) string {
	if !Valid(step) {
		return ""
	}
	return All[step-1].Title
}

// FolderName returns the file-tree folder for a step, or "" when out
// of range.
func FolderName(step int) string {
	if !Valid(step) {
		return ""
	}
	return All[step-1].Folder
}

// Folders returns every step folder in order.
func Folders() []string {
	out := make([]string, 0, domain.TotalSteps)
	for _, s := range All {
		out = append(out, s.Folder)
	}
	return out
}

// IncompleteTitles lists the titles of the steps still missing, in
// wizard order. Used by reminder emails.
func IncompleteTitles(p domain.Progress) []string {
	var out []string
	for _, s := range All {
		if !p.Done(s.Number) {
			out = append(out, s.Title)
		}
	}
	return out
}
