package notify

import (
	"bytes"
	"fmt"
	"html/template"
)

// Email bodies follow the company's existing client mails: header,
// progress block, call-to-action link, contact footer.

type stepMailData struct {
	ManagerName    string
	CompanyName    string
	StepNumber     int
	StepTitle      string
	CompletionRate int
	CompletedCount int
	ProjectID      string
	Email          string
	BaseURL        string
}

type completionMailData struct {
	ManagerName string
	CompanyName string
	ProjectID   string
	Email       string
	Phone       string
	StepTitles  []string
	BaseURL     string
}

type reminderMailData struct {
	ManagerName     string
	CompanyName     string
	CompletionRate  int
	ProjectID       string
	IncompleteSteps []string
	BaseURL         string
}

var stepClientTmpl = template.Must(template.New("stepClient").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h1 style="color: #0099cc; text-align: center;">통컴퍼니</h1>
  <h2>단계 완료 알림</h2>
  <p>안녕하세요, <strong>{{.ManagerName}}</strong>님.</p>
  <p><strong>{{.CompanyName}}</strong> 홈페이지 제작 프로젝트의 <strong>{{.StepTitle}}</strong> 단계가 완료되었습니다.</p>
  <div style="background: #f8f9fa; padding: 20px; border-radius: 8px;">
    <h3>현재 진행률: {{.CompletionRate}}%</h3>
    <p>7단계 중 {{.CompletedCount}}단계 완료</p>
  </div>
  {{if lt .CompletionRate 100}}<p>계속해서 다음 단계 정보를 입력해주세요.</p>{{end}}
  <p style="text-align: center;"><a href="{{.BaseURL}}/project/{{.ProjectID}}">프로젝트 계속하기</a></p>
  <p style="color: #666; font-size: 14px;">통컴퍼니 | 02-402-2589 | tong@tongcompany.co.kr</p>
</div>`))

var stepAdminTmpl = template.Must(template.New("stepAdmin").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #0099cc;">프로젝트 진행 알림</h2>
  <p>회사명: {{.CompanyName}}</p>
  <p>담당자: {{.ManagerName}} ({{.Email}})</p>
  <p>완료 단계: {{.StepNumber}}. {{.StepTitle}}</p>
  <p>진행률: {{.CompletionRate}}%</p>
  <p>프로젝트 ID: {{.ProjectID}}</p>
  <p><a href="{{.BaseURL}}/admin">관리자 대시보드에서 보기</a></p>
</div>`))

var completionClientTmpl = template.Must(template.New("completionClient").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h1 style="color: #0099cc; text-align: center;">자료 수집 완료!</h1>
  <p>안녕하세요, <strong>{{.ManagerName}}</strong>님.</p>
  <p><strong>{{.CompanyName}}</strong> 홈페이지 제작을 위한 모든 자료가 성공적으로 수집되었습니다.</p>
  <div style="background: #d4edda; padding: 20px; border-radius: 8px;">
    <h3>수집 완료 항목</h3>
    <ul>{{range .StepTitles}}<li>{{.}}</li>{{end}}</ul>
  </div>
  <p>이제 디자인팀이 제공해주신 자료를 바탕으로 제작 작업을 시작합니다.</p>
  <p style="color: #666; font-size: 14px;">통컴퍼니 | 02-402-2589 | tong@tongcompany.co.kr</p>
</div>`))

var completionAdminTmpl = template.Must(template.New("completionAdmin").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #28a745;">프로젝트 완료: 모든 자료 수집이 완료되었습니다</h2>
  <p>회사명: {{.CompanyName}}</p>
  <p>담당자: {{.ManagerName}}</p>
  <p>연락처: {{.Phone}}</p>
  <p>이메일: {{.Email}}</p>
  <p>프로젝트 ID: {{.ProjectID}}</p>
  <p>NAS에서 수집된 자료를 확인하고 디자인팀에 프로젝트를 할당해주세요.</p>
  <p><a href="{{.BaseURL}}/admin">관리자 대시보드</a> | <a href="{{.BaseURL}}/project/{{.ProjectID}}">프로젝트 상세보기</a></p>
</div>`))

var reminderTmpl = template.Must(template.New("reminder").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h1 style="color: #0099cc; text-align: center;">통컴퍼니</h1>
  <h2>자료 제출 리마인더</h2>
  <p>안녕하세요, <strong>{{.ManagerName}}</strong>님.</p>
  <p><strong>{{.CompanyName}}</strong> 홈페이지 제작 프로젝트가 진행 중입니다.</p>
  <h3>현재 진행률: {{.CompletionRate}}%</h3>
  <div style="background: #f8d7da; padding: 20px; border-radius: 8px;">
    <h3>대기 중인 항목</h3>
    <ul>{{range .IncompleteSteps}}<li>{{.}}</li>{{end}}</ul>
  </div>
  <p style="text-align: center;"><a href="{{.BaseURL}}/project/{{.ProjectID}}">자료 입력 계속하기</a></p>
  <p style="color: #666; font-size: 14px;">통컴퍼니 | 02-402-2589 | tong@tongcompany.co.kr</p>
</div>`))

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s: %w", t.Name(), err)
	}
	return buf.String(), nil
}
