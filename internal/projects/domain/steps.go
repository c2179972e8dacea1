package domain

import "time"

// StepPayload is implemented by the seven step data types.
type StepPayload interface {
	stepPayload()
}

// Step1Data holds company and manager contact information.
type Step1Data struct {
	Manager ManagerInfo `json:"manager" validate:"required"`
	Company CompanyInfo `json:"company" validate:"required"`
}

type ManagerInfo struct {
	Name     string `json:"name" validate:"required,min=2"`
	Position string `json:"position" validate:"required"`
	Phone    string `json:"phone" validate:"required,min=9"`
	Email    string `json:"email" validate:"required,email"`
}

type CompanyInfo struct {
	Name           string `json:"name" validate:"required,min=2"`
	Representative string `json:"representative" validate:"required"`
	Address        string `json:"address" validate:"required,min=5"`
	BusinessNumber string `json:"businessNumber" validate:"required"`
	Phone          string `json:"phone" validate:"required,min=9"`
	Fax            string `json:"fax" validate:"omitempty"`
	Email          string `json:"email" validate:"required,email"`
}

// Step2Data holds hosting and domain registrar credentials.
type Step2Data struct {
	Hosting HostingInfo `json:"hosting" validate:"required"`
	Domain  DomainInfo  `json:"domain" validate:"required"`
}

type HostingInfo struct {
	Provider      string `json:"provider" validate:"required"`
	ID            string `json:"id" validate:"required"`
	Password      string `json:"password" validate:"required"`
	FTPDBPassword string `json:"ftpDbPassword" validate:"required"`
}

type DomainInfo struct {
	Provider string `json:"provider" validate:"required"`
	Address  string `json:"address" validate:"required,min=4"`
	ID       string `json:"id" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Step3Data holds mail DNS records. An empty record list is a valid
// "skip" submission (portal mail accounts need no setup).
type Step3Data struct {
	MailRecords []MailRecord `json:"mailRecords" validate:"omitempty,dive"`
}

// MailRecord types
const (
	RecordTypeMX    = "MX"
	RecordTypeCNAME = "CNAME"
	RecordTypeTXT   = "TXT"
)

// MailRecord carries one DNS record. Priority is meaningful for MX
// records only; record-type coupling is enforced by a struct-level
// validation in the steps package.
type MailRecord struct {
	Type     string `json:"type" validate:"required,oneof=MX CNAME TXT"`
	Host     string `json:"host" validate:"required"`
	Value    string `json:"value" validate:"required"`
	Priority *int   `json:"priority,omitempty" validate:"omitempty,gte=0"`
}

// Step4Data holds portal SEO credentials and site metadata.
type Step4Data struct {
	Google   PortalAccount `json:"google" validate:"required"`
	Naver    PortalAccount `json:"naver" validate:"required"`
	SiteInfo SiteInfo      `json:"siteInfo" validate:"required"`
}

type PortalAccount struct {
	ID       string `json:"id" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type SiteInfo struct {
	Title       string `json:"title" validate:"required,min=2"`
	Description string `json:"description" validate:"required,min=5"`
}

// Step5Data holds design reference sites.
type Step5Data struct {
	References []DesignReference `json:"references" validate:"required,min=1,dive"`
}

type DesignReference struct {
	Site         string `json:"site" validate:"required"`
	TemplateName string `json:"templateName" validate:"omitempty"`
	Description  string `json:"description" validate:"required"`
}

// Step6Data holds the two-level menu structure for the sitemap.
type Step6Data struct {
	MenuStructure MenuStructure `json:"menuStructure" validate:"required"`
}

type MenuStructure struct {
	PrimaryMenu   []string            `json:"primaryMenu" validate:"required,min=1,dive,required"`
	SecondaryMenu map[string][]string `json:"secondaryMenu" validate:"omitempty,dive,dive,required"`
}

// Step7Data holds uploaded file metadata grouped by category. An empty
// list is a valid "skip" submission; files arrive through the upload
// endpoint and are appended here.
type Step7Data struct {
	UploadedFiles []FileCategory `json:"uploadedFiles" validate:"omitempty,dive"`
}

type FileCategory struct {
	Category string     `json:"category" validate:"required"`
	Files    []FileInfo `json:"files" validate:"omitempty,dive"`
}

// FileInfo describes one stored attachment.
type FileInfo struct {
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	Type       string    `json:"type"`
	UploadPath string    `json:"uploadPath"`
	UploadedAt time.Time `json:"uploadedAt"`
}

func (*Step1Data) stepPayload() {}
func (*Step2Data) stepPayload() {}
func (*Step3Data) stepPayload() {}
func (*Step4Data) stepPayload() {}
func (*Step5Data) stepPayload() {}
func (*Step6Data) stepPayload() {}
func (*Step7Data) stepPayload() {}
