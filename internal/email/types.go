package email

// Attachment представляет вложение в email
type Attachment struct {
	Name        string
	Content     []byte
	ContentType string
}

// Email представляет структуру email сообщения
type Email struct {
	From        string
	To          []string
	Cc          []string
	Subject     string
	Body        string
	HTMLBody    string
	Attachments []Attachment
}

// TemplateData представляет данные для шаблонов писем
type TemplateData map[string]interface{}

// Имена встроенных шаблонов
const (
	TemplateCompanyApproved   = "company_approved"
	TemplateCompanyRejected   = "company_rejected"
	TemplateApplicationStatus = "application_status"
	TemplateNewApplication    = "new_application"
)

// SiteName подставляется в подвал всех писем
const SiteName = "Job Portal"
