package email

const layoutStart = `<!DOCTYPE html><html><body style="font-family: Arial, sans-serif; color: #222;">`
const layoutEnd = `<p style="color:#888;font-size:12px;">This is an automated message from {{.SiteName}}.</p></body></html>`

var defaultTemplates = map[string]string{
	TemplateCompanyApproved: layoutStart + `
<h2>Your company has been approved</h2>
<p>Dear {{.CompanyName}},</p>
<p>Congratulations! Your company registration has been approved. You can now post jobs and review applications.</p>
` + layoutEnd,

	TemplateCompanyRejected: layoutStart + `
<h2>Company registration update</h2>
<p>Dear {{.CompanyName}},</p>
<p>Unfortunately, your company registration has been rejected.</p>
<p><strong>Reason:</strong> {{.Reason}}</p>
` + layoutEnd,

	TemplateApplicationStatus: layoutStart + `
<h2>Your application status changed</h2>
<p>Dear {{.ApplicantName}},</p>
<p>Your application for <strong>{{.JobTitle}}</strong> at {{.CompanyName}} is now: <strong>{{.Status}}</strong>.</p>
{{if .Notes}}<p>{{.Notes}}</p>{{end}}
` + layoutEnd,

	TemplateNewApplication: layoutStart + `
<h2>New application received</h2>
<p>{{.ApplicantName}} has applied for <strong>{{.JobTitle}}</strong>.</p>
` + layoutEnd,
}
